package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupParsesValidLevel(t *testing.T) {
	log := Setup("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestSetupFallsBackToInfoOnUnrecognizedLevel(t *testing.T) {
	log := Setup("verbose")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestLineEntryIncludesCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("info")
	log.SetOutput(&buf)

	LineEntry(log, "trace-1", "CLM-1", 3).Info("priced line")

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"trace-1"`)
	assert.Contains(t, out, `"claim_id":"CLM-1"`)
	assert.Contains(t, out, `"line_number":3`)
}

func TestDiagnosticEntryIncludesCodeAndMessage(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("info")
	log.SetOutput(&buf)

	DiagnosticEntry(log, "trace-1", "gpci_defaulted", "fell back to 00").Warn("diagnostic")

	out := buf.String()
	assert.Contains(t, out, `"code":"gpci_defaulted"`)
	assert.Contains(t, out, `"message":"fell back to 00"`)
}
