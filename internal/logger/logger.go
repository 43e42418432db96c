// Package logger configures structured logging for the repricing engine
// using logrus. There is no HTTP surface in the core, so there is no
// request-logging middleware here — only the engine's own per-line and
// per-diagnostic logging helpers.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup initializes the logger for a given log level ("debug", "info",
// "warn", "error"). Unrecognized levels fall back to Info.
func Setup(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

// LineEntry returns a log entry pre-populated with the fields that identify
// one claim line: trace correlation ID, claim ID, and line number. Callers
// add line-specific fields (code, setting, amount) themselves.
func LineEntry(log *logrus.Logger, traceID, claimID string, lineNumber int) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"trace_id":    traceID,
		"claim_id":    claimID,
		"line_number": lineNumber,
	})
}

// DiagnosticEntry returns a log entry for a single non-fatal diagnostic.
// Fatal, data-driven per-line conditions are never logged at Error here —
// they are returned as structured diagnostics, not logged as failures.
func DiagnosticEntry(log *logrus.Logger, traceID string, code, message string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"trace_id": traceID,
		"code":     code,
		"message":  message,
	})
}
