package medicarerepricer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-health/medicare-repricer/internal/claim"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

func loadTestStore(t *testing.T) *refdata.Store {
	t.Helper()
	store, err := refdata.Load("internal/refdata/testdata", refdata.DefaultScalars())
	require.NoError(t, err)
	return store
}

func TestNewFromStoreRepricesAClaim(t *testing.T) {
	e := NewFromStore(loadTestStore(t), "error")
	out, err := e.RepriceClaim(&claim.Claim{
		ClaimID: "CLM-ROOT-1",
		Lines: []claim.ClaimLine{
			{LineNumber: 1, ProcedureCode: "99213", PlaceOfService: "11", Locality: "00", Units: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.False(t, out.Lines[0].HasFatalError())
	assert.Equal(t, out.Lines[0].MedicareAllowed, out.TotalAllowed)
}

func TestNewFromStoreRejectsNilClaim(t *testing.T) {
	e := NewFromStore(loadTestStore(t), "error")
	_, err := e.RepriceClaim(nil)
	assert.Error(t, err)
}

func TestEngineReadThroughAccessors(t *testing.T) {
	e := NewFromStore(loadTestStore(t), "error")

	rvu, ok := e.GetRVU("99213", "")
	require.True(t, ok)
	assert.Equal(t, "99213", rvu.ProcedureCode)

	gpci, ok := e.GetGPCI("01")
	require.True(t, ok)
	assert.Equal(t, 1.056, gpci.WorkGPCI)

	drg, ok := e.GetMSDRG("470")
	require.True(t, ok)
	assert.Equal(t, "470", drg.MSDRG)
}

func TestNewFailsOnMissingDataDirectory(t *testing.T) {
	t.Setenv("REPRICER_DATA_DIRECTORY", "/path/does/not/exist")
	t.Setenv("REPRICER_LOG_LEVEL", "")
	t.Setenv("REPRICER_CONVERSION_FACTOR", "")

	_, err := New("")
	assert.Error(t, err)
}
