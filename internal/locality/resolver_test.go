package locality

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"

	"github.com/iris-health/medicare-repricer/internal/refdata"
)

func loadStore(t *testing.T) *refdata.Store {
	t.Helper()
	store, err := refdata.Load("../refdata/testdata", refdata.DefaultScalars())
	require.NoError(t, err)
	return store
}

func TestResolveExplicitLocalityWins(t *testing.T) {
	r := New(loadStore(t))
	locality, diag, ok := r.Resolve("05", "10001")
	require.True(t, ok)
	assert.Equal(t, "05", locality)
	assert.Nil(t, diag)
}

func TestResolveZipMapsToLocality(t *testing.T) {
	r := New(loadStore(t))
	locality, diag, ok := r.Resolve("", "10001")
	require.True(t, ok)
	assert.Equal(t, "01", locality)
	assert.Nil(t, diag)
}

func TestResolveUnmappedZipDefaultsToNationalAverage(t *testing.T) {
	r := New(loadStore(t))
	locality, diag, ok := r.Resolve("", "99999")
	require.True(t, ok)
	assert.Equal(t, NationalAverageLocality, locality)
	require.NotNil(t, diag)
	assert.True(t, diag.Fatal == false)
}

func TestResolveNeitherLocalityNorZipIsNotOK(t *testing.T) {
	r := New(loadStore(t))
	_, diag, ok := r.Resolve("", "")
	assert.False(t, ok)
	assert.Nil(t, diag)
}
