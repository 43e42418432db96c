package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStoreRejectsNegativeRVU(t *testing.T) {
	s := &Store{
		rvu: map[rvuKey]RVURecord{
			{code: "99999", modifier: ""}: {ProcedureCode: "99999", WorkRVUNonFacility: -1},
		},
		gpci: map[string]GPCIRecord{"00": {Locality: "00", WorkGPCI: 1, PEGPCI: 1, MPGPCI: 1}},
	}
	err := validateStore(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative RVU component")
}

func TestValidateStoreRequiresNationalAverageGPCI(t *testing.T) {
	s := &Store{
		rvu:  map[rvuKey]RVURecord{},
		gpci: map[string]GPCIRecord{},
	}
	err := validateStore(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"00"`)
}

func TestValidateStoreAllowsBothCCAndMCCFlagged(t *testing.T) {
	s := &Store{
		rvu:  map[rvuKey]RVURecord{},
		gpci: map[string]GPCIRecord{"00": {Locality: "00", WorkGPCI: 1, PEGPCI: 1, MPGPCI: 1}},
		diag: map[string]ICD10CMEntry{
			"Z000": {Code: "Z000", IsCC: true, IsMCC: true},
		},
	}
	assert.NoError(t, validateStore(s))
}
