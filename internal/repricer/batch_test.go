package repricer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-health/medicare-repricer/internal/claim"
)

func TestRepriceBatchPricesEachClaimIndependently(t *testing.T) {
	o := New(loadStore(t))
	claims := []*claim.Claim{
		{ClaimID: "A", Lines: []claim.ClaimLine{{LineNumber: 1, ProcedureCode: "99213", PlaceOfService: "11", Locality: "00"}}},
		nil,
		{ClaimID: "B", Lines: []claim.ClaimLine{{LineNumber: 1, ProcedureCode: "71046", PlaceOfService: "11", Locality: "00"}}},
	}

	results, err := o.RepriceBatch(context.Background(), claims)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "A", results[0].ClaimID)
	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].RepricedClaim)

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].RepricedClaim)

	assert.Equal(t, "B", results[2].ClaimID)
	assert.NoError(t, results[2].Err)
}

func TestRepriceBatchRejectsAlreadyCanceledContext(t *testing.T) {
	o := New(loadStore(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.RepriceBatch(ctx, nil)
	assert.Error(t, err)
}
