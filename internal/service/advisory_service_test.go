package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The low-stock boundary is inclusive: stock equal to the reorder level is
// already low.
func TestListLowStockBoundary(t *testing.T) {
	env := newTestEnv()
	atLevel := env.seedProduct("AT-LEVEL", 5, 5, "1.00")
	below := env.seedProduct("BELOW", 2, 5, "1.00")
	env.seedProduct("ABOVE", 7, 5, "1.00")

	svc := NewAdvisoryService(env.repos.Products)

	products, err := svc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, products, 2)

	seen := map[string]bool{}
	for _, p := range products {
		seen[p.SKU] = true
	}
	assert.True(t, seen[atLevel.SKU])
	assert.True(t, seen[below.SKU])
}

func TestSuggestReorders(t *testing.T) {
	env := newTestEnv()
	below := env.seedProduct("LOW-1", 2, 5, "1.00")
	atLevel := env.seedProduct("LOW-2", 5, 5, "1.00")

	svc := NewAdvisoryService(env.repos.Products)

	suggestions, err := svc.SuggestReorders()
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	byID := map[string]ReorderSuggestion{}
	for _, s := range suggestions {
		byID[s.SKU] = s
	}
	assert.Equal(t, 3, byID[below.SKU].SuggestedQty)
	assert.Equal(t, 0, byID[atLevel.SKU].SuggestedQty, "suggested quantity never goes negative")
}
