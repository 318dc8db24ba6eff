package lookup_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/lookup"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

func TestOrders_PrefijoYTope(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Orders().Create(ctx, &entity.HireOrder{
			ID:          fmt.Sprintf("o-%02d", i),
			OrderNumber: fmt.Sprintf("OR-2026-%04d", i),
			QuotationID: fmt.Sprintf("q-%02d", i),
			Status:      entity.OrderStatusActive,
		}))
	}
	uc := lookup.NewUseCase(store)

	items, err := uc.Orders(ctx, "or-2026")
	require.NoError(t, err)
	assert.Len(t, items, lookup.MaxResults)
	assert.Equal(t, "OR-2026-0001", items[0].Label)

	items, err = uc.Orders(ctx, "OR-2026-0012")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o-12", items[0].ID)

	items, err = uc.Orders(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClients_PorNombre(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	c := store.SeedClient(t, "0")
	uc := lookup.NewUseCase(store)

	items, err := uc.Clients(ctx, "constructora")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, c.ID, items[0].ID)
	assert.Equal(t, entity.ClientStatusActive, items[0].Extra)

	items, err = uc.Clients(ctx, "zeta")
	require.NoError(t, err)
	assert.Empty(t, items)
}
