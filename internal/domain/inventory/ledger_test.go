package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/inventory"
)

func newMaterial(id string, total int) *entity.Material {
	return &entity.Material{
		ID:                id,
		Code:              "MAT-" + id,
		TotalQuantity:     total,
		AvailableQuantity: total,
		MinimumStockLevel: 10,
		ReplacementCost:   decimal.NewFromInt(120),
	}
}

func TestReserve_ExactoDisponibleDejaCero(t *testing.T) {
	m := newMaterial("1", 50)

	require.NoError(t, inventory.Reserve(m, 50))
	assert.Equal(t, 0, m.AvailableQuantity)
	assert.Equal(t, 50, m.HiredQuantity)
	assert.True(t, inventory.Consistent(m))
}

func TestReserve_UnoMasQueDisponibleFallaSinMutar(t *testing.T) {
	m := newMaterial("1", 50)

	err := inventory.Reserve(m, 51)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var stockErr *domain.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 51, stockErr.Requested)
	assert.Equal(t, 50, stockErr.Available)
	assert.Equal(t, 50, m.AvailableQuantity)
	assert.Equal(t, 0, m.HiredQuantity)
}

func TestReserve_CantidadNoPositiva(t *testing.T) {
	m := newMaterial("1", 10)
	assert.ErrorIs(t, inventory.Reserve(m, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.Reserve(m, -3), domain.ErrInvalidInput)
}

func TestReserveAll_TodoONada(t *testing.T) {
	a := newMaterial("a", 100)
	b := newMaterial("b", 5)
	materials := map[string]*entity.Material{"a": a, "b": b}

	err := inventory.ReserveAll(materials, []inventory.Line{
		{MaterialID: "a", Quantity: 40},
		{MaterialID: "b", Quantity: 6},
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 100, a.AvailableQuantity, "a no debe reservarse si b falla")
	assert.Equal(t, 0, a.HiredQuantity)
	assert.Equal(t, 5, b.AvailableQuantity)
}

func TestReserveAll_SumaLineasRepetidas(t *testing.T) {
	a := newMaterial("a", 10)
	materials := map[string]*entity.Material{"a": a}

	err := inventory.ReserveAll(materials, []inventory.Line{
		{MaterialID: "a", Quantity: 6},
		{MaterialID: "a", Quantity: 6},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, inventory.ReserveAll(materials, []inventory.Line{
		{MaterialID: "a", Quantity: 4},
		{MaterialID: "a", Quantity: 6},
	}))
	assert.Equal(t, 0, a.AvailableQuantity)
	assert.Equal(t, 10, a.HiredQuantity)
}

// Escenario: total 100, reservar 40, devolver 35 de 40 despachados.
func TestRelease_DevolucionParcialDaDeBaja(t *testing.T) {
	m := newMaterial("1", 100)
	require.NoError(t, inventory.Reserve(m, 40))
	assert.Equal(t, 60, m.AvailableQuantity)
	assert.Equal(t, 40, m.HiredQuantity)

	writtenOff := inventory.Release(m, 40, 35)

	assert.Equal(t, 5, writtenOff)
	assert.Equal(t, 95, m.AvailableQuantity)
	assert.Equal(t, 0, m.HiredQuantity)
	assert.Equal(t, 95, m.TotalQuantity)
	assert.True(t, inventory.Consistent(m))
}

func TestRelease_RecortaValoresFueraDeRango(t *testing.T) {
	m := newMaterial("1", 20)
	require.NoError(t, inventory.Reserve(m, 10))

	writtenOff := inventory.Release(m, 15, 30)

	assert.Equal(t, 0, writtenOff)
	assert.Equal(t, 0, m.HiredQuantity)
	assert.Equal(t, 20, m.AvailableQuantity)
	assert.True(t, inventory.Consistent(m))
}

func TestUnreserve_RestauraDisponible(t *testing.T) {
	m := newMaterial("1", 30)
	require.NoError(t, inventory.Reserve(m, 12))

	inventory.Unreserve(m, 12)

	assert.Equal(t, 30, m.AvailableQuantity)
	assert.Equal(t, 0, m.HiredQuantity)
}

func TestAdjust(t *testing.T) {
	m := newMaterial("1", 10)

	require.NoError(t, inventory.Adjust(m, 5, entity.AdjustmentAdd, "compra"))
	assert.Equal(t, 15, m.TotalQuantity)
	assert.Equal(t, 15, m.AvailableQuantity)

	require.NoError(t, inventory.Adjust(m, 3, entity.AdjustmentRemove, "dañado en bodega"))
	assert.Equal(t, 12, m.TotalQuantity)

	assert.ErrorIs(t, inventory.Adjust(m, 1, entity.AdjustmentAdd, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.Adjust(m, 100, entity.AdjustmentRemove, "x"), domain.ErrInvalidInput)
	assert.True(t, inventory.Consistent(m))
}

func TestIsLowStock(t *testing.T) {
	m := newMaterial("1", 12)
	assert.False(t, inventory.IsLowStock(m))
	require.NoError(t, inventory.Reserve(m, 2))
	assert.True(t, inventory.IsLowStock(m), "disponible igual al mínimo cuenta como bajo")
}

func TestUtilizationRate(t *testing.T) {
	m := newMaterial("1", 200)
	require.NoError(t, inventory.Reserve(m, 50))
	assert.Equal(t, "25", inventory.UtilizationRate(m).String())
	assert.True(t, inventory.UtilizationRate(&entity.Material{}).IsZero())
}
