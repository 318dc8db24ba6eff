package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/inventory"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
)

var (
	ctx   = context.Background()
	admin = policy.Actor{ID: "u-admin", Role: entity.RoleAdmin}
	hce   = policy.Actor{ID: "u-hce", Role: entity.RoleHCE}
)

func newMaterialUseCase() (*memstore.Store, *inventory.MaterialUseCase) {
	store := memstore.New()
	return store, inventory.NewMaterialUseCase(store, store, zerolog.Nop())
}

func TestCreate_ArrancaTodoDisponible(t *testing.T) {
	_, uc := newMaterialUseCase()

	out, err := uc.Create(ctx, admin, dto.CreateMaterialRequest{
		Code:              " PAN-120 ",
		Name:              "Panel 1.20",
		DailyHireRate:     decimal.NewFromInt(8),
		TotalQuantity:     200,
		MinimumStockLevel: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAN-120", out.Code)
	assert.Equal(t, 200, out.AvailableQuantity)
	assert.Equal(t, "PIECE", out.UnitOfMeasure)
	assert.Equal(t, entity.MaterialConditionGood, out.Condition)

	_, err = uc.Create(ctx, admin, dto.CreateMaterialRequest{Code: "PAN-120", Name: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_Validaciones(t *testing.T) {
	_, uc := newMaterialUseCase()
	cases := map[string]dto.CreateMaterialRequest{
		"sin código":      {Name: "x"},
		"sin nombre":      {Code: "X"},
		"total negativo":  {Code: "X", Name: "x", TotalQuantity: -1},
		"tarifa negativa": {Code: "X", Name: "x", DailyHireRate: decimal.NewFromInt(-1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAdjustStock_RegistraAuditoria(t *testing.T) {
	store, uc := newMaterialUseCase()
	m := store.SeedMaterial(t, "CLA-01", 100, "5")

	out, err := uc.AdjustStock(ctx, admin, m.ID, dto.AdjustStockRequest{
		Quantity: 10, Direction: entity.AdjustmentRemove, Reason: "robo en obra",
	})
	require.NoError(t, err)
	assert.Equal(t, 90, out.TotalQuantity)
	assert.Equal(t, 90, out.AvailableQuantity)

	adj, err := uc.ListAdjustments(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, adj, 1)
	assert.Equal(t, entity.AdjustmentRemove, adj[0].Direction)
	assert.Equal(t, 10, adj[0].Quantity)
	assert.Equal(t, admin.ID, adj[0].CreatedBy)
}

func TestAdjustStock_SinRazonNoMuta(t *testing.T) {
	store, uc := newMaterialUseCase()
	m := store.SeedMaterial(t, "CLA-01", 100, "5")

	_, err := uc.AdjustStock(ctx, admin, m.ID, dto.AdjustStockRequest{Quantity: 5, Direction: entity.AdjustmentAdd})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.TotalQuantity)
}

func TestAdjustStock_HCENoPuede(t *testing.T) {
	store, uc := newMaterialUseCase()
	m := store.SeedMaterial(t, "CLA-01", 100, "5")

	_, err := uc.AdjustStock(ctx, hce, m.ID, dto.AdjustStockRequest{Quantity: 5, Direction: entity.AdjustmentAdd, Reason: "compra"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCheckAvailability(t *testing.T) {
	store, uc := newMaterialUseCase()
	m := store.SeedMaterial(t, "CLA-01", 40, "5")

	res, err := uc.CheckAvailability(ctx, m.ID, 40)
	require.NoError(t, err)
	assert.True(t, res.Available)

	res, err = uc.CheckAvailability(ctx, m.ID, 41)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, 40, res.AvailableQuantity)

	_, err = uc.CheckAvailability(ctx, m.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordInspection_NoAptoQuedaEnMantenimiento(t *testing.T) {
	store, uc := newMaterialUseCase()
	m := store.SeedMaterial(t, "CLA-01", 40, "5")

	out, err := uc.RecordInspection(ctx, admin, m.ID, dto.InspectionRequest{
		Condition: entity.MaterialConditionFair, SafeForUse: false, Notes: "soldadura fisurada",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MaterialConditionUnderMaintenance, out.Condition)
	assert.NotNil(t, out.LastInspection)

	_, err = uc.RecordInspection(ctx, admin, m.ID, dto.InspectionRequest{Condition: "ROTO", SafeForUse: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
