package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/hiring"
)

// TaxRate tasa usada por las cotizaciones sembradas.
var TaxRate = decimal.RequireFromString("0.15")

// SeedMaterial crea un material con total disponible y la tarifa diaria indicada.
func (s *Store) SeedMaterial(t testing.TB, code string, total int, dailyRate string) *entity.Material {
	t.Helper()
	now := time.Now()
	m := &entity.Material{
		ID:                uuid.New().String(),
		Code:              code,
		Name:              "Material " + code,
		UnitOfMeasure:     "PIECE",
		DailyHireRate:     decimal.RequireFromString(dailyRate),
		ReplacementCost:   decimal.NewFromInt(100),
		TotalQuantity:     total,
		AvailableQuantity: total,
		Condition:         entity.MaterialConditionGood,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, s.Materials().Create(context.Background(), m))
	return m
}

// SeedClient crea un cliente ACTIVE con condiciones a 30 días.
func (s *Store) SeedClient(t testing.TB, balance string) *entity.Client {
	t.Helper()
	now := time.Now()
	c := &entity.Client{
		ID:             uuid.New().String(),
		ClientNumber:   "CL-" + uuid.New().String()[:8],
		Name:           "Constructora Andina",
		Type:           entity.ClientTypePrivate,
		Status:         entity.ClientStatusActive,
		Email:          "compras@andina.test",
		CreditLimit:    decimal.NewFromInt(50000),
		CurrentBalance: decimal.RequireFromString(balance),
		PaymentTerms:   entity.PaymentTerms30Days,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, s.Clients().Create(context.Background(), c))
	return c
}

// SeedUser crea un usuario ACTIVE con el rol indicado.
func (s *Store) SeedUser(t testing.TB, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:     uuid.New().String(),
		Email:  uuid.New().String()[:8] + "@formmaster.test",
		Name:   "Usuario " + role,
		Role:   role,
		Status: entity.UserStatusActive,
	}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

// QuotationLine cantidad de un material en una cotización sembrada.
type QuotationLine struct {
	Material *entity.Material
	Quantity int
}

// SeedAcceptedQuotation crea una cotización ACCEPTED con totales calculados al 15%.
func (s *Store) SeedAcceptedQuotation(t testing.TB, clientID string, durationDays int, lines ...QuotationLine) *entity.Quotation {
	t.Helper()
	now := time.Now()
	q := &entity.Quotation{
		ID:               uuid.New().String(),
		QuotationNumber:  "QT-" + uuid.New().String()[:8],
		ClientID:         clientID,
		ValidUntil:       now.AddDate(0, 0, 30),
		HireDurationDays: durationDays,
		Status:           entity.QuotationStatusAccepted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, l := range lines {
		q.Items = append(q.Items, entity.QuotationItem{
			ID:           uuid.New().String(),
			QuotationID:  q.ID,
			MaterialID:   l.Material.ID,
			Quantity:     l.Quantity,
			DailyRate:    l.Material.DailyHireRate,
			DurationDays: durationDays,
		})
	}
	hiring.CalculateTotals(q, TaxRate)
	require.NoError(t, s.Quotations().Create(context.Background(), q))
	return q
}
