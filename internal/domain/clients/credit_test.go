package clients_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

func client(limit, balance int64) *entity.Client {
	return &entity.Client{
		Status:         entity.ClientStatusActive,
		CreditLimit:    decimal.NewFromInt(limit),
		CurrentBalance: decimal.NewFromInt(balance),
		PaymentTerms:   entity.PaymentTerms30Days,
	}
}

func TestAvailableCredit_NuncaNegativo(t *testing.T) {
	assert.Equal(t, "400", clients.AvailableCredit(client(1000, 600)).String())
	assert.True(t, clients.AvailableCredit(client(1000, 1500)).IsZero())
}

func TestCreditStatus_Umbrales(t *testing.T) {
	cases := []struct {
		balance int64
		want    string
	}{
		{0, clients.CreditLow},
		{499, clients.CreditLow},
		{500, clients.CreditModerate},
		{750, clients.CreditHigh},
		{900, clients.CreditCritical},
		{1200, clients.CreditCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, clients.CreditStatus(client(1000, tc.balance)), "saldo %d", tc.balance)
	}
	assert.Equal(t, clients.CreditLow, clients.CreditStatus(client(0, 300)), "sin límite no hay utilización")
}

func TestUpdateBalance_PuedeQuedarNegativo(t *testing.T) {
	c := client(1000, 100)
	clients.UpdateBalance(c, decimal.NewFromInt(-250))
	assert.Equal(t, "-150", c.CurrentBalance.String())
}

func TestCanReceiveQuotes(t *testing.T) {
	c := client(1000, 0)
	assert.NoError(t, clients.CanReceiveQuotes(c))
	c.Status = entity.ClientStatusBlacklisted
	assert.ErrorIs(t, clients.CanReceiveQuotes(c), domain.ErrClientNotEligible)
	c.Status = entity.ClientStatusSuspended
	assert.ErrorIs(t, clients.CanReceiveQuotes(c), domain.ErrClientNotEligible)
}

func TestDueDate_SegunCondicionDePago(t *testing.T) {
	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := client(0, 0)
	assert.Equal(t, d.AddDate(0, 0, 30), clients.DueDate(c, d))
	c.PaymentTerms = entity.PaymentTermsImmediate
	assert.Equal(t, d, clients.DueDate(c, d))
	c.PaymentTerms = entity.PaymentTerms14Days
	assert.Equal(t, d.AddDate(0, 0, 14), clients.DueDate(c, d))
}

func TestValidStatusChange(t *testing.T) {
	assert.NoError(t, clients.ValidStatusChange(entity.ClientStatusActive, entity.ClientStatusSuspended))
	assert.ErrorIs(t, clients.ValidStatusChange(entity.ClientStatusBlacklisted, entity.ClientStatusActive), domain.ErrInvalidTransition)
	assert.ErrorIs(t, clients.ValidStatusChange(entity.ClientStatusActive, entity.ClientStatusBlacklisted), domain.ErrInvalidTransition)
}
