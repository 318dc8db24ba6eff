package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	ContactPerson    string          `json:"contact_person,omitempty"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Address          string          `json:"address,omitempty"`
	City             string          `json:"city,omitempty"`
	TaxNumber        string          `json:"tax_number,omitempty"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	PaymentTerms     string          `json:"payment_terms,omitempty"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	AccountManagerID string          `json:"account_manager_id,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id. Estado, crédito y saldo tienen endpoints propios.
type UpdateClientRequest struct {
	Name             *string `json:"name,omitempty"`
	ContactPerson    *string `json:"contact_person,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	City             *string `json:"city,omitempty"`
	PaymentTerms     *string `json:"payment_terms,omitempty"`
	AccountManagerID *string `json:"account_manager_id,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// ChangeClientStatusRequest body para POST /api/clients/:id/status.
type ChangeClientStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// CreditLimitRequest body para POST /api/clients/:id/credit-limit.
type CreditLimitRequest struct {
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Notes       string          `json:"notes,omitempty"`
}

// BlacklistRequest body para POST /api/clients/:id/blacklist.
type BlacklistRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID               string          `json:"id"`
	ClientNumber     string          `json:"client_number"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	ContactPerson    string          `json:"contact_person,omitempty"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Address          string          `json:"address,omitempty"`
	City             string          `json:"city,omitempty"`
	TaxNumber        string          `json:"tax_number,omitempty"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	PaymentTerms     string          `json:"payment_terms"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	AccountManagerID string          `json:"account_manager_id,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreditSummaryResponse respuesta de GET /api/clients/:id/credit.
type CreditSummaryResponse struct {
	ClientID          string          `json:"client_id"`
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	AvailableCredit   decimal.Decimal `json:"available_credit"`
	CreditUtilization decimal.Decimal `json:"credit_utilization"`
	CreditStatus      string          `json:"credit_status"`
	PaymentTermsDays  int             `json:"payment_terms_days"`
}

// ClientHistoryResponse fila de auditoría.
type ClientHistoryResponse struct {
	Action    string    `json:"action"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ToClientResponse convierte la entidad.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:               c.ID,
		ClientNumber:     c.ClientNumber,
		Name:             c.Name,
		Type:             c.Type,
		Status:           c.Status,
		ContactPerson:    c.ContactPerson,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		City:             c.City,
		TaxNumber:        c.TaxNumber,
		CreditLimit:      c.CreditLimit,
		CurrentBalance:   c.CurrentBalance,
		PaymentTerms:     c.PaymentTerms,
		DiscountRate:     c.DiscountRate,
		AccountManagerID: c.AccountManagerID,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToCreditSummary calcula el resumen de crédito del cliente.
func ToCreditSummary(c *entity.Client) CreditSummaryResponse {
	return CreditSummaryResponse{
		ClientID:          c.ID,
		CreditLimit:       c.CreditLimit,
		CurrentBalance:    c.CurrentBalance,
		AvailableCredit:   clients.AvailableCredit(c),
		CreditUtilization: clients.CreditUtilization(c),
		CreditStatus:      clients.CreditStatus(c),
		PaymentTermsDays:  clients.PaymentTermsDays(c.PaymentTerms),
	}
}

// ToClientHistoryResponse convierte la entidad.
func ToClientHistoryResponse(h *entity.ClientHistory) ClientHistoryResponse {
	return ClientHistoryResponse{
		Action:    h.Action,
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		Notes:     h.Notes,
		CreatedBy: h.CreatedBy,
		CreatedAt: h.CreatedAt,
	}
}
