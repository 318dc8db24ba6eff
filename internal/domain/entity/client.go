package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	ClientTypeInternal   = "INTERNAL"
	ClientTypeExternal   = "EXTERNAL"
	ClientTypeGovernment = "GOVERNMENT"
	ClientTypePrivate    = "PRIVATE"
	ClientTypeIndividual = "INDIVIDUAL"
)

// Estados de cliente.
const (
	ClientStatusActive      = "ACTIVE"
	ClientStatusInactive    = "INACTIVE"
	ClientStatusSuspended   = "SUSPENDED"
	ClientStatusBlacklisted = "BLACKLISTED"
)

// Condiciones de pago.
const (
	PaymentTermsImmediate = "IMMEDIATE"
	PaymentTerms7Days     = "7_DAYS"
	PaymentTerms14Days    = "14_DAYS"
	PaymentTerms30Days    = "30_DAYS"
	PaymentTerms60Days    = "60_DAYS"
	PaymentTerms90Days    = "90_DAYS"
)

// Client representa un cliente que alquila equipos.
// CurrentBalance puede quedar negativo (saldo a favor tras notas crédito).
type Client struct {
	ID               string
	ClientNumber     string // CL-YYYY-NNNN
	Name             string
	Type             string
	Status           string
	ContactPerson    string
	Email            string
	Phone            string
	Address          string
	City             string
	TaxNumber        string
	CreditLimit      decimal.Decimal
	CurrentBalance   decimal.Decimal
	PaymentTerms     string
	DiscountRate     decimal.Decimal
	AccountManagerID string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AccountManager implementa policy.Managed.
func (c *Client) AccountManager() string { return c.AccountManagerID }

// Acciones registradas en ClientHistory.
const (
	HistoryCreated           = "CREATED"
	HistoryStatusChange      = "STATUS_CHANGE"
	HistoryCreditLimitChange = "CREDIT_LIMIT_CHANGE"
	HistoryBalanceUpdate     = "BALANCE_UPDATE"
	HistoryContactAdded      = "CONTACT_ADDED"
	HistorySiteAdded         = "SITE_ADDED"
	HistoryNoteAdded         = "NOTE_ADDED"
	HistoryRated             = "RATED"
)

// ClientHistory fila de auditoría de cambios sobre un cliente.
type ClientHistory struct {
	ID        string
	ClientID  string
	Action    string
	OldValue  string
	NewValue  string
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// ClientBlacklist registro de un bloqueo de cliente.
type ClientBlacklist struct {
	ID            string
	ClientID      string
	Reason        string
	BlacklistedBy string
	Notes         string
	CreatedAt     time.Time
}
