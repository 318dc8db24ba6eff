package entity

import "time"

// Estados de una solicitud de cotización.
const (
	RFQStatusReceived = "RECEIVED"
	RFQStatusQuoted   = "QUOTED"
	RFQStatusAccepted = "ACCEPTED"
	RFQStatusRejected = "REJECTED"
	RFQStatusExpired  = "EXPIRED"
)

// RequestForQuotation solicitud de precio enviada por un cliente.
type RequestForQuotation struct {
	ID               string
	RFQNumber        string // RFQ-YYYY-NNNN
	ClientID         string
	ReceivedBy       string
	RequiredDate     time.Time
	HireDurationDays int
	SiteAddress      string
	Notes            string
	Status           string
	Items            []RFQItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RFQItem material y cantidad solicitados.
type RFQItem struct {
	ID                string
	RFQID             string
	MaterialID        string
	QuantityRequested int
	Notes             string
}
