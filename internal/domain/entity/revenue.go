package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRecord ingreso reconocido de una orden en un período (único por orden y período).
type RevenueRecord struct {
	ID               string
	HireOrderID      string
	ClientID         string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	BaseHireRevenue  decimal.Decimal
	TransportRevenue decimal.Decimal
	PenaltyRevenue   decimal.Decimal
	DamageRevenue    decimal.Decimal
	TotalRevenue     decimal.Decimal
	CreatedAt        time.Time
}
