// Package hiring casos de uso del ciclo comercial: solicitudes de cotización,
// cotizaciones, órdenes de alquiler y contratos.
package hiring

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// Settings parámetros comerciales (config.Hiring).
type Settings struct {
	TaxRate            decimal.Decimal
	LatePenaltyRate    decimal.Decimal
	QuotationValidDays int
}

// QuotationPublisher genera y guarda el PDF de una cotización.
type QuotationPublisher interface {
	PublishQuotation(ctx context.Context, quotationID, userID string) (*entity.GeneratedDocument, error)
}
