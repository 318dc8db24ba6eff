// Package numbering formato de números de documento PREFIX-YYYY-NNNN.
// El contador vive en la base de datos (tabla document_sequences) y se incrementa de forma
// atómica dentro de la transacción que crea el documento.
package numbering

import (
	"context"
	"fmt"
	"time"
)

// Prefijos por tipo de documento.
const (
	Client           = "CL"
	RFQ              = "RFQ"
	Quotation        = "QT"
	HireOrder        = "OR"
	Invoice          = "INV"
	Payment          = "PAY"
	CreditNote       = "CN"
	TransportRequest = "TR"
	Delivery         = "DEL"
	DeliveryNote     = "DN"
	GRV              = "GRV"
	LeaseAgreement   = "LA"
	Expense          = "EXP"
)

// Sequencer entrega el siguiente valor del contador (prefix, year). Debe ser atómico.
type Sequencer interface {
	NextValue(ctx context.Context, prefix string, year int) (int64, error)
}

// Format arma el número con relleno de cuatro dígitos (más si el contador los supera).
func Format(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Next reserva el siguiente número para prefix en el año de at.
func Next(ctx context.Context, seq Sequencer, prefix string, at time.Time) (string, error) {
	year := at.Year()
	n, err := seq.NextValue(ctx, prefix, year)
	if err != nil {
		return "", fmt.Errorf("numeración %s: %w", prefix, err)
	}
	return Format(prefix, year, n), nil
}
