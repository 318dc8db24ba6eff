// Package billing casos de uso de facturas, pagos, notas crédito y gastos.
package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// ClientLedger ajusta el saldo del cliente con los repositorios del caller (misma transacción).
// Si retorna error, el caller debe hacer rollback.
type ClientLedger interface {
	UpdateBalanceInTx(ctx context.Context, tx repository.Repos, clientID string, delta decimal.Decimal, reference, userID string) error
}

// Settings parámetros de facturación (config.Hiring).
type Settings struct {
	TaxRate         decimal.Decimal
	LatePenaltyRate decimal.Decimal
}
