package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain/billing"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// ExpenseUseCase gastos operativos y su aprobación.
type ExpenseUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(txRunner repository.TxRunner, repos repository.Repos, log zerolog.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{txRunner: txRunner, repos: repos, log: log}
}

// Create registra un gasto pendiente de aprobación; lo paga quien lo registra.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := policy.Authorize(actor, policy.RecordExpense, nil); err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entity.Expense{
		ID:               uuid.New().String(),
		Date:             now,
		Category:         in.Category,
		Description:      strings.TrimSpace(in.Description),
		Amount:           in.Amount.Round(2),
		Vendor:           in.Vendor,
		InvoiceReference: in.InvoiceReference,
		PaidBy:           actor.ID,
		PaymentMethod:    in.PaymentMethod,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if e.PaymentMethod == "" {
		e.PaymentMethod = entity.PaymentCash
	}
	if err := billing.ValidateExpense(e); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.Expense, e.Date)
		if err != nil {
			return err
		}
		e.ExpenseNumber = number
		return tx.Expenses().Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("expense", e.ExpenseNumber).Str("category", e.Category).Str("amount", e.Amount.StringFixed(2)).Msg("gasto registrado")
	out := dto.ToExpenseResponse(e)
	return &out, nil
}

// Get devuelve un gasto.
func (uc *ExpenseUseCase) Get(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.repos.Expenses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToExpenseResponse(e)
	return &out, nil
}

// List lista gastos, más reciente primero.
func (uc *ExpenseUseCase) List(ctx context.Context, f repository.ExpenseFilter) ([]dto.ExpenseResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Expenses().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ToExpenseResponse(e))
	}
	return out, nil
}

// Approve aprueba el gasto. Falla con ErrInvalidTransition si ya estaba aprobado.
func (uc *ExpenseUseCase) Approve(ctx context.Context, actor policy.Actor, id string) (*dto.ExpenseResponse, error) {
	if err := policy.Authorize(actor, policy.ApproveExpense, nil); err != nil {
		return nil, err
	}
	var e *entity.Expense
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		e, err = tx.Expenses().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := billing.ApproveExpense(e, actor.ID, time.Now()); err != nil {
			return err
		}
		return tx.Expenses().Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("expense", e.ExpenseNumber).Str("by", actor.ID).Msg("gasto aprobado")
	out := dto.ToExpenseResponse(e)
	return &out, nil
}
