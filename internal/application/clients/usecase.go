// Package clients casos de uso del libro de clientes: alta, estado, crédito y saldo.
package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

const historyLimit = 100

// ClientUseCase casos de uso de clientes.
type ClientUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(txRunner repository.TxRunner, repos repository.Repos, log zerolog.Logger) *ClientUseCase {
	return &ClientUseCase{txRunner: txRunner, repos: repos, log: log}
}

// Create da de alta un cliente ACTIVE con saldo cero.
func (uc *ClientUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := policy.Authorize(actor, policy.CreateClient, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	if !validType(in.Type) {
		return nil, domain.Invalid("type", "tipo de cliente desconocido")
	}
	terms := in.PaymentTerms
	if terms == "" {
		terms = entity.PaymentTerms30Days
	}
	if !clients.ValidPaymentTerms(terms) {
		return nil, domain.Invalid("payment_terms", "condición de pago desconocida")
	}
	if in.CreditLimit.IsNegative() {
		return nil, domain.Invalid("credit_limit", "no puede ser negativo")
	}
	if in.DiscountRate.IsNegative() || in.DiscountRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.Invalid("discount_rate", "debe estar entre 0 y 100")
	}
	var c *entity.Client
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		now := time.Now()
		number, err := numbering.Next(ctx, tx.Sequences(), numbering.Client, now)
		if err != nil {
			return err
		}
		c = &entity.Client{
			ID:               uuid.New().String(),
			ClientNumber:     number,
			Name:             strings.TrimSpace(in.Name),
			Type:             in.Type,
			Status:           entity.ClientStatusActive,
			ContactPerson:    in.ContactPerson,
			Email:            in.Email,
			Phone:            in.Phone,
			Address:          in.Address,
			City:             in.City,
			TaxNumber:        in.TaxNumber,
			CreditLimit:      in.CreditLimit,
			CurrentBalance:   decimal.Zero,
			PaymentTerms:     terms,
			DiscountRate:     in.DiscountRate,
			AccountManagerID: in.AccountManagerID,
			Notes:            in.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := tx.Clients().Create(ctx, c); err != nil {
			return err
		}
		return uc.history(ctx, tx, c.ID, entity.HistoryCreated, "", c.Status, "", actor.ID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToClientResponse(c)
	return &out, nil
}

// Get devuelve un cliente.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repos.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToClientResponse(c)
	return &out, nil
}

// List lista clientes.
func (uc *ClientUseCase) List(ctx context.Context, f repository.ClientFilter) ([]dto.ClientResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Clients().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToClientResponse(c))
	}
	return out, nil
}

// Update modifica datos de contacto. Lo puede hacer un gerente o el responsable de la cuenta.
func (uc *ClientUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	var c *entity.Client
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		c, err = tx.Clients().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.UpdateClient, c); err != nil {
			return err
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.Invalid("name", "es obligatorio")
			}
			c.Name = strings.TrimSpace(*in.Name)
		}
		if in.PaymentTerms != nil {
			if !clients.ValidPaymentTerms(*in.PaymentTerms) {
				return domain.Invalid("payment_terms", "condición de pago desconocida")
			}
			c.PaymentTerms = *in.PaymentTerms
		}
		setIf(&c.ContactPerson, in.ContactPerson)
		setIf(&c.Email, in.Email)
		setIf(&c.Phone, in.Phone)
		setIf(&c.Address, in.Address)
		setIf(&c.City, in.City)
		setIf(&c.AccountManagerID, in.AccountManagerID)
		setIf(&c.Notes, in.Notes)
		c.UpdatedAt = time.Now()
		return tx.Clients().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToClientResponse(c)
	return &out, nil
}

// ChangeStatus pasa a ACTIVE, INACTIVE o SUSPENDED. BLACKLISTED tiene su propio flujo.
func (uc *ClientUseCase) ChangeStatus(ctx context.Context, actor policy.Actor, id string, in dto.ChangeClientStatusRequest) (*dto.ClientResponse, error) {
	if err := policy.Authorize(actor, policy.ManageClientCredit, nil); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, c *entity.Client) error {
		if err := clients.ValidStatusChange(c.Status, in.Status); err != nil {
			return err
		}
		old := c.Status
		c.Status = in.Status
		return uc.history(ctx, tx, c.ID, entity.HistoryStatusChange, old, c.Status, in.Notes, actor.ID)
	})
}

// UpdateCreditLimit cambia el límite de crédito.
func (uc *ClientUseCase) UpdateCreditLimit(ctx context.Context, actor policy.Actor, id string, in dto.CreditLimitRequest) (*dto.ClientResponse, error) {
	if err := policy.Authorize(actor, policy.ManageClientCredit, nil); err != nil {
		return nil, err
	}
	if in.CreditLimit.IsNegative() {
		return nil, domain.Invalid("credit_limit", "no puede ser negativo")
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, c *entity.Client) error {
		old := c.CreditLimit
		c.CreditLimit = in.CreditLimit
		return uc.history(ctx, tx, c.ID, entity.HistoryCreditLimitChange, old.StringFixed(2), c.CreditLimit.StringFixed(2), in.Notes, actor.ID)
	})
}

// Blacklist bloquea al cliente y deja registro del motivo.
func (uc *ClientUseCase) Blacklist(ctx context.Context, actor policy.Actor, id string, in dto.BlacklistRequest) (*dto.ClientResponse, error) {
	if err := policy.Authorize(actor, policy.BlacklistClient, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.Invalid("reason", "es obligatoria")
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, c *entity.Client) error {
		if c.Status == entity.ClientStatusBlacklisted {
			return &domain.TransitionError{Entity: "client", From: c.Status, To: entity.ClientStatusBlacklisted}
		}
		old := c.Status
		c.Status = entity.ClientStatusBlacklisted
		if err := tx.Clients().CreateBlacklist(ctx, &entity.ClientBlacklist{
			ID:            uuid.New().String(),
			ClientID:      c.ID,
			Reason:        strings.TrimSpace(in.Reason),
			BlacklistedBy: actor.ID,
			Notes:         in.Notes,
			CreatedAt:     time.Now(),
		}); err != nil {
			return err
		}
		return uc.history(ctx, tx, c.ID, entity.HistoryStatusChange, old, c.Status, in.Reason, actor.ID)
	})
}

// Reinstate saca a un cliente de la lista negra y lo deja ACTIVE.
func (uc *ClientUseCase) Reinstate(ctx context.Context, actor policy.Actor, id, notes string) (*dto.ClientResponse, error) {
	if err := policy.Authorize(actor, policy.BlacklistClient, nil); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(tx repository.Repos, c *entity.Client) error {
		if c.Status != entity.ClientStatusBlacklisted {
			return &domain.TransitionError{Entity: "client", From: c.Status, To: entity.ClientStatusActive}
		}
		c.Status = entity.ClientStatusActive
		return uc.history(ctx, tx, c.ID, entity.HistoryStatusChange, entity.ClientStatusBlacklisted, c.Status, notes, actor.ID)
	})
}

// CreditSummary límite, saldo, disponible y nivel de riesgo.
func (uc *ClientUseCase) CreditSummary(ctx context.Context, id string) (*dto.CreditSummaryResponse, error) {
	c, err := uc.repos.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToCreditSummary(c)
	return &out, nil
}

// History auditoría del cliente, más reciente primero.
func (uc *ClientUseCase) History(ctx context.Context, id string) ([]dto.ClientHistoryResponse, error) {
	if _, err := uc.repos.Clients().GetByID(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.repos.Clients().ListHistory(ctx, id, historyLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.ToClientHistoryResponse(h))
	}
	return out, nil
}

// UpdateBalanceInTx ajusta el saldo del cliente dentro de la transacción del caller
// (facturas, pagos confirmados y notas crédito). Bloquea la fila del cliente.
func (uc *ClientUseCase) UpdateBalanceInTx(ctx context.Context, tx repository.Repos, clientID string, delta decimal.Decimal, reference, userID string) error {
	if delta.IsZero() {
		return nil
	}
	c, err := tx.Clients().GetForUpdate(ctx, clientID)
	if err != nil {
		return fmt.Errorf("bloquear cliente: %w", err)
	}
	old := c.CurrentBalance
	clients.UpdateBalance(c, delta)
	c.UpdatedAt = time.Now()
	if err := tx.Clients().Update(ctx, c); err != nil {
		return fmt.Errorf("actualizar saldo: %w", err)
	}
	uc.log.Debug().
		Str("client", c.ClientNumber).
		Str("delta", delta.StringFixed(2)).
		Str("balance", c.CurrentBalance.StringFixed(2)).
		Str("reference", reference).
		Msg("saldo de cliente actualizado")
	return uc.history(ctx, tx, c.ID, entity.HistoryBalanceUpdate, old.StringFixed(2), c.CurrentBalance.StringFixed(2), reference, userID)
}

func (uc *ClientUseCase) mutate(ctx context.Context, id string, fn func(tx repository.Repos, c *entity.Client) error) (*dto.ClientResponse, error) {
	var c *entity.Client
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		c, err = tx.Clients().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, c); err != nil {
			return err
		}
		c.UpdatedAt = time.Now()
		return tx.Clients().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToClientResponse(c)
	return &out, nil
}

func (uc *ClientUseCase) history(ctx context.Context, tx repository.Repos, clientID, action, oldValue, newValue, notes, userID string) error {
	return tx.Clients().CreateHistory(ctx, &entity.ClientHistory{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Action:    action,
		OldValue:  oldValue,
		NewValue:  newValue,
		Notes:     notes,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})
}

func validType(t string) bool {
	switch t {
	case entity.ClientTypeInternal, entity.ClientTypeExternal, entity.ClientTypeGovernment,
		entity.ClientTypePrivate, entity.ClientTypeIndividual:
		return true
	}
	return false
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
