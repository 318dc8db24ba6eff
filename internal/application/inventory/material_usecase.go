// Package inventory casos de uso del libro de materiales: catálogo, ajustes manuales,
// inspecciones, disponibilidad y el servicio de reservas que usan las órdenes.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/inventory"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

const adjustmentHistoryLimit = 50

// MaterialUseCase casos de uso de materiales y categorías.
type MaterialUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(txRunner repository.TxRunner, repos repository.Repos, log zerolog.Logger) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, repos: repos, log: log}
}

// Create da de alta un material con todo su stock disponible.
func (uc *MaterialUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := policy.Authorize(actor, policy.ManageMaterials, nil); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	switch {
	case code == "":
		return nil, domain.Invalid("code", "es obligatorio")
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.Invalid("name", "es obligatorio")
	case in.TotalQuantity < 0:
		return nil, domain.Invalid("total_quantity", "no puede ser negativa")
	case in.MinimumStockLevel < 0:
		return nil, domain.Invalid("minimum_stock_level", "no puede ser negativo")
	case in.DailyHireRate.IsNegative():
		return nil, domain.Invalid("daily_hire_rate", "no puede ser negativa")
	}
	if existing, err := uc.repos.Materials().GetByCode(ctx, code); err == nil && existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CategoryID != "" {
		if _, err := uc.repos.Categories().GetByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}
	unit := in.UnitOfMeasure
	if unit == "" {
		unit = "PIECE"
	}
	now := time.Now()
	m := &entity.Material{
		ID:                uuid.New().String(),
		Code:              code,
		Name:              strings.TrimSpace(in.Name),
		CategoryID:        in.CategoryID,
		Description:       in.Description,
		UnitOfMeasure:     unit,
		DailyHireRate:     in.DailyHireRate,
		ReplacementCost:   in.ReplacementCost,
		TotalQuantity:     in.TotalQuantity,
		AvailableQuantity: in.TotalQuantity,
		MinimumStockLevel: in.MinimumStockLevel,
		Condition:         entity.MaterialConditionGood,
		Location:          in.Location,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repos.Materials().Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// Get devuelve un material.
func (uc *MaterialUseCase) Get(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repos.Materials().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// List lista materiales con filtros.
func (uc *MaterialUseCase) List(ctx context.Context, f repository.MaterialFilter) ([]dto.MaterialResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	list, err := uc.repos.Materials().List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMaterialResponse(m))
	}
	return out, nil
}

// Update modifica datos descriptivos y tarifas. Los contadores solo cambian con ajustes.
func (uc *MaterialUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := policy.Authorize(actor, policy.ManageMaterials, nil); err != nil {
		return nil, err
	}
	var m *entity.Material
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := tx.Materials().GetForUpdate(ctx, []string{id})
		if err != nil {
			return err
		}
		m = locked[id]
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.Invalid("name", "es obligatorio")
			}
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.CategoryID != nil {
			m.CategoryID = *in.CategoryID
		}
		if in.Description != nil {
			m.Description = *in.Description
		}
		if in.DailyHireRate != nil {
			if in.DailyHireRate.IsNegative() {
				return domain.Invalid("daily_hire_rate", "no puede ser negativa")
			}
			m.DailyHireRate = *in.DailyHireRate
		}
		if in.ReplacementCost != nil {
			m.ReplacementCost = *in.ReplacementCost
		}
		if in.MinimumStockLevel != nil {
			if *in.MinimumStockLevel < 0 {
				return domain.Invalid("minimum_stock_level", "no puede ser negativo")
			}
			m.MinimumStockLevel = *in.MinimumStockLevel
		}
		if in.Location != nil {
			m.Location = *in.Location
		}
		m.UpdatedAt = time.Now()
		return tx.Materials().Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// AdjustStock suma o retira unidades fuera del ciclo de alquiler y deja el registro de auditoría.
func (uc *MaterialUseCase) AdjustStock(ctx context.Context, actor policy.Actor, id string, in dto.AdjustStockRequest) (*dto.MaterialResponse, error) {
	if err := policy.Authorize(actor, policy.AdjustStock, nil); err != nil {
		return nil, err
	}
	var m *entity.Material
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := tx.Materials().GetForUpdate(ctx, []string{id})
		if err != nil {
			return err
		}
		m = locked[id]
		if err := inventory.Adjust(m, in.Quantity, in.Direction, strings.TrimSpace(in.Reason)); err != nil {
			return err
		}
		now := time.Now()
		m.UpdatedAt = now
		if err := tx.Materials().Update(ctx, m); err != nil {
			return err
		}
		return tx.Materials().CreateAdjustment(ctx, &entity.StockAdjustment{
			ID:         uuid.New().String(),
			MaterialID: m.ID,
			Quantity:   in.Quantity,
			Direction:  in.Direction,
			Reason:     strings.TrimSpace(in.Reason),
			Reference:  in.Reference,
			CreatedBy:  actor.ID,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("material", m.Code).
		Str("direction", in.Direction).
		Int("quantity", in.Quantity).
		Str("reason", in.Reason).
		Str("user", actor.ID).
		Msg("ajuste de stock")
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// ListAdjustments últimos ajustes de un material.
func (uc *MaterialUseCase) ListAdjustments(ctx context.Context, id string) ([]dto.StockAdjustmentResponse, error) {
	if _, err := uc.repos.Materials().GetByID(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.repos.Materials().ListAdjustments(ctx, id, adjustmentHistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToStockAdjustmentResponse(a))
	}
	return out, nil
}

// CheckAvailability indica si hay quantity unidades disponibles. Solo lectura.
func (uc *MaterialUseCase) CheckAvailability(ctx context.Context, id string, quantity int) (*dto.AvailabilityResponse, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	m, err := uc.repos.Materials().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityResponse{
		Available:         m.AvailableQuantity >= quantity,
		AvailableQuantity: m.AvailableQuantity,
	}, nil
}

// ListLowStock materiales con disponible en o bajo el mínimo.
func (uc *MaterialUseCase) ListLowStock(ctx context.Context) ([]dto.MaterialResponse, error) {
	list, err := uc.repos.Materials().ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMaterialResponse(m))
	}
	return out, nil
}

// RecordInspection registra una inspección y actualiza condición y fecha del material.
// Un material no apto para uso queda UNDER_MAINTENANCE.
func (uc *MaterialUseCase) RecordInspection(ctx context.Context, actor policy.Actor, id string, in dto.InspectionRequest) (*dto.MaterialResponse, error) {
	if err := policy.Authorize(actor, policy.RecordInspection, nil); err != nil {
		return nil, err
	}
	condition := in.Condition
	if !in.SafeForUse {
		condition = entity.MaterialConditionUnderMaintenance
	}
	if !validCondition(condition) {
		return nil, domain.Invalid("condition", "condición desconocida")
	}
	var m *entity.Material
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := tx.Materials().GetForUpdate(ctx, []string{id})
		if err != nil {
			return err
		}
		m = locked[id]
		now := time.Now()
		if err := tx.Materials().CreateInspection(ctx, &entity.MaterialInspection{
			ID:                 uuid.New().String(),
			MaterialID:         m.ID,
			InspectedBy:        actor.ID,
			InspectionDate:     now,
			Condition:          condition,
			SafeForUse:         in.SafeForUse,
			Notes:              in.Notes,
			NextInspectionDate: in.NextInspectionDate,
			CreatedAt:          now,
		}); err != nil {
			return err
		}
		m.Condition = condition
		m.LastInspection = &now
		m.UpdatedAt = now
		return tx.Materials().Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// CreateCategory crea una categoría de materiales.
func (uc *MaterialUseCase) CreateCategory(ctx context.Context, actor policy.Actor, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := policy.Authorize(actor, policy.ManageMaterials, nil); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: time.Now()}
	if err := uc.repos.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ToCategoryResponse(c)
	return &out, nil
}

// ListCategories todas las categorías.
func (uc *MaterialUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repos.Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCategoryResponse(c))
	}
	return out, nil
}

func validCondition(c string) bool {
	switch c {
	case entity.MaterialConditionGood, entity.MaterialConditionFair,
		entity.MaterialConditionDamaged, entity.MaterialConditionUnderMaintenance:
		return true
	}
	return false
}
