package repository

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// MaterialFilter filtros del listado de materiales.
type MaterialFilter struct {
	CategoryID string
	Search     string // prefijo de código o nombre
	LowStock   bool
	Limit      int
	Offset     int
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	List(ctx context.Context, f MaterialFilter) ([]*entity.Material, error)
	ListLowStock(ctx context.Context) ([]*entity.Material, error)
	// GetForUpdate bloquea las filas (SELECT ... FOR UPDATE) en orden de id.
	GetForUpdate(ctx context.Context, ids []string) (map[string]*entity.Material, error)

	CreateAdjustment(ctx context.Context, a *entity.StockAdjustment) error
	ListAdjustments(ctx context.Context, materialID string, limit int) ([]*entity.StockAdjustment, error)
	CreateInspection(ctx context.Context, in *entity.MaterialInspection) error
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
