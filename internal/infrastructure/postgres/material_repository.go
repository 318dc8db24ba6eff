package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var (
	_ repository.MaterialRepository = (*MaterialRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

const materialColumns = `id, code, name, COALESCE(category_id, ''), description, unit_of_measure,
	daily_hire_rate, replacement_cost, total_quantity, available_quantity, hired_quantity,
	minimum_stock_level, condition, location, last_inspection, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row rowScanner) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.CategoryID, &m.Description, &m.UnitOfMeasure,
		&m.DailyHireRate, &m.ReplacementCost, &m.TotalQuantity, &m.AvailableQuantity, &m.HiredQuantity,
		&m.MinimumStockLevel, &m.Condition, &m.Location, &m.LastInspection, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, code, name, category_id, description, unit_of_measure,
			daily_hire_rate, replacement_cost, total_quantity, available_quantity, hired_quantity,
			minimum_stock_level, condition, location, last_inspection, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, nullable(m.CategoryID), m.Description, m.UnitOfMeasure,
		m.DailyHireRate, m.ReplacementCost, m.TotalQuantity, m.AvailableQuantity, m.HiredQuantity,
		m.MinimumStockLevel, m.Condition, m.Location, m.LastInspection, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert material", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get material", err)
	}
	return m, nil
}

func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE code = $1`, code))
	if err != nil {
		return nil, wrapErr("get material by code", err)
	}
	return m, nil
}

// Update guarda los contadores; el CHECK de la tabla rechaza un ledger descuadrado.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, category_id = $3, description = $4, unit_of_measure = $5,
			daily_hire_rate = $6, replacement_cost = $7, total_quantity = $8, available_quantity = $9,
			hired_quantity = $10, minimum_stock_level = $11, condition = $12, location = $13,
			last_inspection = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Name, nullable(m.CategoryID), m.Description, m.UnitOfMeasure,
		m.DailyHireRate, m.ReplacementCost, m.TotalQuantity, m.AvailableQuantity,
		m.HiredQuantity, m.MinimumStockLevel, m.Condition, m.Location,
		m.LastInspection, m.UpdatedAt,
	)
	return expectOne("update material", tag, err)
}

func (r *MaterialRepo) List(ctx context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	var (
		where []string
		args  []any
	)
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, strings.ToLower(f.Search)+"%")
		where = append(where, fmt.Sprintf("(lower(code) LIKE $%[1]d OR lower(name) LIKE $%[1]d)", len(args)))
	}
	if f.LowStock {
		where = append(where, "available_quantity <= minimum_stock_level")
	}
	query := `SELECT ` + materialColumns + ` FROM materials`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := page(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list materials", err)
	}
	out, err := collect(rows, scanMaterial)
	if err != nil {
		return nil, wrapErr("scan materials", err)
	}
	return out, nil
}

func (r *MaterialRepo) ListLowStock(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials
		WHERE available_quantity <= minimum_stock_level ORDER BY code`)
	if err != nil {
		return nil, wrapErr("list low stock", err)
	}
	out, err := collect(rows, scanMaterial)
	if err != nil {
		return nil, wrapErr("scan low stock", err)
	}
	return out, nil
}

// GetForUpdate bloquea en orden de id para que dos reservas concurrentes no se crucen.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, ids []string) (map[string]*entity.Material, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials
		WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, wrapErr("lock materials", err)
	}
	list, err := collect(rows, scanMaterial)
	if err != nil {
		return nil, wrapErr("scan locked materials", err)
	}
	out := make(map[string]*entity.Material, len(list))
	for _, m := range list {
		out[m.ID] = m
	}
	return out, nil
}

func (r *MaterialRepo) CreateAdjustment(ctx context.Context, a *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, material_id, quantity, direction, reason, reference, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.q.Exec(ctx, query, a.ID, a.MaterialID, a.Quantity, a.Direction, a.Reason, a.Reference, a.CreatedBy, a.CreatedAt)
	if err != nil {
		return wrapErr("insert stock adjustment", err)
	}
	return nil
}

func (r *MaterialRepo) ListAdjustments(ctx context.Context, materialID string, limit int) ([]*entity.StockAdjustment, error) {
	limit, _ = page(limit, 0)
	rows, err := r.q.Query(ctx, `
		SELECT id, material_id, quantity, direction, reason, reference, created_by, created_at
		FROM stock_adjustments WHERE material_id = $1
		ORDER BY created_at DESC LIMIT $2`, materialID, limit)
	if err != nil {
		return nil, wrapErr("list stock adjustments", err)
	}
	out, err := collect(rows, func(row rowScanner) (*entity.StockAdjustment, error) {
		var a entity.StockAdjustment
		err := row.Scan(&a.ID, &a.MaterialID, &a.Quantity, &a.Direction, &a.Reason, &a.Reference, &a.CreatedBy, &a.CreatedAt)
		return &a, err
	})
	if err != nil {
		return nil, wrapErr("scan stock adjustments", err)
	}
	return out, nil
}

func (r *MaterialRepo) CreateInspection(ctx context.Context, in *entity.MaterialInspection) error {
	query := `
		INSERT INTO material_inspections (id, material_id, inspected_by, inspection_date, condition,
			safe_for_use, notes, next_inspection_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.q.Exec(ctx, query, in.ID, in.MaterialID, in.InspectedBy, in.InspectionDate, in.Condition,
		in.SafeForUse, in.Notes, in.NextInspectionDate, in.CreatedAt)
	if err != nil {
		return wrapErr("insert inspection", err)
	}
	return nil
}

// CategoryRepo implementación de CategoryRepository.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row rowScanner) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (id, name, description, created_at) VALUES ($1,$2,$3,$4)`,
		c.ID, c.Name, c.Description, c.CreatedAt)
	if err != nil {
		return wrapErr("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get category", err)
	}
	return c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	out, err := collect(rows, scanCategory)
	if err != nil {
		return nil, wrapErr("scan categories", err)
	}
	return out, nil
}
