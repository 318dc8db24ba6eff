// Package inventory contiene las reglas del libro de materiales: reservar al crear
// una orden, liberar al devolver y ajustar manualmente, manteniendo siempre
// Available + Hired == Total.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// Line cantidad pedida de un material (una por ítem de orden).
type Line struct {
	MaterialID string
	Quantity   int
}

// Reserve mueve qty unidades de disponibles a alquiladas.
// Si no alcanza el disponible devuelve *domain.StockError y no modifica el material.
func Reserve(m *entity.Material, qty int) error {
	if qty <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if qty > m.AvailableQuantity {
		return &domain.StockError{MaterialCode: m.Code, Requested: qty, Available: m.AvailableQuantity}
	}
	m.AvailableQuantity -= qty
	m.HiredQuantity += qty
	return nil
}

// ReserveAll valida todas las líneas (sumando las repetidas del mismo material) y solo
// entonces reserva. Si alguna falla no se toca ningún material.
func ReserveAll(materials map[string]*entity.Material, lines []Line) error {
	totals := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return domain.Invalid("quantity", "debe ser mayor que cero")
		}
		totals[l.MaterialID] += l.Quantity
	}
	for _, id := range SortedIDs(lines) {
		m, ok := materials[id]
		if !ok {
			return domain.ErrNotFound
		}
		if totals[id] > m.AvailableQuantity {
			return &domain.StockError{MaterialCode: m.Code, Requested: totals[id], Available: m.AvailableQuantity}
		}
	}
	for _, id := range SortedIDs(lines) {
		m := materials[id]
		m.AvailableQuantity -= totals[id]
		m.HiredQuantity += totals[id]
	}
	return nil
}

// Unreserve devuelve a disponibles unidades reservadas que nunca salieron de bodega
// (orden cancelada o despacho parcial).
func Unreserve(m *entity.Material, qty int) {
	if qty <= 0 {
		return
	}
	if qty > m.HiredQuantity {
		qty = m.HiredQuantity
	}
	m.HiredQuantity -= qty
	m.AvailableQuantity += qty
}

// Release liquida unidades despachadas: dispatched salen de alquiladas y returned vuelven
// a disponibles. La diferencia se da de baja del total para conservar el invariante.
// Nunca falla; los valores fuera de rango se recortan. Devuelve las unidades dadas de baja.
func Release(m *entity.Material, dispatched, returned int) int {
	if dispatched < 0 {
		dispatched = 0
	}
	if dispatched > m.HiredQuantity {
		dispatched = m.HiredQuantity
	}
	if returned < 0 {
		returned = 0
	}
	if returned > dispatched {
		returned = dispatched
	}
	writtenOff := dispatched - returned
	m.HiredQuantity -= dispatched
	m.AvailableQuantity += returned
	m.TotalQuantity -= writtenOff
	return writtenOff
}

// Adjust aplica un ajuste manual (ADD o REMOVE). La razón es obligatoria.
func Adjust(m *entity.Material, qty int, direction, reason string) error {
	if qty <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if reason == "" {
		return domain.Invalid("reason", "es obligatoria")
	}
	switch direction {
	case entity.AdjustmentAdd:
		m.TotalQuantity += qty
		m.AvailableQuantity += qty
	case entity.AdjustmentRemove:
		if qty > m.AvailableQuantity {
			return domain.Invalid("quantity", "supera las unidades disponibles")
		}
		m.TotalQuantity -= qty
		m.AvailableQuantity -= qty
	default:
		return domain.Invalid("direction", "debe ser ADD o REMOVE")
	}
	return nil
}

// IsLowStock indica si el disponible llegó al mínimo configurado.
func IsLowStock(m *entity.Material) bool {
	return m.AvailableQuantity <= m.MinimumStockLevel
}

// Consistent verifica el invariante de contadores.
func Consistent(m *entity.Material) bool {
	return m.AvailableQuantity >= 0 &&
		m.HiredQuantity >= 0 &&
		m.AvailableQuantity <= m.TotalQuantity &&
		m.AvailableQuantity+m.HiredQuantity == m.TotalQuantity
}

// UtilizationRate porcentaje alquilado del total (0 si no hay unidades).
func UtilizationRate(m *entity.Material) decimal.Decimal {
	if m.TotalQuantity == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(m.HiredQuantity)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(m.TotalQuantity))).
		Round(2)
}

// WriteOffValue costo de reposición de qty unidades perdidas.
func WriteOffValue(m *entity.Material, qty int) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	return m.ReplacementCost.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// SortedIDs ids de material únicos en orden ascendente; es el orden en que se bloquean filas.
func SortedIDs(lines []Line) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.MaterialID]; ok {
			continue
		}
		seen[l.MaterialID] = struct{}{}
		ids = append(ids, l.MaterialID)
	}
	sort.Strings(ids)
	return ids
}
