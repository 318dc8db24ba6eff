package hiring

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// orderTransitions grafo de estados de la orden de alquiler. Los estados sin
// entrada son terminales.
var orderTransitions = map[string][]string{
	entity.OrderStatusOrdered:    {entity.OrderStatusApproved, entity.OrderStatusCancelled},
	entity.OrderStatusApproved:   {entity.OrderStatusDispatched, entity.OrderStatusCancelled},
	entity.OrderStatusDispatched: {entity.OrderStatusActive},
	entity.OrderStatusActive:     {entity.OrderStatusReturned},
	entity.OrderStatusReturned:   {entity.OrderStatusCompleted},
}

// CanTransition indica si from -> to es un arco del grafo.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionOrder valida y aplica el cambio de estado. Ante un arco inválido devuelve
// *domain.TransitionError y el estado queda igual.
func TransitionOrder(o *entity.HireOrder, to string) error {
	if !CanTransition(o.Status, to) {
		return &domain.TransitionError{Entity: "hire_order", From: o.Status, To: to}
	}
	o.Status = to
	return nil
}

// ExpectedReturnDate inicio + duración del alquiler.
func ExpectedReturnDate(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// DaysOverdue días de retraso: con devolución registrada se mide contra ella; si la
// orden sigue ACTIVE se mide contra today; en otro caso 0.
func DaysOverdue(o *entity.HireOrder, today time.Time) int {
	expected := truncateDay(o.ExpectedReturnDate)
	if o.ActualReturnDate != nil {
		return positiveDays(truncateDay(*o.ActualReturnDate).Sub(expected))
	}
	if o.Status == entity.OrderStatusActive {
		return positiveDays(truncateDay(today).Sub(expected))
	}
	return 0
}

// LatePenalty días de retraso * tarifa de penalidad.
func LatePenalty(o *entity.HireOrder, today time.Time, ratePerDay decimal.Decimal) decimal.Decimal {
	return ratePerDay.Mul(decimal.NewFromInt(int64(DaysOverdue(o, today)))).Round(2)
}

// IsOverdue orden activa con la fecha esperada ya vencida.
func IsOverdue(o *entity.HireOrder, today time.Time) bool {
	return o.Status == entity.OrderStatusActive && DaysOverdue(o, today) > 0
}

// DispatchQuantities fija QuantityDispatched por ítem. requested vacío despacha lo ordenado;
// un ítem no puede despachar más de lo ordenado. Devuelve por material las unidades
// reservadas que no salen y deben liberarse.
func DispatchQuantities(o *entity.HireOrder, requested map[string]int) (map[string]int, error) {
	for i := range o.Items {
		qty, ok := requested[o.Items[i].ID]
		if !ok {
			continue
		}
		if qty < 0 || qty > o.Items[i].QuantityOrdered {
			return nil, domain.Invalid("quantity_dispatched", "debe estar entre 0 y la cantidad ordenada")
		}
	}
	undispatched := make(map[string]int)
	for i := range o.Items {
		it := &o.Items[i]
		qty, ok := requested[it.ID]
		if !ok {
			qty = it.QuantityOrdered
		}
		it.QuantityDispatched = qty
		if rest := it.QuantityOrdered - qty; rest > 0 {
			undispatched[it.MaterialID] += rest
		}
	}
	return undispatched, nil
}

// ReturnLine cantidad devuelta y condición de un ítem.
type ReturnLine struct {
	Quantity  int
	Condition string
}

// RecordReturns fija QuantityReturned y ConditionOnReturn. Sin dato se asume todo devuelto en buen estado.
func RecordReturns(o *entity.HireOrder, returns map[string]ReturnLine) error {
	for i := range o.Items {
		r, ok := returns[o.Items[i].ID]
		if !ok {
			continue
		}
		if r.Quantity < 0 || r.Quantity > o.Items[i].QuantityDispatched {
			return domain.Invalid("quantity_returned", "debe estar entre 0 y la cantidad despachada")
		}
		if r.Condition != "" && !validReturnCondition(r.Condition) {
			return domain.Invalid("condition", "condición de devolución desconocida")
		}
	}
	for i := range o.Items {
		it := &o.Items[i]
		r, ok := returns[it.ID]
		if !ok {
			r = ReturnLine{Quantity: it.QuantityDispatched, Condition: entity.ReturnConditionGood}
		}
		if r.Condition == "" {
			r.Condition = entity.ReturnConditionGood
		}
		it.QuantityReturned = r.Quantity
		it.ConditionOnReturn = r.Condition
	}
	return nil
}

func validReturnCondition(c string) bool {
	switch c {
	case entity.ReturnConditionGood, entity.ReturnConditionFair,
		entity.ReturnConditionDamaged, entity.ReturnConditionLost:
		return true
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func positiveDays(d time.Duration) int {
	days := int(d.Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
