// Package delivery reglas de transporte, entregas, notas de entrega y comprobantes
// de recepción (GRV).
package delivery

import (
	"time"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

var transportTransitions = map[string][]string{
	entity.TransportStatusPending:  {entity.TransportStatusApproved, entity.TransportStatusRejected, entity.TransportStatusCancelled},
	entity.TransportStatusApproved: {entity.TransportStatusAssigned, entity.TransportStatusCancelled},
	entity.TransportStatusAssigned: {entity.TransportStatusCompleted, entity.TransportStatusCancelled},
}

var deliveryTransitions = map[string][]string{
	entity.DeliveryStatusScheduled: {entity.DeliveryStatusInTransit, entity.DeliveryStatusCancelled},
	entity.DeliveryStatusInTransit: {entity.DeliveryStatusDelivered, entity.DeliveryStatusReturned, entity.DeliveryStatusCancelled},
}

func allowed(graph map[string][]string, from, to string) bool {
	for _, s := range graph[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionTransport aplica un cambio de estado a la solicitud de transporte.
func TransitionTransport(tr *entity.TransportRequest, to string) error {
	if !allowed(transportTransitions, tr.Status, to) {
		return &domain.TransitionError{Entity: "transport_request", From: tr.Status, To: to}
	}
	tr.Status = to
	return nil
}

// ValidTruckType indica si t es un tipo de camión conocido.
func ValidTruckType(t string) bool {
	switch t {
	case entity.TruckSmall, entity.TruckMedium, entity.TruckLarge, entity.TruckFlatbed, entity.TruckCrane:
		return true
	}
	return false
}

// TransitionDelivery aplica el cambio de estado y sella horas de salida y llegada.
func TransitionDelivery(d *entity.Delivery, to string, at time.Time) error {
	if !allowed(deliveryTransitions, d.Status, to) {
		return &domain.TransitionError{Entity: "delivery", From: d.Status, To: to}
	}
	switch to {
	case entity.DeliveryStatusInTransit:
		d.DepartureTime = &at
	case entity.DeliveryStatusDelivered, entity.DeliveryStatusReturned:
		d.ArrivalTime = &at
	}
	d.Status = to
	return nil
}

// SignNote registra la firma de una de las partes.
func SignNote(n *entity.DeliveryNote, signer string, at time.Time) error {
	switch signer {
	case entity.SignerDriver:
		n.SignedByDriver, n.DriverSignatureDate = true, &at
	case entity.SignerScaffolder:
		n.SignedByScaffolder, n.ScaffolderSignatureDate = true, &at
	case entity.SignerSecurity:
		n.SignedBySecurity, n.SecuritySignatureDate = true, &at
	case entity.SignerClient:
		n.SignedByClient, n.ClientSignatureDate = true, &at
	default:
		return domain.Invalid("signer", "debe ser DRIVER, SCAFFOLDER, SECURITY o CLIENT")
	}
	return nil
}

// IsNoteFullySigned conductor, andamiero y seguridad; la firma del cliente no es requisito.
func IsNoteFullySigned(n *entity.DeliveryNote) bool {
	return n.SignedByDriver && n.SignedByScaffolder && n.SignedBySecurity
}

// NoteItemsFromOrder una línea por ítem de la orden con la cantidad ordenada.
func NoteItemsFromOrder(o *entity.HireOrder) []entity.DeliveryNoteItem {
	items := make([]entity.DeliveryNoteItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, entity.DeliveryNoteItem{
			MaterialID: it.MaterialID,
			Quantity:   it.QuantityOrdered,
			Condition:  entity.NoteConditionGood,
		})
	}
	return items
}

// Discrepancy esperado - recibido.
func Discrepancy(it entity.GRVItem) int {
	return it.QuantityExpected - it.QuantityReceived
}

// HasDiscrepancy cualquier diferencia cuenta, sin tolerancia.
func HasDiscrepancy(it entity.GRVItem) bool {
	return Discrepancy(it) != 0
}

// ValidateGRV verifica los ítems y deriva AllItemsReceived.
func ValidateGRV(g *entity.GoodsReceivedVoucher) error {
	if len(g.Items) == 0 {
		return domain.Invalid("items", "el comprobante necesita al menos un ítem")
	}
	all := true
	for _, it := range g.Items {
		if it.QuantityExpected < 1 {
			return domain.Invalid("quantity_expected", "debe ser al menos 1")
		}
		if it.QuantityReceived < 0 {
			return domain.Invalid("quantity_received", "no puede ser negativa")
		}
		if HasDiscrepancy(it) {
			all = false
		}
	}
	g.AllItemsReceived = all
	return nil
}
