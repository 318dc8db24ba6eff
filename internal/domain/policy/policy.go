// Package policy concentra qué rol puede ejecutar cada acción de negocio.
// Los casos de uso llaman a Authorize antes de mutar estado.
package policy

import (
	"fmt"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// Action nombre de una capacidad de negocio.
type Action string

// Acciones protegidas.
const (
	ManageUsers        Action = "users.manage"
	ManageMaterials    Action = "materials.manage"
	AdjustStock        Action = "materials.adjust_stock"
	RecordInspection   Action = "materials.inspect"
	CreateClient       Action = "clients.create"
	UpdateClient       Action = "clients.update"
	ManageClientCredit Action = "clients.credit"
	BlacklistClient    Action = "clients.blacklist"
	EditClientProfile  Action = "clients.profile"
	RateClient         Action = "clients.rate"
	CreateRFQ          Action = "rfq.create"
	OverrideRFQ        Action = "rfq.override"
	CreateQuotation    Action = "quotations.create"
	ApproveQuotation   Action = "quotations.approve"
	ManageOrders       Action = "orders.manage"
	ApproveOrder       Action = "orders.approve"
	SignLease          Action = "leases.sign"
	RequestTransport   Action = "transport.request"
	ApproveTransport   Action = "transport.approve"
	ManageDeliveries   Action = "deliveries.manage"
	SignDeliveryNote   Action = "deliveries.sign_note"
	ReceiveGoods       Action = "deliveries.receive"
	CreateInvoice      Action = "invoices.create"
	RecordPayment      Action = "payments.record"
	ConfirmPayment     Action = "payments.confirm"
	IssueCreditNote    Action = "credit_notes.issue"
	ApplyCreditNote    Action = "credit_notes.apply"
	RecordExpense      Action = "expenses.record"
	ApproveExpense     Action = "expenses.approve"
)

var (
	managers = roles(entity.RoleAdmin, entity.RoleFSM)
	office   = roles(entity.RoleAdmin, entity.RoleFSM, entity.RoleHCE)
)

// rules roles permitidos por acción. Lo que no aparece aquí se niega.
var rules = map[Action]map[string]bool{
	ManageUsers:        roles(entity.RoleAdmin),
	ManageMaterials:    managers,
	AdjustStock:        managers,
	RecordInspection:   roles(entity.RoleAdmin, entity.RoleFSM, entity.RoleEngineer, entity.RoleScaffolder),
	CreateClient:       office,
	UpdateClient:       managers,
	ManageClientCredit: managers,
	BlacklistClient:    managers,
	EditClientProfile:  office,
	RateClient:         managers,
	CreateRFQ:          office,
	OverrideRFQ:        roles(entity.RoleAdmin),
	CreateQuotation:    office,
	ApproveQuotation:   managers,
	ManageOrders:       office,
	ApproveOrder:       managers,
	SignLease:          managers,
	RequestTransport:   office,
	ApproveTransport:   managers,
	ManageDeliveries:   roles(entity.RoleAdmin, entity.RoleFSM, entity.RoleHCE, entity.RoleDriver),
	SignDeliveryNote:   roles(entity.RoleAdmin),
	ReceiveGoods:       roles(entity.RoleAdmin, entity.RoleFSM, entity.RoleHCE, entity.RoleScaffolder, entity.RoleSecurity),
	CreateInvoice:      office,
	RecordPayment:      office,
	ConfirmPayment:     office,
	IssueCreditNote:    managers,
	ApplyCreditNote:    managers,
	RecordExpense:      office,
	ApproveExpense:     managers,
}

// Actor usuario autenticado que ejecuta la acción.
type Actor struct {
	ID   string
	Role string
}

// System actor de los procesos batch.
var System = Actor{ID: "system", Role: entity.RoleAdmin}

// Managed recurso con un responsable de cuenta (clientes).
type Managed interface {
	AccountManager() string
}

// Signer parte que firma una nota de entrega; es el recurso de SignDeliveryNote.
type Signer string

// Authorize devuelve nil si actor puede ejecutar action sobre resource (puede ser nil).
// El error envuelve domain.ErrForbidden.
func Authorize(actor Actor, action Action, resource any) error {
	if actor.ID == "" || actor.Role == "" {
		return domain.ErrUnauthorized
	}
	if rules[action][actor.Role] {
		return nil
	}
	switch r := resource.(type) {
	case Managed:
		if action == UpdateClient && r.AccountManager() != "" && r.AccountManager() == actor.ID {
			return nil
		}
	case Signer:
		if action == SignDeliveryNote && signerRole(r, actor.Role) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s no puede ejecutar %s", domain.ErrForbidden, actor.Role, action)
}

// Can variante booleana de Authorize.
func Can(actor Actor, action Action, resource any) bool {
	return Authorize(actor, action, resource) == nil
}

// signerRole cada parte firma con su propio rol; la firma del cliente la registra la oficina.
func signerRole(s Signer, role string) bool {
	switch string(s) {
	case entity.SignerDriver:
		return role == entity.RoleDriver
	case entity.SignerScaffolder:
		return role == entity.RoleScaffolder
	case entity.SignerSecurity:
		return role == entity.RoleSecurity
	case entity.SignerClient:
		return office[role]
	}
	return false
}

func roles(rs ...string) map[string]bool {
	m := make(map[string]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}
