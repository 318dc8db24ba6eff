// Package memstore implementación en memoria de los repositorios para tests de casos de uso.
// Run copia el estado antes de ejecutar fn y lo restaura si fn falla, igual que un Rollback.
package memstore

import (
	"context"
	"sync"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var (
	_ repository.Repos               = (*Store)(nil)
	_ repository.TxRunner            = (*Store)(nil)
	_ repository.AnalyticsRepository = (*Store)(nil)
)

type data struct {
	materials   map[string]entity.Material
	adjustments []entity.StockAdjustment
	inspections []entity.MaterialInspection
	categories  map[string]entity.Category
	clients     map[string]entity.Client
	history     []entity.ClientHistory
	blacklist   []entity.ClientBlacklist
	contacts    map[string]entity.ClientContact
	sites       map[string]entity.ClientSite
	clientNotes map[string]entity.ClientNote
	ratings     []entity.ClientRating
	rfqs        map[string]entity.RequestForQuotation
	quotations  map[string]entity.Quotation
	orders      map[string]entity.HireOrder
	leases      map[string]entity.LeaseAgreement
	transports  map[string]entity.TransportRequest
	deliveries  map[string]entity.Delivery
	notes       map[string]entity.DeliveryNote
	grvs        map[string]entity.GoodsReceivedVoucher
	invoices    map[string]entity.Invoice
	payments    map[string]entity.Payment
	creditNotes map[string]entity.CreditNote
	revenue     []entity.RevenueRecord
	expenses    map[string]entity.Expense
	users       map[string]entity.User
	sequences   map[string]int64
	documents   []entity.GeneratedDocument
	docLogs     []entity.DocumentLog
}

func newData() *data {
	return &data{
		materials:   map[string]entity.Material{},
		categories:  map[string]entity.Category{},
		clients:     map[string]entity.Client{},
		contacts:    map[string]entity.ClientContact{},
		sites:       map[string]entity.ClientSite{},
		clientNotes: map[string]entity.ClientNote{},
		rfqs:        map[string]entity.RequestForQuotation{},
		quotations:  map[string]entity.Quotation{},
		orders:      map[string]entity.HireOrder{},
		leases:      map[string]entity.LeaseAgreement{},
		transports:  map[string]entity.TransportRequest{},
		deliveries:  map[string]entity.Delivery{},
		notes:       map[string]entity.DeliveryNote{},
		grvs:        map[string]entity.GoodsReceivedVoucher{},
		invoices:    map[string]entity.Invoice{},
		payments:    map[string]entity.Payment{},
		creditNotes: map[string]entity.CreditNote{},
		expenses:    map[string]entity.Expense{},
		users:       map[string]entity.User{},
		sequences:   map[string]int64{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.materials {
		c.materials[k] = v
	}
	c.adjustments = append(c.adjustments, d.adjustments...)
	c.inspections = append(c.inspections, d.inspections...)
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.clients {
		c.clients[k] = v
	}
	c.history = append(c.history, d.history...)
	c.blacklist = append(c.blacklist, d.blacklist...)
	for k, v := range d.contacts {
		c.contacts[k] = v
	}
	for k, v := range d.sites {
		c.sites[k] = v
	}
	for k, v := range d.clientNotes {
		c.clientNotes[k] = v
	}
	c.ratings = append(c.ratings, d.ratings...)
	for k, v := range d.rfqs {
		v.Items = append([]entity.RFQItem(nil), v.Items...)
		c.rfqs[k] = v
	}
	for k, v := range d.quotations {
		v.Items = append([]entity.QuotationItem(nil), v.Items...)
		c.quotations[k] = v
	}
	for k, v := range d.orders {
		v.Items = append([]entity.HireOrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range d.leases {
		c.leases[k] = v
	}
	for k, v := range d.transports {
		c.transports[k] = v
	}
	for k, v := range d.deliveries {
		c.deliveries[k] = v
	}
	for k, v := range d.notes {
		v.Items = append([]entity.DeliveryNoteItem(nil), v.Items...)
		c.notes[k] = v
	}
	for k, v := range d.grvs {
		v.Items = append([]entity.GRVItem(nil), v.Items...)
		c.grvs[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.payments {
		c.payments[k] = v
	}
	for k, v := range d.creditNotes {
		c.creditNotes[k] = v
	}
	c.revenue = append(c.revenue, d.revenue...)
	for k, v := range d.expenses {
		c.expenses[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.sequences {
		c.sequences[k] = v
	}
	c.documents = append(c.documents, d.documents...)
	c.docLogs = append(c.docLogs, d.docLogs...)
	return c
}

// Store repositorios en memoria. Seguro para uso concurrente.
type Store struct {
	tx sync.Mutex   // serializa transacciones
	mu sync.RWMutex // protege d
	d  *data
}

// New construye un store vacío.
func New() *Store {
	return &Store{d: newData()}
}

// Run ejecuta fn; si devuelve error restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Repos) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Materials() repository.MaterialRepository           { return materialRepo{s} }
func (s *Store) Categories() repository.CategoryRepository          { return categoryRepo{s} }
func (s *Store) Clients() repository.ClientRepository               { return clientRepo{s} }
func (s *Store) ClientProfiles() repository.ClientProfileRepository { return profileRepo{s} }
func (s *Store) RFQs() repository.RFQRepository                     { return rfqRepo{s} }
func (s *Store) Quotations() repository.QuotationRepository         { return quotationRepo{s} }
func (s *Store) Orders() repository.HireOrderRepository             { return orderRepo{s} }
func (s *Store) Transports() repository.TransportRepository         { return transportRepo{s} }
func (s *Store) Deliveries() repository.DeliveryRepository          { return deliveryRepo{s} }
func (s *Store) Invoices() repository.InvoiceRepository             { return invoiceRepo{s} }
func (s *Store) Payments() repository.PaymentRepository             { return paymentRepo{s} }
func (s *Store) CreditNotes() repository.CreditNoteRepository       { return creditNoteRepo{s} }
func (s *Store) Revenue() repository.RevenueRepository              { return revenueRepo{s} }
func (s *Store) Expenses() repository.ExpenseRepository             { return expenseRepo{s} }
func (s *Store) Users() repository.UserRepository                   { return userRepo{s} }
func (s *Store) Sequences() repository.SequenceRepository           { return sequenceRepo{s} }
func (s *Store) Documents() repository.DocumentRepository           { return documentRepo{s} }

// Adjustments devuelve los ajustes de stock registrados (para aserciones).
func (s *Store) Adjustments() []entity.StockAdjustment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.StockAdjustment(nil), s.d.adjustments...)
}

// History devuelve la auditoría de clientes registrada.
func (s *Store) History() []entity.ClientHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.ClientHistory(nil), s.d.history...)
}

// RevenueRecords devuelve los ingresos registrados.
func (s *Store) RevenueRecords() []entity.RevenueRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.RevenueRecord(nil), s.d.revenue...)
}

func (s *Store) read(fn func(d *data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.d)
}

func (s *Store) write(fn func(d *data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.d)
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
