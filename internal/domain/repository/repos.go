package repository

import "context"

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos interface {
	Materials() MaterialRepository
	Categories() CategoryRepository
	Clients() ClientRepository
	ClientProfiles() ClientProfileRepository
	RFQs() RFQRepository
	Quotations() QuotationRepository
	Orders() HireOrderRepository
	Transports() TransportRepository
	Deliveries() DeliveryRepository
	Invoices() InvoiceRepository
	Payments() PaymentRepository
	CreditNotes() CreditNoteRepository
	Revenue() RevenueRepository
	Expenses() ExpenseRepository
	Users() UserRepository
	Sequences() SequenceRepository
	Documents() DocumentRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repos) error) error
}
