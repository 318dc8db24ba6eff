package ports

import "context"

// Tipos de notificación.
const (
	NotifyQuotationSent  = "QUOTATION_SENT"
	NotifyFirstReminder  = "FIRST_REMINDER"
	NotifySecondReminder = "SECOND_REMINDER"
	NotifyFinalWarning   = "FINAL_WARNING"
	NotifyLowStock       = "LOW_STOCK"
	NotifyInvoiceIssued  = "INVOICE_ISSUED"
)

// Notification mensaje para un destinatario (cliente o empleado).
type Notification struct {
	Kind        string
	Recipient   string // email
	Subject     string
	Body        string
	Reference   string // número del documento relacionado
	Attachments []string
}

// Notifier envío fire-and-forget: un fallo se registra y no revierte la operación.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
