package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/Chrisx-39/FormMaster/internal/application/analytics"
	"github.com/Chrisx-39/FormMaster/internal/application/auth"
	"github.com/Chrisx-39/FormMaster/internal/application/billing"
	"github.com/Chrisx-39/FormMaster/internal/application/clients"
	"github.com/Chrisx-39/FormMaster/internal/application/delivery"
	"github.com/Chrisx-39/FormMaster/internal/application/documents"
	"github.com/Chrisx-39/FormMaster/internal/application/hiring"
	"github.com/Chrisx-39/FormMaster/internal/application/inventory"
	"github.com/Chrisx-39/FormMaster/internal/application/lookup"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	MaterialUC   *inventory.MaterialUseCase
	ClientUC     *clients.ClientUseCase
	RFQUC        *hiring.RFQUseCase
	QuotationUC  *hiring.QuotationUseCase
	OrderUC      *hiring.OrderUseCase
	LeaseUC      *hiring.LeaseUseCase
	TransportUC  *delivery.TransportUseCase
	DeliveryUC   *delivery.DeliveryUseCase
	InvoiceUC    *billing.InvoiceUseCase
	PaymentUC    *billing.PaymentUseCase
	CreditNoteUC *billing.CreditNoteUseCase
	ExpenseUC    *billing.ExpenseUseCase
	DocumentUC   *documents.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	LookupUC     *lookup.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de un usuario activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveAccount(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/users", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Materiales y categorías
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := protected.Group("/materials")
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/low-stock", materialHandler.LowStock)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Get("/:id/availability", materialHandler.Availability)
	materials.Post("/:id/adjustments", materialHandler.AdjustStock)
	materials.Get("/:id/adjustments", materialHandler.ListAdjustments)
	materials.Post("/:id/inspections", materialHandler.RecordInspection)
	protected.Post("/categories", materialHandler.CreateCategory)
	protected.Get("/categories", materialHandler.ListCategories)

	// Clientes
	billingHandler := NewBillingHandler(deps.InvoiceUC, deps.PaymentUC, deps.CreditNoteUC)
	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup := protected.Group("/clients")
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Post("/:id/status", clientHandler.ChangeStatus)
	clientsGroup.Post("/:id/credit-limit", clientHandler.UpdateCreditLimit)
	clientsGroup.Post("/:id/blacklist", clientHandler.Blacklist)
	clientsGroup.Post("/:id/reinstate", clientHandler.Reinstate)
	clientsGroup.Get("/:id/credit", clientHandler.CreditSummary)
	clientsGroup.Get("/:id/history", clientHandler.History)
	clientsGroup.Get("/:id/credit-notes", billingHandler.ListClientCreditNotes)
	clientsGroup.Post("/:id/contacts", clientHandler.AddContact)
	clientsGroup.Get("/:id/contacts", clientHandler.ListContacts)
	clientsGroup.Post("/:id/sites", clientHandler.AddSite)
	clientsGroup.Get("/:id/sites", clientHandler.ListSites)
	clientsGroup.Post("/:id/notes", clientHandler.AddNote)
	clientsGroup.Get("/:id/notes", clientHandler.ListNotes)
	clientsGroup.Post("/:id/ratings", clientHandler.Rate)
	clientsGroup.Get("/:id/ratings", clientHandler.Ratings)
	protected.Post("/client-contacts/:id/deactivate", clientHandler.DeactivateContact)
	protected.Post("/client-sites/:id/main", clientHandler.SetMainSite)
	protected.Post("/client-notes/:id/resolve", clientHandler.ResolveNote)

	// RFQ, cotizaciones, órdenes y contratos
	hiringHandler := NewHiringHandler(deps.RFQUC, deps.QuotationUC, deps.OrderUC, deps.LeaseUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	deliveryHandler := NewDeliveryHandler(deps.TransportUC, deps.DeliveryUC)

	rfqs := protected.Group("/rfqs")
	rfqs.Post("/", hiringHandler.CreateRFQ)
	rfqs.Get("/", hiringHandler.ListRFQs)
	rfqs.Get("/:id", hiringHandler.GetRFQ)
	rfqs.Put("/:id", hiringHandler.UpdateRFQ)
	rfqs.Post("/:id/quotation", hiringHandler.QuoteRFQ)

	quotations := protected.Group("/quotations")
	quotations.Post("/", hiringHandler.CreateQuotation)
	quotations.Get("/", hiringHandler.ListQuotations)
	quotations.Get("/:id", hiringHandler.GetQuotation)
	quotations.Put("/:id", hiringHandler.UpdateQuotation)
	quotations.Post("/:id/approve", hiringHandler.ApproveQuotation)
	quotations.Post("/:id/accept", hiringHandler.AcceptQuotation)
	quotations.Post("/:id/reject", hiringHandler.RejectQuotation)
	quotations.Post("/:id/order", hiringHandler.CreateOrder)
	quotations.Post("/:id/pdf", documentHandler.QuotationPDF)

	orders := protected.Group("/orders")
	orders.Get("/", hiringHandler.ListOrders)
	orders.Get("/:id", hiringHandler.GetOrder)
	orders.Post("/:id/approve", hiringHandler.ApproveOrder)
	orders.Post("/:id/dispatch", hiringHandler.DispatchOrder)
	orders.Post("/:id/activate", hiringHandler.ActivateOrder)
	orders.Post("/:id/return", hiringHandler.ReturnOrder)
	orders.Post("/:id/complete", hiringHandler.CompleteOrder)
	orders.Post("/:id/cancel", hiringHandler.CancelOrder)
	orders.Post("/:id/lease", hiringHandler.CreateLease)
	orders.Get("/:id/lease", hiringHandler.GetLease)
	orders.Post("/:id/lease/sign", hiringHandler.SignLease)
	orders.Get("/:id/deliveries", deliveryHandler.ListByOrder)
	orders.Get("/:id/grvs", deliveryHandler.ListGRVByOrder)
	orders.Post("/:id/invoices", billingHandler.CreateInvoice)
	orders.Get("/:id/invoices", billingHandler.ListOrderInvoices)

	// Transporte y entregas
	transport := protected.Group("/transport-requests")
	transport.Post("/", deliveryHandler.CreateTransport)
	transport.Get("/", deliveryHandler.ListTransport)
	transport.Get("/:id", deliveryHandler.GetTransport)
	transport.Post("/:id/assign", deliveryHandler.AssignDriver)
	transport.Post("/:id/:action", deliveryHandler.TransportAction)

	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", deliveryHandler.CreateDelivery)
	deliveries.Get("/:id", deliveryHandler.GetDelivery)
	deliveries.Post("/:id/status", deliveryHandler.ChangeStatus)
	deliveries.Post("/:id/note/sign", deliveryHandler.SignNote)
	deliveries.Post("/:id/note/pdf", documentHandler.DeliveryNotePDF)
	deliveries.Post("/:id/grv", deliveryHandler.CreateGRV)
	protected.Get("/grvs/:id", deliveryHandler.GetGRV)

	// Facturación
	invoices := protected.Group("/invoices")
	invoices.Get("/", billingHandler.ListInvoices)
	invoices.Get("/:id", billingHandler.GetInvoice)
	invoices.Post("/:id/payments", billingHandler.RecordPayment)
	invoices.Get("/:id/payments", billingHandler.ListPayments)
	invoices.Post("/:id/pdf", documentHandler.InvoicePDF)
	invoices.Post("/:id/:action", billingHandler.InvoiceAction)
	protected.Post("/payments/:id/confirm", billingHandler.ConfirmPayment)

	creditNotes := protected.Group("/credit-notes")
	creditNotes.Post("/", billingHandler.CreateCreditNote)
	creditNotes.Get("/:id", billingHandler.GetCreditNote)
	creditNotes.Post("/:id/issue", billingHandler.IssueCreditNote)
	creditNotes.Post("/:id/apply", billingHandler.ApplyCreditNote)
	creditNotes.Post("/:id/cancel", billingHandler.CancelCreditNote)

	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses := protected.Group("/expenses")
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Post("/:id/approve", expenseHandler.Approve)

	// Documentos, tablero y buscadores
	protected.Get("/documents/:type/:id", documentHandler.Download)
	protected.Get("/documents/:type/:id/logs", documentHandler.Logs)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.LookupUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
	protected.Get("/lookup/clients", dashboardHandler.LookupClients)
	protected.Get("/lookup/orders", dashboardHandler.LookupOrders)
}
