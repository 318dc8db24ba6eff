package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/Chrisx-39/FormMaster/internal/application/analytics"
	"github.com/Chrisx-39/FormMaster/internal/application/auth"
	"github.com/Chrisx-39/FormMaster/internal/application/billing"
	"github.com/Chrisx-39/FormMaster/internal/application/clients"
	"github.com/Chrisx-39/FormMaster/internal/application/delivery"
	"github.com/Chrisx-39/FormMaster/internal/application/documents"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/application/hiring"
	appinventory "github.com/Chrisx-39/FormMaster/internal/application/inventory"
	"github.com/Chrisx-39/FormMaster/internal/application/lookup"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/notify"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/pdf"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/storage"
	apphttp "github.com/Chrisx-39/FormMaster/internal/interfaces/http"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
	pkgjwt "github.com/Chrisx-39/FormMaster/pkg/jwt"
)

// newAPI arma la API completa sobre el almacén en memoria.
func newAPI(t *testing.T) (*fiber.App, *memstore.Store, *auth.AuthUseCase) {
	t.Helper()
	log := zerolog.Nop()
	store := memstore.New()
	hiringSettings := hiring.Settings{
		TaxRate:            decimal.RequireFromString("0.15"),
		LatePenaltyRate:    decimal.NewFromInt(50),
		QuotationValidDays: 30,
	}
	billingSettings := billing.Settings{TaxRate: hiringSettings.TaxRate, LatePenaltyRate: hiringSettings.LatePenaltyRate}

	ledger := appinventory.NewLedgerService(log)
	clientUC := clients.NewClientUseCase(store, store, log)
	documentUC := documents.NewUseCase(store, pdf.NewMarotoPDFGenerator("FormMaster"), storage.NewMemoryStore(), "USD", log)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		MaterialUC:   appinventory.NewMaterialUseCase(store, store, log),
		ClientUC:     clientUC,
		RFQUC:        hiring.NewRFQUseCase(store, store),
		QuotationUC:  hiring.NewQuotationUseCase(store, store, documentUC, notify.NewLogNotifier(log), hiringSettings, log),
		OrderUC:      hiring.NewOrderUseCase(store, store, ledger, hiringSettings, log),
		LeaseUC:      hiring.NewLeaseUseCase(store, store, hiringSettings),
		TransportUC:  delivery.NewTransportUseCase(store, store),
		DeliveryUC:   delivery.NewDeliveryUseCase(store, store, log),
		InvoiceUC:    billing.NewInvoiceUseCase(store, store, clientUC, billingSettings, log),
		PaymentUC:    billing.NewPaymentUseCase(store, store, clientUC, log),
		CreditNoteUC: billing.NewCreditNoteUseCase(store, store, clientUC, log),
		ExpenseUC:    billing.NewExpenseUseCase(store, store, log),
		DocumentUC:   documentUC,
		DashboardUC:  appanalytics.NewDashboardUseCase(store),
		LookupUC:     lookup.NewUseCase(store),
		JWTSecret:    testJWTSecret,
	})
	return app, store, authUC
}

func bearer(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Email, u.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	app, _, _ := newAPI(t)
	resp, body := call(t, app, http.MethodGet, "/api/materials", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestRouter_CuentaInactivaRetorna403(t *testing.T) {
	app, store, _ := newAPI(t)
	inactive := &entity.User{
		ID:     uuid.New().String(),
		Email:  "baja@formmaster.test",
		Role:   entity.RoleFSM,
		Status: entity.UserStatusInactive,
	}
	require.NoError(t, store.Users().Create(context.Background(), inactive))

	resp, body := call(t, app, http.MethodGet, "/api/materials", bearer(t, inactive), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_INACTIVE", errorCode(t, body))
}

func TestRouter_LoginYMe(t *testing.T) {
	app, _, authUC := newAPI(t)
	_, err := authUC.Bootstrap(context.Background(), dto.CreateUserRequest{Email: "admin@formmaster.test", Password: "cambiar-123"})
	require.NoError(t, err)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@formmaster.test", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	resp, body = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ADMIN@formmaster.test", Password: "cambiar-123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, entity.RoleAdmin, login.User.Role)

	resp, body = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "admin@formmaster.test", me.Email)
}

func TestRouter_AltaDeUsuarioSoloAdmin(t *testing.T) {
	app, store, _ := newAPI(t)
	fsm := store.SeedUser(t, entity.RoleFSM)
	admin := store.SeedUser(t, entity.RoleAdmin)
	in := dto.CreateUserRequest{Email: "chofer@formmaster.test", Password: "camion-2026", Role: entity.RoleDriver}

	resp, body := call(t, app, http.MethodPost, "/api/users", bearer(t, fsm), in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	resp, _ = call(t, app, http.MethodPost, "/api/users", bearer(t, admin), in)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = call(t, app, http.MethodPost, "/api/users", bearer(t, admin), in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, body))
}

func TestRouter_Disponibilidad(t *testing.T) {
	app, store, _ := newAPI(t)
	hce := store.SeedUser(t, entity.RoleHCE)
	m := store.SeedMaterial(t, "TUB-6M", 40, "5")

	resp, body := call(t, app, http.MethodGet, "/api/materials/"+m.ID+"/availability?quantity=40", bearer(t, hce), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var avail dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(body, &avail))
	assert.True(t, avail.Available)

	resp, body = call(t, app, http.MethodGet, "/api/materials/"+m.ID+"/availability?quantity=41", bearer(t, hce), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &avail))
	assert.False(t, avail.Available)
	assert.Equal(t, 40, avail.AvailableQuantity)

	resp, body = call(t, app, http.MethodGet, "/api/materials/"+m.ID+"/availability", bearer(t, hce), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	resp, body = call(t, app, http.MethodGet, "/api/materials/no-existe/availability?quantity=1", bearer(t, hce), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestRouter_PoliticaDeRolesEnCasosDeUso(t *testing.T) {
	app, store, _ := newAPI(t)
	hce := store.SeedUser(t, entity.RoleHCE)

	resp, body := call(t, app, http.MethodPost, "/api/materials", bearer(t, hce), dto.CreateMaterialRequest{Code: "PAN-120", Name: "Panel"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestRouter_CuerpoInvalido(t *testing.T) {
	app, store, _ := newAPI(t)
	fsm := store.SeedUser(t, entity.RoleFSM)

	req := httptest.NewRequest(http.MethodPost, "/api/materials", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, fsm))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, body))
}

func TestRouter_ConversionDeCotizacion(t *testing.T) {
	app, store, _ := newAPI(t)
	fsm := store.SeedUser(t, entity.RoleFSM)
	client := store.SeedClient(t, "0")
	tubes := store.SeedMaterial(t, "TUB-6M", 100, "5")
	q := store.SeedAcceptedQuotation(t, client.ID, 30, memstore.QuotationLine{Material: tubes, Quantity: 60})

	resp, body := call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/order", bearer(t, fsm), dto.CreateOrderRequest{DeliveryAddress: "Obra Borrowdale"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, entity.OrderStatusOrdered, order.Status)

	resp, body = call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/order", bearer(t, fsm), dto.CreateOrderRequest{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_CONVERTED", errorCode(t, body))

	m, err := store.Materials().GetByID(context.Background(), tubes.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, m.AvailableQuantity)
	assert.Equal(t, 60, m.HiredQuantity)
}

func TestRouter_StockInsuficiente(t *testing.T) {
	app, store, _ := newAPI(t)
	fsm := store.SeedUser(t, entity.RoleFSM)
	client := store.SeedClient(t, "0")
	clamps := store.SeedMaterial(t, "CLA-01", 5, "1")
	q := store.SeedAcceptedQuotation(t, client.ID, 10, memstore.QuotationLine{Material: clamps, Quantity: 6})

	resp, body := call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/order", bearer(t, fsm), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))
}

func TestRouter_PDFDeCotizacion(t *testing.T) {
	app, store, _ := newAPI(t)
	fsm := store.SeedUser(t, entity.RoleFSM)
	client := store.SeedClient(t, "0")
	tubes := store.SeedMaterial(t, "TUB-6M", 100, "5")
	q := store.SeedAcceptedQuotation(t, client.ID, 30, memstore.QuotationLine{Material: tubes, Quantity: 100})

	resp, _ := call(t, app, http.MethodGet, "/api/documents/quotation/"+q.ID, bearer(t, fsm), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/pdf", bearer(t, fsm), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodGet, "/api/documents/quotation/"+q.ID, bearer(t, fsm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), q.QuotationNumber+".pdf")
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))

	resp, body = call(t, app, http.MethodGet, "/api/documents/contrato/"+q.ID, bearer(t, fsm), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestRouter_DashboardYBuscador(t *testing.T) {
	app, store, _ := newAPI(t)
	hce := store.SeedUser(t, entity.RoleHCE)
	client := store.SeedClient(t, "0")

	resp, _ := call(t, app, http.MethodGet, "/api/dashboard", bearer(t, hce), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/lookup/clients?q=constru", bearer(t, hce), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []dto.LookupItem
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, client.ID, items[0].ID)
}

func TestRouter_GastosRegistroYAprobacion(t *testing.T) {
	app, store, _ := newAPI(t)
	hce := store.SeedUser(t, entity.RoleHCE)
	fsm := store.SeedUser(t, entity.RoleFSM)

	resp, body := call(t, app, http.MethodPost, "/api/expenses", bearer(t, hce), dto.CreateExpenseRequest{
		Category: entity.ExpenseRepairs, Description: "Soldadura de marcos", Amount: decimal.RequireFromString("75.50"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var e dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Regexp(t, `^EXP-\d{4}-0001$`, e.ExpenseNumber)

	resp, body = call(t, app, http.MethodPost, "/api/expenses/"+e.ID+"/approve", bearer(t, hce), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	resp, _ = call(t, app, http.MethodPost, "/api/expenses/"+e.ID+"/approve", bearer(t, fsm), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/expenses?approved=true&category=REPAIRS", bearer(t, hce), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Approved)

	resp, body = call(t, app, http.MethodGet, "/api/expenses?from=02-03-2026", bearer(t, hce), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestRouter_SedesYNotasDeCliente(t *testing.T) {
	app, store, _ := newAPI(t)
	hce := store.SeedUser(t, entity.RoleHCE)
	client := store.SeedClient(t, "0")

	resp, body := call(t, app, http.MethodPost, "/api/clients/"+client.ID+"/sites", bearer(t, hce), dto.CreateSiteRequest{SiteName: "Torre Norte", Address: "Cra 7 # 100-20"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var site dto.SiteResponse
	require.NoError(t, json.Unmarshal(body, &site))
	assert.True(t, site.IsMainSite)

	resp, body = call(t, app, http.MethodPost, "/api/clients/"+client.ID+"/sites", bearer(t, hce), dto.CreateSiteRequest{SiteName: "Torre Norte", Address: "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodPost, "/api/clients/"+client.ID+"/notes", bearer(t, hce), dto.CreateNoteRequest{Subject: "Visita", Content: "Revisión de andamios"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var note dto.NoteResponse
	require.NoError(t, json.Unmarshal(body, &note))

	resp, _ = call(t, app, http.MethodPost, "/api/client-notes/"+note.ID+"/resolve", bearer(t, hce), dto.ResolveNoteRequest{ResolutionNotes: "ok"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/clients/"+client.ID+"/notes?open=true", bearer(t, hce), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var open []dto.NoteResponse
	require.NoError(t, json.Unmarshal(body, &open))
	assert.Empty(t, open)
}

func TestRouter_ActividadDeDocumento(t *testing.T) {
	app, store, _ := newAPI(t)
	fsm := store.SeedUser(t, entity.RoleFSM)
	client := store.SeedClient(t, "0")
	tubes := store.SeedMaterial(t, "TUB-3M", 50, "3")
	q := store.SeedAcceptedQuotation(t, client.ID, 30, memstore.QuotationLine{Material: tubes, Quantity: 20})

	resp, body := call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/pdf", bearer(t, fsm), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	resp, _ = call(t, app, http.MethodGet, "/api/documents/quotation/"+q.ID, bearer(t, fsm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/documents/quotation/"+q.ID+"/logs", bearer(t, fsm), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logs []dto.DocumentLogResponse
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, entity.DocumentActionDownloaded, logs[0].Action)
	assert.Equal(t, fsm.ID, logs[0].PerformedBy)
	assert.Equal(t, entity.DocumentActionGenerated, logs[1].Action)
}
