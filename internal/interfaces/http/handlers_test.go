package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	appinventory "github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/listing"
	"github.com/jhoicas/tienda-api/internal/domain"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servicios falsos
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockOutService struct {
	got     *dto.CreateStockOutRequest
	err     error
	listErr error
	rows    []dto.StockOutRecordResponse
}

func (f *fakeStockOutService) CreateStockOutFromRequest(_ context.Context, req dto.CreateStockOutRequest) (*dto.StockOutCreatedResponse, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.StockOutCreatedResponse{
		Message:         "Stock Out recorded successfully",
		StockOutID:      42,
		ReferenceNumber: "ADJ-20240305-7",
		StockOutDate:    time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeStockOutService) ListStockOuts(context.Context) ([]dto.StockOutMovementResponse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []dto.StockOutMovementResponse{{StockOutID: 42, ReferenceNumber: "ADJ-20240305-7", Quantity: 2}}, nil
}

func (f *fakeStockOutService) GetStockOut(_ context.Context, id int64) ([]dto.StockOutRecordResponse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.rows == nil {
		return []dto.StockOutRecordResponse{}, nil
	}
	return f.rows, nil
}

type fakePDFService struct{}

func (fakePDFService) DownloadStockOutPDF(_ context.Context, id int64) ([]byte, string, error) {
	if id == 404 {
		return nil, "", fmt.Errorf("salida %d: %w", id, domain.ErrNotFound)
	}
	return []byte("%PDF-1.4"), "salida_ADJ-20240305-7.pdf", nil
}

type fakeStockInService struct {
	got *dto.CreateStockInRequest
}

func (f *fakeStockInService) CreateStockInFromRequest(_ context.Context, req dto.CreateStockInRequest) (*dto.StockInCreatedResponse, error) {
	f.got = &req
	if len(req.StockInProducts) == 0 {
		return nil, appinventory.ErrMissingRequiredFields
	}
	return &dto.StockInCreatedResponse{Message: "Stock In recorded successfully", StockInID: 3, ReferenceNumber: "IN-20240305-1"}, nil
}

func (f *fakeStockInService) ListStockIns(context.Context) ([]dto.StockInMovementResponse, error) {
	return []dto.StockInMovementResponse{}, nil
}

type fakeInventoryService struct {
	lastQuery *listing.Query
}

func (f *fakeInventoryService) List(context.Context) ([]dto.InventoryResponse, error) {
	return []dto.InventoryResponse{{VariationID: 1, SKU: "TS-001"}}, nil
}

func (f *fakeInventoryService) Browse(_ context.Context, q listing.Query) (*dto.ListingResponse[dto.InventoryResponse], error) {
	f.lastQuery = &q
	return &dto.ListingResponse[dto.InventoryResponse]{Items: []dto.InventoryResponse{}, Page: q.Page, TotalPages: 1}, nil
}

// fakeOrderService falla en los listados; los cambios de estado se registran.
type fakeOrderService struct {
	updates []string
}

func (*fakeOrderService) List(context.Context) ([]dto.OrderResponse, error) {
	return nil, errors.New("db caída")
}

func (*fakeOrderService) Browse(context.Context, listing.Query) (*dto.ListingResponse[dto.OrderResponse], error) {
	return nil, errors.New("db caída")
}

func (f *fakeOrderService) UpdatePaymentStatus(_ context.Context, id int64, status string) error {
	return f.update("payment", id, status)
}

func (f *fakeOrderService) UpdateOrderStatus(_ context.Context, id int64, status string) error {
	return f.update("order", id, status)
}

func (f *fakeOrderService) update(kind string, id int64, status string) error {
	switch {
	case status == "":
		return fmt.Errorf("%w: status is required", domain.ErrInvalidInput)
	case id == 404:
		return fmt.Errorf("orden %d: %w", id, domain.ErrNotFound)
	case id == 500:
		return errors.New("db caída")
	}
	f.updates = append(f.updates, fmt.Sprintf("%s:%d:%s", kind, id, status))
	return nil
}

func (*fakeOrderService) Statuses() dto.OrderStatusesResponse {
	return dto.OrderStatusesResponse{PaymentStatuses: []string{"Pending", "Paid"}, OrderStatuses: []string{"Pending", "Completed"}}
}

type fakeLogin struct{}

func (fakeLogin) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	switch in.Email {
	case "ok@tienda.com":
		return &dto.LoginResponse{Token: "tok", Employee: dto.EmployeeResponse{EmployeeID: 1, Role: "admin"}}, nil
	case "inactivo@tienda.com":
		return nil, domain.ErrForbidden
	case "":
		return nil, domain.ErrInvalidInput
	}
	return nil, domain.ErrUnauthorized
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServices struct {
	stockOut  *fakeStockOutService
	stockIn   *fakeStockInService
	inventory *fakeInventoryService
	orders    *fakeOrderService
	products  *fakeProductService
}

func newRouterApp(t *testing.T, checks map[string]apphttp.Pinger) (*fiber.App, *testServices) {
	t.Helper()
	return newRouterAppIn(t, checks, time.UTC)
}

func newRouterAppIn(t *testing.T, checks map[string]apphttp.Pinger, loc *time.Location) (*fiber.App, *testServices) {
	t.Helper()
	svc := &testServices{
		stockOut:  &fakeStockOutService{},
		stockIn:   &fakeStockInService{},
		inventory: &fakeInventoryService{},
		orders:    &fakeOrderService{},
		products:  &fakeProductService{},
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      fakeLogin{},
		StockOutUC:  svc.stockOut,
		StockOutPDF: fakePDFService{},
		StockInUC:   svc.stockIn,
		InventoryUC: svc.inventory,
		OrderUC:     svc.orders,
		ProductUC:   svc.products,
		Location:    loc,
		JWTSecret:   testJWTSecret,
		Checks:      checks,
	})
	return app, svc
}

func send(t *testing.T, app *fiber.App, method, path string, body any, auth string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func validStockOutBody() map[string]any {
	return map[string]any{
		"stockOutProducts": []map[string]any{{"variation_id": "5", "quantity": 2, "reason": "Dañado"}},
		"employee_id":      7,
		"stock_out_date":   "2024-03-05T10:00",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestStockOutCreate_Exito201(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	resp, body := send(t, app, http.MethodPost, "/api/stock-out", validStockOutBody(), tokenForRole(t, "staff"))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Stock Out recorded successfully", body["message"])
	assert.EqualValues(t, 42, body["stock_out_id"])
	assert.Equal(t, "ADJ-20240305-7", body["reference_number"])

	require.NotNil(t, svc.stockOut.got)
	assert.EqualValues(t, 5, svc.stockOut.got.StockOutProducts[0].VariationID)
	assert.EqualValues(t, 0, svc.stockOut.got.OrderTransactionID)
}

func TestStockOutCreate_FechaSinZonaEsHoraLocalDeLaTienda(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	app, svc := newRouterAppIn(t, nil, manila)

	b := validStockOutBody()
	b["stock_out_date"] = "2024-03-05T09:00"
	resp, _ := send(t, app, http.MethodPost, "/api/stock-out", b, tokenForRole(t, "staff"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, svc.stockOut.got)
	got := svc.stockOut.got.StockOutDate.Time
	assert.Equal(t, time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC), got.UTC())

	b["stock_out_date"] = "2024-03-05T09:00:00Z"
	resp, _ = send(t, app, http.MethodPost, "/api/stock-out", b, tokenForRole(t, "staff"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), svc.stockOut.got.StockOutDate.Time.UTC(), "zona explícita se respeta")
}

func TestStockInCreate_FechaSinZonaEsHoraLocalDeLaTienda(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	app, svc := newRouterAppIn(t, nil, manila)

	b := map[string]any{
		"stockInProducts": []map[string]any{{"variation_id": 5, "quantity": 1, "unit_cost": "1"}},
		"stock_in_date":   "2024-03-05",
	}
	resp, _ := send(t, app, http.MethodPost, "/api/stock-in", b, tokenForRole(t, "staff"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, svc.stockIn.got)
	assert.Equal(t, time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC), svc.stockIn.got.StockInDate.Time.UTC())
}

func TestStockOutCreate_CamposFaltantes400(t *testing.T) {
	cases := map[string]func(b map[string]any){
		"sin productos": func(b map[string]any) { b["stockOutProducts"] = []any{} },
		"sin empleado":  func(b map[string]any) { delete(b, "employee_id") },
		"sin fecha":     func(b map[string]any) { b["stock_out_date"] = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			app, svc := newRouterApp(t, nil)
			b := validStockOutBody()
			mutate(b)
			resp, body := send(t, app, http.MethodPost, "/api/stock-out", b, tokenForRole(t, "staff"))

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Missing required fields", body["message"])
			assert.Nil(t, svc.stockOut.got, "no debe llegar al caso de uso")
		})
	}
}

func TestStockOutCreate_ValidacionDelCasoDeUso400(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	svc.stockOut.err = fmt.Errorf("%w: línea 1: motivo requerido", domain.ErrInvalidInput)

	resp, body := send(t, app, http.MethodPost, "/api/stock-out", validStockOutBody(), tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "motivo requerido")
}

func TestStockOutCreate_FalloInterno500(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	svc.stockOut.err = fmt.Errorf("línea 2: %w", domain.ErrVariationNotFound)

	resp, body := send(t, app, http.MethodPost, "/api/stock-out", validStockOutBody(), tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error during stock out", body["message"])
	assert.Contains(t, body["error"], domain.ErrVariationNotFound.Error())
}

func TestStockOutCreate_CuerpoInvalido400(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/stock-out", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "staff"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStockOut_SinToken401(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	resp, _ := send(t, app, http.MethodGet, "/api/stock-out", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStockOut_RolDesconocido403(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	resp, _ := send(t, app, http.MethodGet, "/api/stock-out", nil, tokenForRole(t, "cliente"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStockOutList_Error500(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	svc.stockOut.listErr = errors.New("timeout")

	resp, body := send(t, app, http.MethodGet, "/api/stock-out", nil, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error during get all stock out", body["message"])
	assert.Equal(t, "timeout", body["error"])
}

func TestStockOutGetByID(t *testing.T) {
	app, _ := newRouterApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock-out/99", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw), "id inexistente devuelve lista vacía")

	resp, _ = send(t, app, http.MethodGet, "/api/stock-out/abc", nil, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStockOutPDF(t *testing.T) {
	app, _ := newRouterApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock-out/42/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "salida_ADJ-20240305-7.pdf")

	resp, body := send(t, app, http.MethodGet, "/api/stock-out/404/pdf", nil, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestStockInCreate_EmpleadoDelToken(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	b := map[string]any{
		"stockInProducts": []map[string]any{{"variation_id": 5, "quantity": 10, "unit_cost": "12.50"}},
		"supplier":        "Textiles SAS",
	}
	resp, body := send(t, app, http.MethodPost, "/api/stock-in", b, tokenForRole(t, "staff"))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "IN-20240305-1", body["reference_number"])
	require.NotNil(t, svc.stockIn.got)
	assert.EqualValues(t, testEmployeeID, svc.stockIn.got.EmployeeID)
}

func TestStockInCreate_SinProductos400(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	resp, body := send(t, app, http.MethodPost, "/api/stock-in", map[string]any{"supplier": "X"}, tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryList_SinPageDevuelveArreglo(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.Header.Set("Authorization", tokenForRole(t, "staff"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []dto.InventoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
	assert.Nil(t, svc.inventory.lastQuery)
}

func TestInventoryList_ConPageParseaQuery(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	path := "/api/inventory?page=2&search=camisa&start_date=2024-03-01&end_date=2024-03-31&type=Talla&sort=sku&order=desc&ignorado=1"
	resp, body := send(t, app, http.MethodGet, path, nil, tokenForRole(t, "staff"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["page"])

	q := svc.inventory.lastQuery
	require.NotNil(t, q)
	assert.Equal(t, "camisa", q.Search)
	assert.Equal(t, map[string]string{"type": "Talla"}, q.Filters)
	assert.Equal(t, listing.SortState{Field: "sku", Order: listing.Desc}, q.Sort)
	require.NotNil(t, q.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.StartDate)
	require.NotNil(t, q.EndDate)
	assert.Equal(t, 31, q.EndDate.Day())
}

func TestInventoryList_FechaInvalida400(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	resp, body := send(t, app, http.MethodGet, "/api/inventory?page=1&start_date=05/03/2024", nil, tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "start_date")
}

func TestOrderList_Error500(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	resp, body := send(t, app, http.MethodGet, "/api/orders?page=1", nil, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error fetching orders", body["message"])
}

func TestOrderUpdateStatus(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	tok := tokenForRole(t, "admin")

	resp, body := send(t, app, http.MethodPut, "/api/orders/7/payment-status", map[string]any{"status": "Paid"}, tok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Payment status updated successfully", body["message"])

	resp, _ = send(t, app, http.MethodPut, "/api/orders/7/order-status", map[string]any{"status": "Completed"}, tok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"payment:7:Paid", "order:7:Completed"}, svc.orders.updates)
}

func TestOrderUpdateStatus_Errores(t *testing.T) {
	app, svc := newRouterApp(t, nil)
	tok := tokenForRole(t, "staff")

	cases := []struct {
		name string
		path string
		body map[string]any
		want int
		code string
	}{
		{"id inválido", "/api/orders/abc/order-status", map[string]any{"status": "Completed"}, http.StatusBadRequest, "VALIDATION"},
		{"estado vacío", "/api/orders/7/order-status", map[string]any{"status": ""}, http.StatusBadRequest, "VALIDATION"},
		{"orden inexistente", "/api/orders/404/payment-status", map[string]any{"status": "Paid"}, http.StatusNotFound, "NOT_FOUND"},
		{"fallo interno", "/api/orders/500/payment-status", map[string]any{"status": "Paid"}, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := send(t, app, http.MethodPut, tc.path, tc.body, tok)
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
		})
	}
	assert.Empty(t, svc.orders.updates)

	resp, _ := send(t, app, http.MethodPut, "/api/orders/7/order-status", map[string]any{"status": "Completed"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderStatuses(t *testing.T) {
	app, _ := newRouterApp(t, nil)
	resp, body := send(t, app, http.MethodGet, "/api/orders/statuses", nil, tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"Pending", "Paid"}, body["payment_statuses"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y health
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CodigosDeEstado(t *testing.T) {
	cases := []struct {
		email string
		want  int
	}{
		{"ok@tienda.com", http.StatusOK},
		{"inactivo@tienda.com", http.StatusForbidden},
		{"", http.StatusBadRequest},
		{"otro@tienda.com", http.StatusUnauthorized},
	}
	app, _ := newRouterApp(t, nil)
	for _, tc := range cases {
		resp, _ := send(t, app, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: tc.email, Password: "x"}, "")
		assert.Equal(t, tc.want, resp.StatusCode, tc.email)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newRouterApp(t, map[string]apphttp.Pinger{"postgres": fakePinger{}})
	resp, body := send(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", body["postgres"])

	app, _ = newRouterApp(t, map[string]apphttp.Pinger{"redis": fakePinger{err: errors.New("refused")}})
	resp, body = send(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])
}
