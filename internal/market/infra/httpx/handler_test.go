package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/service"
	"github.com/freshly-yours/marketplace/internal/market/infra/adapters/memory"
	"github.com/freshly-yours/marketplace/internal/market/infra/token"
	"github.com/freshly-yours/marketplace/internal/notify"
)

// channelConn stands in for a websocket connection on the hub, capturing the
// events a client would receive.
type channelConn struct {
	writes [][]byte
	fail   bool
}

func (c *channelConn) WriteMessage(messageType int, data []byte) error {
	if c.fail {
		return errors.New("connection gone")
	}
	c.writes = append(c.writes, data)
	return nil
}

func (c *channelConn) Close() error { return nil }

type testEnv struct {
	server *httptest.Server
	hub    *notify.Hub
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ledger := memory.NewOrderLedger()
	directory := memory.NewActorDirectory()
	catalog := memory.NewProductCatalog()
	hub := notify.NewHub()
	tokens := token.NewJWTManager("test-secret")

	authService := service.NewAuthService(directory, tokens)
	catalogService := service.NewCatalogService(catalog, directory)
	orderService := service.NewOrderService(
		ledger, directory, service.NewFirstAvailablePicker(directory), hub, nil,
	)

	handler := NewHandler(authService, catalogService, orderService, hub)
	server := httptest.NewServer(NewRouter(handler, authService))
	t.Cleanup(server.Close)

	return &testEnv{server: server, hub: hub, client: server.Client()}
}

// call sends a JSON request and decodes the JSON response into out (if
// non-nil), returning the status code.
func (e *testEnv) call(t *testing.T, method, path, bearer string, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) register(t *testing.T, name, email, role string) (*entity.Actor, string) {
	t.Helper()

	body := map[string]any{
		"name":     name,
		"email":    email,
		"phone":    "9876543210",
		"password": "s3cret!",
		"role":     role,
		"address":  map[string]string{"city": "Pune", "state": "Maharashtra"},
	}
	var resp AuthResponse
	status := e.call(t, http.MethodPost, "/api/auth/register", "", body, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, resp.Token)
	return resp.User, resp.Token
}

func placeOrderBody() map[string]any {
	return map[string]any{
		"productName":  "Fresh Tomatoes",
		"productPrice": 25,
		"quantity":     4,
		"deliveryAddress": map[string]string{
			"street": "12 Market Road", "city": "Pune", "state": "Maharashtra", "pincode": "411001",
		},
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)

	var resp map[string]string
	status := e.call(t, http.MethodGet, "/api/health", "", nil, &resp)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp["message"], "running")
}

func TestRegisterLoginMe(t *testing.T) {
	e := newTestEnv(t)
	vendor, _ := e.register(t, "Ravi Kumar", "ravi@example.com", "vendor")
	assert.Equal(t, entity.RoleVendor, vendor.Role)

	// Duplicate email is a conflict.
	var dup ErrorResponse
	body := map[string]any{
		"name": "Imposter", "email": "ravi@example.com", "password": "s3cret!", "role": "vendor",
	}
	status := e.call(t, http.MethodPost, "/api/auth/register", "", body, &dup)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email_taken", dup.Error)

	// Wrong password is a 401 with no hint which part was wrong.
	var errResp ErrorResponse
	status = e.call(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ravi@example.com", "password": "nope"}, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_credentials", errResp.Error)

	var login AuthResponse
	status = e.call(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ravi@example.com", "password": "s3cret!"}, &login)
	require.Equal(t, http.StatusOK, status)

	var me map[string]*entity.Actor
	status = e.call(t, http.MethodGet, "/api/auth/me", login.Token, nil, &me)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, vendor.ID, me["user"].ID)
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	e := newTestEnv(t)
	vendor, vendorToken := e.register(t, "Ravi Kumar", "ravi@example.com", "vendor")
	supplier, supplierToken := e.register(t, "Green Farms", "green@example.com", "supplier")

	// The supplier has a live channel; the vendor is connected too.
	supplierConn := &channelConn{}
	e.hub.Register(supplier.ID, supplierConn)
	vendorConn := &channelConn{}
	e.hub.Register(vendor.ID, vendorConn)

	var placed OrderResponse
	status := e.call(t, http.MethodPost, "/api/orders", vendorToken, placeOrderBody(), &placed)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, placed.Order)
	assert.Equal(t, entity.StatusPlaced, placed.Order.Status)
	assert.Equal(t, float64(100), placed.Order.TotalAmount)
	assert.Equal(t, supplier.ID, placed.Order.SupplierID)
	assert.Equal(t, "Ravi Kumar", placed.Order.Vendor.Name)

	// The supplier's channel saw the new-order event.
	require.Len(t, supplierConn.writes, 1)
	var event struct {
		Kind string          `json:"event"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(supplierConn.writes[0], &event))
	assert.Equal(t, "new-order", event.Kind)

	// Supplier accepts; the vendor's channel sees the status update.
	var accepted OrderResponse
	status = e.call(t, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", supplierToken,
		map[string]string{"status": "accepted"}, &accepted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.StatusAccepted, accepted.Order.Status)
	assert.NotNil(t, accepted.Order.AcceptedDate)

	require.Len(t, vendorConn.writes, 1)
	require.NoError(t, json.Unmarshal(vendorConn.writes[0], &event))
	assert.Equal(t, "order-status-update", event.Kind)
	var update notify.StatusUpdateData
	require.NoError(t, json.Unmarshal(event.Data, &update))
	assert.Equal(t, placed.Order.ID, update.OrderID)
	assert.Equal(t, entity.StatusAccepted, update.Status)

	// Skipping acceptance or re-deciding a settled order conflicts.
	var conflict ErrorResponse
	status = e.call(t, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", supplierToken,
		map[string]string{"status": "rejected"}, &conflict)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "illegal_transition", conflict.Error)

	var delivered OrderResponse
	status = e.call(t, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", supplierToken,
		map[string]string{"status": "delivered"}, &delivered)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, delivered.Order.DeliveredDate)

	// Both sides can list and fetch the order.
	var list OrderListResponse
	status = e.call(t, http.MethodGet, "/api/orders/vendor", vendorToken, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "Green Farms", list.Orders[0].Supplier.Name)

	status = e.call(t, http.MethodGet, "/api/orders/supplier", supplierToken, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list.Orders, 1)

	var single OrderResponse
	status = e.call(t, http.MethodGet, "/api/orders/"+placed.Order.ID, supplierToken, nil, &single)
	assert.Equal(t, http.StatusOK, status)
}

func TestPlaceOrderValidationAndSupplierErrors(t *testing.T) {
	e := newTestEnv(t)
	_, vendorToken := e.register(t, "Ravi Kumar", "ravi@example.com", "vendor")

	// No supplier registered at all.
	var errResp ErrorResponse
	status := e.call(t, http.MethodPost, "/api/orders", vendorToken, placeOrderBody(), &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no_suppliers_available", errResp.Error)

	_, _ = e.register(t, "Green Farms", "green@example.com", "supplier")

	// Short pincode is rejected with the offending field named.
	body := placeOrderBody()
	body["deliveryAddress"] = map[string]string{
		"street": "12 Market Road", "city": "Pune", "state": "Maharashtra", "pincode": "41100",
	}
	status = e.call(t, http.MethodPost, "/api/orders", vendorToken, body, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", errResp.Error)
	assert.Equal(t, "deliveryAddress.pincode", errResp.Field)

	// An explicit supplier id must belong to a supplier.
	body = placeOrderBody()
	body["supplierId"] = "not-a-supplier"
	status = e.call(t, http.MethodPost, "/api/orders", vendorToken, body, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_supplier", errResp.Error)
}

func TestStatusUpdateByForeignSupplierIs404(t *testing.T) {
	e := newTestEnv(t)
	_, vendorToken := e.register(t, "Ravi Kumar", "ravi@example.com", "vendor")
	green, _ := e.register(t, "Green Farms", "green@example.com", "supplier")
	_, strangerToken := e.register(t, "Hill Produce", "hill@example.com", "supplier")

	// Pin the order to Green Farms so the other supplier is definitely foreign.
	body := placeOrderBody()
	body["supplierId"] = green.ID
	var placed OrderResponse
	status := e.call(t, http.MethodPost, "/api/orders", vendorToken, body, &placed)
	require.Equal(t, http.StatusCreated, status)

	var errResp ErrorResponse
	status = e.call(t, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", strangerToken,
		map[string]string{"status": "accepted"}, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "order_not_found", errResp.Error)

	// The fetch-one path distinguishes: a vendor uninvolved in the order gets 403.
	_, otherVendorToken := e.register(t, "Meena", "meena@example.com", "vendor")
	status = e.call(t, http.MethodGet, "/api/orders/"+placed.Order.ID, otherVendorToken, nil, &errResp)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "access_denied", errResp.Error)
}

func TestAuthAndRoleGuards(t *testing.T) {
	e := newTestEnv(t)
	_, vendorToken := e.register(t, "Ravi Kumar", "ravi@example.com", "vendor")
	_, supplierToken := e.register(t, "Green Farms", "green@example.com", "supplier")

	// No token.
	status := e.call(t, http.MethodGet, "/api/orders/vendor", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Garbage token.
	status = e.call(t, http.MethodGet, "/api/orders/vendor", "garbage", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// A supplier cannot place orders; a vendor cannot manage listings.
	status = e.call(t, http.MethodPost, "/api/orders", supplierToken, placeOrderBody(), nil)
	assert.Equal(t, http.StatusForbidden, status)
	status = e.call(t, http.MethodPost, "/api/supplier/products", vendorToken,
		map[string]any{"name": "Fresh Tomatoes", "price": 25, "stock": 10, "deliveryRadius": 15}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCatalogRoutes(t *testing.T) {
	e := newTestEnv(t)
	_, vendorToken := e.register(t, "Ravi Kumar", "ravi@example.com", "vendor")
	_, supplierToken := e.register(t, "Green Farms", "green@example.com", "supplier")

	var created ProductResponse
	status := e.call(t, http.MethodPost, "/api/supplier/products", supplierToken, map[string]any{
		"name": "Fresh Tomatoes", "price": 25, "stock": 120,
		"category": "vegetables", "deliveryRadius": 15,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, created.Product)

	var own ProductListResponse
	status = e.call(t, http.MethodGet, "/api/supplier/products", supplierToken, nil, &own)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, own.Products, 1)

	var browse BrowseResponse
	status = e.call(t, http.MethodGet, "/api/vendor/products?search=tomato", vendorToken, nil, &browse)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, browse.Total)
	assert.Equal(t, "Green Farms", browse.Products[0].Supplier.Name)

	// Soft delete removes it from both views.
	status = e.call(t, http.MethodDelete, "/api/supplier/products/"+created.Product.ID, supplierToken, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = e.call(t, http.MethodGet, "/api/vendor/products", vendorToken, nil, &browse)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, browse.Total)

	// Updating the (now foreign-invisible) listing of another supplier 404s.
	_, otherToken := e.register(t, "Hill Produce", "hill@example.com", "supplier")
	var errResp ErrorResponse
	status = e.call(t, http.MethodPut, "/api/supplier/products/"+created.Product.ID, otherToken, map[string]any{
		"name": "Stolen Tomatoes", "price": 1, "stock": 1, "deliveryRadius": 10,
	}, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "product_not_found", errResp.Error)
}
