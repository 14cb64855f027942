package ordercontroller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/velmart/ecommerce-api/auth"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/routes"
	"github.com/velmart/ecommerce-api/store"
)

func setup(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	s := store.NewMemoryStore()
	r := gin.New()
	routes.SetupOrderRoutes(r, s)
	return r, s
}

func newUser(t *testing.T, s *store.MemoryStore) (string, string) {
	t.Helper()
	user := models.User{Email: uuid.NewString() + "@test.local", Password: "x", Name: "Test", Role: models.RoleUser}
	if err := s.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := auth.GenerateToken(&user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token, user.ID
}

func newProduct(t *testing.T, s *store.MemoryStore, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Stock: stock}
	if err := s.CreateProduct(&p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return &p
}

func addLine(t *testing.T, s *store.MemoryStore, userID, productID string, qty int) {
	t.Helper()
	line := models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	if err := s.CreateCartLine(&line); err != nil {
		t.Fatalf("create cart line: %v", err)
	}
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	r, s := setup(t)
	token, userID := newUser(t, s)

	w := do(r, http.MethodPost, "/orders", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}

	orders, _, err := s.ListOrders(userID, 1, 10)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("got %d orders, want 0", len(orders))
	}
}

func TestPlaceOrderSnapshotsAndClearsCart(t *testing.T) {
	r, s := setup(t)
	token, userID := newUser(t, s)
	p1 := newProduct(t, s, "A", 10, 100)
	p2 := newProduct(t, s, "B", 2.5, 100)
	addLine(t, s, userID, p1.ID, 3)
	addLine(t, s, userID, p2.ID, 2)

	w := do(r, http.MethodPost, "/orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	orders, total, err := s.ListOrders(userID, 1, 10)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("got %d orders, want exactly 1", len(orders))
	}
	order := orders[0]
	if order.Total != 35 { // 3*10 + 2*2.5
		t.Fatalf("got total %v, want 35", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("got %d order items, want 2", len(order.Items))
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("got status %q, want PENDING", order.Status)
	}

	// Cart is empty afterwards.
	lines, _ := s.AllCartLines(userID)
	if len(lines) != 0 {
		t.Fatalf("got %d remaining cart lines, want 0", len(lines))
	}

	// Stock was decremented.
	got1, _ := s.GetProduct(p1.ID)
	if got1.Stock != 97 {
		t.Fatalf("got stock %d, want 97", got1.Stock)
	}

	// Item prices are frozen: a later catalog price change must not leak
	// into the placed order.
	got1.Price = 999
	if err := s.UpdateProduct(got1); err != nil {
		t.Fatalf("update product: %v", err)
	}
	orders, _, _ = s.ListOrders(userID, 1, 10)
	for _, item := range orders[0].Items {
		if item.ProductID == p1.ID && item.Price != 10 {
			t.Fatalf("got snapshot price %v, want 10", item.Price)
		}
	}
	if orders[0].Total != 35 {
		t.Fatalf("got total %v after price change, want 35", orders[0].Total)
	}
}

// lateAddStore lands an extra cart line at the moment the placement
// transaction begins, like a concurrent add racing the checkout.
type lateAddStore struct {
	store.Store
	add func()
}

func (s *lateAddStore) WithinTx(fn func(store.Store) error) error {
	s.add()
	return s.Store.WithinTx(fn)
}

func TestPlaceOrderIncludesLinesPresentAtTransactionStart(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	mem := store.NewMemoryStore()

	token, userID := newUser(t, mem)
	p1 := newProduct(t, mem, "A", 10, 100)
	p2 := newProduct(t, mem, "B", 4, 100)
	addLine(t, mem, userID, p1.ID, 1)

	wrapped := &lateAddStore{Store: mem, add: func() {
		addLine(t, mem, userID, p2.ID, 2)
	}}
	r := gin.New()
	routes.SetupOrderRoutes(r, wrapped)

	w := do(r, http.MethodPost, "/orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	// Every line the clear removed was ordered: both lines, not just the
	// one present before the transaction began.
	orders, _, err := mem.ListOrders(userID, 1, 10)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 || len(orders[0].Items) != 2 {
		t.Fatalf("got %d orders with %d items, want 1 order with 2 items", len(orders), len(orders[0].Items))
	}
	if orders[0].Total != 18 { // 1*10 + 2*4
		t.Fatalf("got total %v, want 18", orders[0].Total)
	}
	lines, _ := mem.AllCartLines(userID)
	if len(lines) != 0 {
		t.Fatalf("got %d remaining cart lines, want 0", len(lines))
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	r, s := setup(t)
	token, userID := newUser(t, s)
	p := newProduct(t, s, "Scarce", 10, 2)
	addLine(t, s, userID, p.ID, 5)

	w := do(r, http.MethodPost, "/orders", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 (body %s)", w.Code, w.Body.String())
	}

	// Nothing happened: no order, stock untouched, cart intact.
	orders, _, _ := s.ListOrders(userID, 1, 10)
	if len(orders) != 0 {
		t.Fatalf("got %d orders, want 0", len(orders))
	}
	got, _ := s.GetProduct(p.ID)
	if got.Stock != 2 {
		t.Fatalf("got stock %d, want 2", got.Stock)
	}
	lines, _ := s.AllCartLines(userID)
	if len(lines) != 1 {
		t.Fatalf("got %d cart lines, want 1", len(lines))
	}
}

func TestViewOrdersNewestFirst(t *testing.T) {
	r, s := setup(t)
	token, userID := newUser(t, s)
	p := newProduct(t, s, "A", 10, 100)

	// Place two orders back to back.
	for i := 0; i < 2; i++ {
		addLine(t, s, userID, p.ID, 1)
		w := do(r, http.MethodPost, "/orders", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("place %d: got %d", i, w.Code)
		}
	}

	w := do(r, http.MethodGet, "/orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data := body["data"].(map[string]any)
	list := data["orders"].([]any)
	if len(list) != 2 {
		t.Fatalf("got %d orders, want 2", len(list))
	}

	stored, _, _ := s.ListOrders(userID, 1, 10)
	first := list[0].(map[string]any)
	if first["id"] != stored[0].ID {
		t.Fatalf("orders not newest first")
	}
	items := first["items"].([]any)
	item := items[0].(map[string]any)
	if item["product"].(map[string]any)["name"] != "A" {
		t.Fatal("expected product snapshot embedded in order item")
	}
}

func TestOrdersRequireToken(t *testing.T) {
	r, _ := setup(t)
	w := do(r, http.MethodPost, "/orders", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}
