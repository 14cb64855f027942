package productcontroller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	routes.SetupProductRoutes(r, s)
	return r, s
}

func tokenWithRole(t *testing.T, s *store.MemoryStore, role models.Role) string {
	t.Helper()
	user := models.User{Email: uuid.NewString() + "@test.local", Password: "x", Name: "Test", Role: role}
	if err := s.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := auth.GenerateToken(&user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
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

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return body
}

func TestCreateProductAdminOnly(t *testing.T) {
	r, s := setup(t)
	userToken := tokenWithRole(t, s, models.RoleUser)

	body := gin.H{"name": "Widget", "price": 9.99, "stock": 5}

	w := do(r, http.MethodPost, "/products", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d, want 401", w.Code)
	}

	w = do(r, http.MethodPost, "/products", userToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user token: got %d, want 403", w.Code)
	}
}

func TestCreateProduct(t *testing.T) {
	r, s := setup(t)
	adminToken := tokenWithRole(t, s, models.RoleAdmin)

	w := do(r, http.MethodPost, "/products", adminToken, gin.H{
		"name":        "  Widget  ",
		"description": "A widget",
		"price":       9.99,
		"stock":       5,
		"imageUrl":    "https://img.test/w.png",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]any)
	if data["name"] != "Widget" {
		t.Fatalf("got name %q, want trimmed %q", data["name"], "Widget")
	}
}

func TestCreateProductCoercesNumericStrings(t *testing.T) {
	r, s := setup(t)
	adminToken := tokenWithRole(t, s, models.RoleAdmin)

	w := do(r, http.MethodPost, "/products", adminToken, gin.H{
		"name":  "Widget",
		"price": "19.90",
		"stock": "7",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]any)
	if data["price"].(float64) != 19.90 {
		t.Fatalf("got price %v, want 19.90", data["price"])
	}
	if data["stock"].(float64) != 7 {
		t.Fatalf("got stock %v, want 7", data["stock"])
	}
}

func TestCreateProductValidation(t *testing.T) {
	r, s := setup(t)
	adminToken := tokenWithRole(t, s, models.RoleAdmin)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"price": 1, "stock": 1}},
		{"missing price", gin.H{"name": "X", "stock": 1}},
		{"missing stock", gin.H{"name": "X", "price": 1}},
		{"negative price", gin.H{"name": "X", "price": -1, "stock": 1}},
		{"negative stock", gin.H{"name": "X", "price": 1, "stock": -1}},
		{"junk price", gin.H{"name": "X", "price": "abc", "stock": 1}},
	}
	for _, tc := range cases {
		w := do(r, http.MethodPost, "/products", adminToken, tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, w.Code)
		}
	}
}

func seedCatalog(t *testing.T, s *store.MemoryStore, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		p := models.Product{Name: fmt.Sprintf("P%02d", i), Price: float64(i), Stock: 10}
		if err := s.CreateProduct(&p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
}

func TestListProductsPagination(t *testing.T) {
	r, s := setup(t)
	seedCatalog(t, s, 12)

	w := do(r, http.MethodGet, "/products?page=2&limit=5", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	body := decode(t, w)
	items := body["data"].([]any)
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
	meta := body["meta"].(map[string]any)
	p := meta["pagination"].(map[string]any)
	checks := map[string]any{
		"totalItems":      float64(12),
		"totalPages":      float64(3),
		"currentPage":     float64(2),
		"hasNextPage":     true,
		"hasPreviousPage": true,
	}
	for key, want := range checks {
		if p[key] != want {
			t.Errorf("pagination[%s] = %v, want %v", key, p[key], want)
		}
	}
}

func TestListProductsPriceFilterAndSort(t *testing.T) {
	r, s := setup(t)
	seedCatalog(t, s, 12)

	w := do(r, http.MethodGet, "/products?minPrice=4&maxPrice=8&sortBy=price&sortOrder=desc", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	body := decode(t, w)
	items := body["data"].([]any)
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5 (prices 4..8)", len(items))
	}
	first := items[0].(map[string]any)
	if first["price"].(float64) != 8 {
		t.Fatalf("got first price %v, want 8 (desc)", first["price"])
	}
}

func TestListProductsInvalidParams(t *testing.T) {
	r, s := setup(t)
	seedCatalog(t, s, 2)

	for _, path := range []string{
		"/products?minPrice=abc",
		"/products?maxPrice=abc",
		"/products?sortBy=password",
	} {
		w := do(r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", path, w.Code)
		}
	}
}

func TestListProductsLimitCap(t *testing.T) {
	r, s := setup(t)
	seedCatalog(t, s, 2)

	w := do(r, http.MethodGet, "/products?limit=5000", "", nil)
	body := decode(t, w)
	p := body["meta"].(map[string]any)["pagination"].(map[string]any)
	if p["itemsPerPage"].(float64) != 100 {
		t.Fatalf("got itemsPerPage %v, want cap of 100", p["itemsPerPage"])
	}
}

func TestExportProductsToExcel(t *testing.T) {
	r, s := setup(t)
	adminToken := tokenWithRole(t, s, models.RoleAdmin)
	seedCatalog(t, s, 3)

	w := do(r, http.MethodGet, "/products/export/xlsx", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d, want 401", w.Code)
	}

	w = do(r, http.MethodGet, "/products/export/xlsx", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=products.xlsx" {
		t.Fatalf("got Content-Disposition %q", got)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected a non-empty workbook")
	}
}

func TestGetProductByID(t *testing.T) {
	r, s := setup(t)
	p := models.Product{Name: "Widget", Price: 5, Stock: 1}
	if err := s.CreateProduct(&p); err != nil {
		t.Fatalf("create: %v", err)
	}

	w := do(r, http.MethodGet, "/products/"+p.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}

	w = do(r, http.MethodGet, "/products/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: got %d, want 404", w.Code)
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	r, s := setup(t)
	adminToken := tokenWithRole(t, s, models.RoleAdmin)
	p := models.Product{Name: "Widget", Price: 5, Stock: 1}
	if err := s.CreateProduct(&p); err != nil {
		t.Fatalf("create: %v", err)
	}

	w := do(r, http.MethodPut, "/products/"+p.ID, adminToken, gin.H{
		"name": "Widget v2", "price": 6, "stock": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	updated, _ := s.GetProduct(p.ID)
	if updated.Name != "Widget v2" || updated.Price != 6 || updated.Stock != 3 {
		t.Fatalf("update not applied: %+v", updated)
	}

	w = do(r, http.MethodDelete, "/products/"+p.ID, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d, want 200", w.Code)
	}
	if _, err := s.GetProduct(p.ID); err == nil {
		t.Fatal("product still present after delete")
	}

	w = do(r, http.MethodDelete, "/products/"+p.ID, adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d, want 404", w.Code)
	}
}
