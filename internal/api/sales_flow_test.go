package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmaplus/pharmacy-api/internal/api/handler"
	"github.com/farmaplus/pharmacy-api/internal/api/middleware"
	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
	"github.com/farmaplus/pharmacy-api/internal/core/service"
)

const testSecret = "test-secret"

// memSaleRepo emulates the row-locked sale transaction against a single
// in-memory product.
type memSaleRepo struct {
	mu      sync.Mutex
	product domain.Product
	nextID  int64
	sales   []domain.Sale
}

func (m *memSaleRepo) RecordSale(_ context.Context, productID int64, quantity int) (*ports.SaleTxResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if productID != m.product.ID {
		return nil, domain.ErrProductNotFound
	}
	if m.product.Quantity < quantity {
		return nil, &domain.InsufficientStockError{Available: m.product.Quantity}
	}

	m.product.Quantity -= quantity
	m.nextID++
	s := domain.Sale{
		ID:          m.nextID,
		ProductID:   productID,
		Quantity:    quantity,
		SaleDate:    time.Now().UTC(),
		ProductName: m.product.Name,
		UnitPrice:   m.product.Price,
	}
	m.sales = append(m.sales, s)
	return &ports.SaleTxResult{Sale: s, RemainingStock: m.product.Quantity}, nil
}

func (m *memSaleRepo) ListSales(context.Context) ([]domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Sale, len(m.sales))
	copy(out, m.sales)
	return out, nil
}

// memUserRepo holds the single account used by the login flow.
type memUserRepo struct{ user domain.User }

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if username != m.user.Username {
		return nil, domain.ErrUserNotFound
	}
	u := m.user
	return &u, nil
}

func (m *memUserRepo) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (m *memUserRepo) List(context.Context) ([]domain.User, error) { return nil, nil }
func (m *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (m *memUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (m *memUserRepo) Delete(context.Context, int64) error { return nil }

// newFlowServer wires real services and real middleware around in-memory
// repositories, so requests travel the same path as in production: auth gate,
// validation, service, and the central error handler.
func newFlowServer(t *testing.T, stock int) (*echo.Echo, *memSaleRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &memUserRepo{user: domain.User{
		ID:           1,
		Username:     "clerk",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}}
	repo := &memSaleRepo{product: domain.Product{ID: 1, Name: "Paracetamol", Quantity: stock, Price: 2.00}}

	log := zerolog.Nop()
	authService := service.NewAuthService(users, nil, testSecret, time.Hour)
	saleService := service.NewSaleService(repo, log)

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	authRequired := middleware.Auth(testSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(authService)
	saleHandler := handler.NewSaleHandler(saleService)

	e.POST("/auth/login", authHandler.Login)
	sales := e.Group("/sales", authRequired, anyRole)
	sales.GET("", saleHandler.List)
	sales.POST("", saleHandler.Record)
	e.GET("/users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	}, authRequired, adminOnly)

	return e, repo
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"clerk","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token    string `json:"token"`
		Role     string `json:"role"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}
	if resp.Token == "" || resp.Role != "user" || resp.Username != "clerk" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	return resp.Token
}

func postSale(e *echo.Echo, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSalesFlow_SellDownToLowStock(t *testing.T) {
	e, _ := newFlowServer(t, 5)
	token := login(t, e)

	// Stock 5, sell 3: commits and drops to 2, under the low-stock threshold.
	rec := postSale(e, token, `{"productId":1,"quantity":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Sale struct {
			ID          int64   `json:"id"`
			ProductID   int64   `json:"productId"`
			Quantity    int     `json:"quantity"`
			ProductName string  `json:"productName"`
			UnitPrice   float64 `json:"unitPrice"`
		} `json:"sale"`
		LowStock       bool `json:"lowStock"`
		RemainingStock int  `json:"remainingStock"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.RemainingStock != 2 || !resp.LowStock {
		t.Fatalf("expected remaining 2 and lowStock, got %+v", resp)
	}
	if resp.Sale.ProductName != "Paracetamol" || resp.Sale.UnitPrice != 2.00 {
		t.Fatalf("unexpected sale payload: %+v", resp.Sale)
	}

	// Only 2 left: selling 10 fails with the exact availability message and
	// leaves stock untouched.
	rec = postSale(e, token, `{"productId":1,"quantity":10}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if errResp.Error != "Insufficient stock. Only 2 units available." {
		t.Fatalf("unexpected error message: %q", errResp.Error)
	}

	// The remaining 2 are still sellable.
	rec = postSale(e, token, `{"productId":1,"quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestSalesFlow_UnknownProduct(t *testing.T) {
	e, _ := newFlowServer(t, 5)
	token := login(t, e)

	rec := postSale(e, token, `{"productId":999,"quantity":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "product not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSalesFlow_InvalidPayloads(t *testing.T) {
	e, repo := newFlowServer(t, 5)
	token := login(t, e)

	for _, body := range []string{
		`{"quantity":1}`,
		`{"productId":1,"quantity":0}`,
		`{"productId":1,"quantity":-2}`,
		`{"productId":1}`,
	} {
		rec := postSale(e, token, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if repo.product.Quantity != 5 {
		t.Fatalf("stock changed by rejected requests: %d", repo.product.Quantity)
	}
}

func TestSalesFlow_RequiresToken(t *testing.T) {
	e, _ := newFlowServer(t, 5)

	rec := postSale(e, "", `{"productId":1,"quantity":1}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = postSale(e, "not-a-token", `{"productId":1,"quantity":1}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSalesFlow_UserRoleCannotManageAccounts(t *testing.T) {
	e, _ := newFlowServer(t, 5)
	token := login(t, e)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "access forbidden") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSalesFlow_WrongPassword(t *testing.T) {
	e, _ := newFlowServer(t, 5)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"clerk","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid username or password") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

// Concurrent submissions through the full HTTP stack never oversell: with
// stock 5, twenty parallel single-unit sales yield exactly five 201s.
func TestSalesFlow_ConcurrentSalesNeverOversell(t *testing.T) {
	e, repo := newFlowServer(t, 5)
	token := login(t, e)

	const callers = 20
	codes := make(chan int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := postSale(e, token, `{"productId":1,"quantity":1}`)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	var created, rejected int
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if created != 5 || rejected != 15 {
		t.Fatalf("expected 5 created / 15 rejected, got %d / %d", created, rejected)
	}
	if repo.product.Quantity != 0 {
		t.Fatalf("expected stock 0, got %d", repo.product.Quantity)
	}

	sales, err := repo.ListSales(context.Background())
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if len(sales) != 5 {
		t.Fatalf("expected exactly 5 sale records, got %d", len(sales))
	}
}

func TestSalesFlow_ListReflectsCommittedSales(t *testing.T) {
	e, _ := newFlowServer(t, 20)
	token := login(t, e)

	for i := 1; i <= 3; i++ {
		rec := postSale(e, token, fmt.Sprintf(`{"productId":1,"quantity":%d}`, i))
		if rec.Code != http.StatusCreated {
			t.Fatalf("sale %d: expected 201, got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sales []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &sales); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("expected 3 sales, got %d", len(sales))
	}
}
