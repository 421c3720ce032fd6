package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/handlers"
	appmw "github.com/pearlbistro/ordering-api/internal/http/middleware"
	"github.com/pearlbistro/ordering-api/internal/service"
	"github.com/pearlbistro/ordering-api/pkg/auth"
	"github.com/pearlbistro/ordering-api/pkg/config"
)

const testSecret = "handlers-test-secret"

// ---------- Mocks ----------

type mockMenuRepo struct {
	mu    sync.Mutex
	items map[string]domain.MenuItem
}

func newMockMenuRepo() *mockMenuRepo {
	return &mockMenuRepo{items: make(map[string]domain.MenuItem)}
}

func (m *mockMenuRepo) List(context.Context) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MenuItem
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *mockMenuRepo) Get(_ context.Context, id string) (*domain.MenuItem, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (m *mockMenuRepo) Create(_ context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := domain.MenuItem{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Recipe:   req.Recipe,
		Image:    req.Image,
	}
	m.items[item.ID.Hex()] = item
	return &item, nil
}

func (m *mockMenuRepo) Update(_ context.Context, id string, patch *domain.MenuItemPatch) (*domain.MenuItem, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Recipe != nil {
		item.Recipe = *patch.Recipe
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	m.items[id] = item
	return &item, nil
}

func (m *mockMenuRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, domain.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *mockMenuRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *mockMenuRepo) FindByIDs(_ context.Context, ids []string) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MenuItem
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type mockCartRepo struct {
	mu      sync.Mutex
	entries map[string]domain.CartEntry
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{entries: make(map[string]domain.CartEntry)}
}

func (m *mockCartRepo) Insert(_ context.Context, e *domain.CartEntry) (*domain.CartEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = primitive.NewObjectID()
	m.entries[e.ID.Hex()] = *e
	return e, nil
}

func (m *mockCartRepo) ListByEmail(_ context.Context, email string) ([]domain.CartEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CartEntry
	for _, e := range m.entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockCartRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, domain.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return 0, nil
	}
	delete(m.entries, id)
	return 1, nil
}

func (m *mockCartRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := m.entries[id]; ok {
			delete(m.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockCartRepo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type mockUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (m *mockUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = primitive.NewObjectID()
	m.byEmail[u.Email] = u
	m.byID[u.ID.Hex()] = u
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, nil
}

func (m *mockUserRepo) List(context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, domain.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	delete(m.byID, id)
	delete(m.byEmail, u.Email)
	return 1, nil
}

func (m *mockUserRepo) PromoteToAdmin(_ context.Context, id string) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, domain.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	u.Role = domain.RoleAdmin
	return 1, nil
}

func (m *mockUserRepo) IsAdmin(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return false, nil
	}
	return u.IsAdmin(), nil
}

func (m *mockUserRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byEmail)), nil
}

func (m *mockUserRepo) seedAdmin(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &domain.User{ID: primitive.NewObjectID(), Email: email, Role: domain.RoleAdmin}
	m.byEmail[email] = u
	m.byID[u.ID.Hex()] = u
}

type mockReviewRepo struct {
	mu      sync.Mutex
	reviews []domain.Review
}

func (m *mockReviewRepo) List(context.Context) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Review(nil), m.reviews...), nil
}

func (m *mockReviewRepo) Insert(_ context.Context, r *domain.Review) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	m.reviews = append(m.reviews, *r)
	return r, nil
}

type mockPaymentRepo struct {
	mu      sync.Mutex
	records []domain.PaymentRecord
}

func (m *mockPaymentRepo) Insert(_ context.Context, p *domain.PaymentRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.records = append(m.records, *p)
	return p.ID.Hex(), nil
}

func (m *mockPaymentRepo) ListByEmail(_ context.Context, email string) ([]domain.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PaymentRecord
	for _, r := range m.records {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) ListAll(context.Context) ([]domain.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PaymentRecord(nil), m.records...), nil
}

func (m *mockPaymentRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func (m *mockPaymentRepo) TotalRevenue(context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, r := range m.records {
		total += r.Amount
	}
	return total, nil
}

type mockMailer struct{}

func (m *mockMailer) SendOrderConfirmation(string, string, string, float64, string) error {
	return nil
}

type mockPublisher struct{}

func (m *mockPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (m *mockPublisher) Close() error                                       { return nil }

type mockIntents struct {
	secret string
	err    error
}

func (m *mockIntents) CreateIntent(float64, string) (string, error) {
	return m.secret, m.err
}

// ---------- Test setup ----------

type testEnv struct {
	server   *httptest.Server
	menu     *mockMenuRepo
	carts    *mockCartRepo
	users    *mockUserRepo
	payments *mockPaymentRepo
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	menu := newMockMenuRepo()
	carts := newMockCartRepo()
	users := newMockUserRepo()
	payments := &mockPaymentRepo{}
	reviews := &mockReviewRepo{}

	cfg := config.Load()
	cfg.Auth.JWTSecret = testSecret

	orders := service.NewOrderService(payments, carts, menu, users, &mockMailer{}, &mockPublisher{})

	h := handlers.New(menu, carts, users, reviews, payments, orders,
		&mockIntents{secret: "pi_secret_abc"}, &mockPublisher{}, cfg)
	guard := appmw.NewGuard(users, testSecret)

	server := httptest.NewServer(h.Router(guard, nil))
	t.Cleanup(server.Close)

	return &testEnv{server: server, menu: menu, carts: carts, users: users, payments: payments}
}

func token(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.NewAccessToken(email, "", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return tok
}

func doJSON(t *testing.T, method, url, bearer string, body interface{}, wantStatus int) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d", method, url, wantStatus, resp.StatusCode)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ---------- Tests ----------

func TestUsers_CreateTwice_Idempotent(t *testing.T) {
	env := setupTestServer(t)

	body := map[string]string{"name": "Ada", "email": "a@x.com"}

	resp := doJSON(t, http.MethodPost, env.server.URL+"/users", "", body, http.StatusCreated)
	var first map[string]interface{}
	decodeBody(t, resp, &first)

	if first["insertedId"] == nil || first["insertedId"] == "" {
		t.Fatal("First creation should return a non-null insertedId")
	}

	resp = doJSON(t, http.MethodPost, env.server.URL+"/users", "", body, http.StatusOK)
	var second map[string]interface{}
	decodeBody(t, resp, &second)

	if second["message"] != "User Already Exists" {
		t.Fatalf("Expected 'User Already Exists', got %v", second["message"])
	}
	if second["insertedId"] != nil {
		t.Fatalf("Expected null insertedId on duplicate, got %v", second["insertedId"])
	}

	users, _ := env.users.List(context.Background())
	if len(users) != 1 {
		t.Fatalf("Expected exactly one stored account, got %d", len(users))
	}
}

func TestUsers_PromoteThenAdminLookup(t *testing.T) {
	env := setupTestServer(t)
	env.users.seedAdmin("chef@x.com")

	doJSON(t, http.MethodPost, env.server.URL+"/users", "",
		map[string]string{"name": "Ada", "email": "a@x.com"}, http.StatusCreated)

	user, _ := env.users.FindByEmail(context.Background(), "a@x.com")
	if user == nil {
		t.Fatal("User should exist")
	}

	adminToken := token(t, "chef@x.com")
	resp := doJSON(t, http.MethodPatch,
		env.server.URL+"/users/admin/"+user.ID.Hex(), adminToken, nil, http.StatusOK)
	var result map[string]int64
	decodeBody(t, resp, &result)

	if result["modifiedCount"] != 1 {
		t.Fatalf("Expected modifiedCount 1, got %d", result["modifiedCount"])
	}

	isAdmin, err := env.users.IsAdmin(context.Background(), "a@x.com")
	if err != nil || !isAdmin {
		t.Fatalf("Expected promoted user to be admin, got %v/%v", isAdmin, err)
	}

	// The promoted user can now check their own status.
	resp = doJSON(t, http.MethodGet,
		env.server.URL+"/users/admin/a@x.com", token(t, "a@x.com"), nil, http.StatusOK)
	var check map[string]bool
	decodeBody(t, resp, &check)

	if !check["admin"] {
		t.Fatal("Expected admin true after promotion")
	}
}

func TestUsers_CheckAdmin_SelfOnly(t *testing.T) {
	env := setupTestServer(t)

	doJSON(t, http.MethodGet, env.server.URL+"/users/admin/a@x.com", "", nil, http.StatusUnauthorized)
	doJSON(t, http.MethodGet, env.server.URL+"/users/admin/a@x.com", token(t, "b@x.com"), nil, http.StatusForbidden)
}

func TestMenu_AdminGates(t *testing.T) {
	env := setupTestServer(t)
	env.users.seedAdmin("chef@x.com")
	env.users.Insert(context.Background(), &domain.User{Email: "guest@x.com", Role: domain.RoleGuest})

	item := map[string]interface{}{"name": "Soup", "category": "starter", "price": 6.5}

	doJSON(t, http.MethodPost, env.server.URL+"/menu", "", item, http.StatusUnauthorized)
	doJSON(t, http.MethodPost, env.server.URL+"/menu", token(t, "guest@x.com"), item, http.StatusForbidden)

	resp := doJSON(t, http.MethodPost, env.server.URL+"/menu", token(t, "chef@x.com"), item, http.StatusCreated)
	var created domain.MenuItem
	decodeBody(t, resp, &created)

	if created.ID.IsZero() {
		t.Fatal("Expected a store-assigned id")
	}

	// Deletion is admin-gated too.
	doJSON(t, http.MethodDelete, env.server.URL+"/menu/"+created.ID.Hex(), "", nil, http.StatusUnauthorized)
	doJSON(t, http.MethodDelete, env.server.URL+"/menu/"+created.ID.Hex(), token(t, "chef@x.com"), nil, http.StatusOK)
}

func TestMenu_GetAndPatch(t *testing.T) {
	env := setupTestServer(t)
	env.users.seedAdmin("chef@x.com")

	resp := doJSON(t, http.MethodPost, env.server.URL+"/menu", token(t, "chef@x.com"),
		map[string]interface{}{"name": "Soup", "category": "starter", "price": 6.5}, http.StatusCreated)
	var created domain.MenuItem
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, env.server.URL+"/menu/"+created.ID.Hex(), "", nil, http.StatusOK)
	var fetched domain.MenuItem
	decodeBody(t, resp, &fetched)

	if fetched.Name != "Soup" {
		t.Fatalf("Expected Soup, got %s", fetched.Name)
	}

	resp = doJSON(t, http.MethodPatch, env.server.URL+"/menu/"+created.ID.Hex(), "",
		map[string]interface{}{"price": 7.0}, http.StatusOK)
	var updated domain.MenuItem
	decodeBody(t, resp, &updated)

	if updated.Price != 7.0 {
		t.Fatalf("Expected price 7.0, got %v", updated.Price)
	}

	doJSON(t, http.MethodGet, env.server.URL+"/menu/"+primitive.NewObjectID().Hex(), "", nil, http.StatusNotFound)
	doJSON(t, http.MethodGet, env.server.URL+"/menu/not-a-hex", "", nil, http.StatusBadRequest)
}

func TestCarts_Flow(t *testing.T) {
	env := setupTestServer(t)

	entry := map[string]interface{}{
		"email":        "a@x.com",
		"menu_item_id": primitive.NewObjectID().Hex(),
		"name":         "Soup",
		"price":        6.5,
	}

	resp := doJSON(t, http.MethodPost, env.server.URL+"/carts", "", entry, http.StatusCreated)
	var created domain.CartEntry
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, env.server.URL+"/carts?email=a@x.com", "", nil, http.StatusOK)
	var entries []domain.CartEntry
	decodeBody(t, resp, &entries)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 cart entry, got %d", len(entries))
	}

	resp = doJSON(t, http.MethodDelete, env.server.URL+"/carts/"+created.ID.Hex(), "", nil, http.StatusOK)
	var result map[string]int64
	decodeBody(t, resp, &result)

	if result["deletedCount"] != 1 {
		t.Fatalf("Expected deletedCount 1, got %d", result["deletedCount"])
	}
	if env.carts.len() != 0 {
		t.Fatal("Cart should be empty")
	}
}

func TestFinalizeOrder_RequiresAuth(t *testing.T) {
	env := setupTestServer(t)

	payment := map[string]interface{}{
		"email":          "a@x.com",
		"amount":         13.0,
		"currency":       "usd",
		"transaction_id": "txn_1",
	}

	doJSON(t, http.MethodPost, env.server.URL+"/payments", "", payment, http.StatusUnauthorized)

	if len(env.payments.records) != 0 {
		t.Fatal("No payment may be recorded for an unauthenticated request")
	}
}

func TestFinalizeOrder_RecordsAndCleansUp(t *testing.T) {
	env := setupTestServer(t)

	e1, _ := env.carts.Insert(context.Background(), &domain.CartEntry{
		Email: "a@x.com", MenuItemID: primitive.NewObjectID().Hex(), Price: 6.5,
	})
	e2, _ := env.carts.Insert(context.Background(), &domain.CartEntry{
		Email: "a@x.com", MenuItemID: primitive.NewObjectID().Hex(), Price: 6.5,
	})

	payment := map[string]interface{}{
		"email":          "a@x.com",
		"amount":         13.0,
		"currency":       "usd",
		"transaction_id": "txn_1",
		"cart_ids":       []string{e1.ID.Hex(), e2.ID.Hex()},
	}

	resp := doJSON(t, http.MethodPost, env.server.URL+"/payments", token(t, "a@x.com"), payment, http.StatusCreated)
	var result domain.FinalizeResult
	decodeBody(t, resp, &result)

	if result.PaymentID == "" {
		t.Fatal("Expected insertedId in result")
	}
	if result.DeletedCount != 2 {
		t.Fatalf("Expected deletedCount 2, got %d", result.DeletedCount)
	}
	if env.carts.len() != 0 {
		t.Fatal("Cart entries should be removed after finalization")
	}

	resp = doJSON(t, http.MethodGet, env.server.URL+"/payments/a@x.com", "", nil, http.StatusOK)
	var history []domain.PaymentRecord
	decodeBody(t, resp, &history)

	if len(history) != 1 || history[0].TransactionID != "txn_1" {
		t.Fatalf("Expected one payment txn_1 in history, got %+v", history)
	}
}

func TestAdminStats_Gated(t *testing.T) {
	env := setupTestServer(t)
	env.users.seedAdmin("chef@x.com")

	doJSON(t, http.MethodGet, env.server.URL+"/admin-stats", "", nil, http.StatusUnauthorized)
	doJSON(t, http.MethodGet, env.server.URL+"/admin-stats", token(t, "nobody@x.com"), nil, http.StatusForbidden)

	env.payments.Insert(context.Background(), &domain.PaymentRecord{Email: "a@x.com", Amount: 12.5, TransactionID: "t1"})
	env.payments.Insert(context.Background(), &domain.PaymentRecord{Email: "b@x.com", Amount: 7.5, TransactionID: "t2"})

	resp := doJSON(t, http.MethodGet, env.server.URL+"/admin-stats", token(t, "chef@x.com"), nil, http.StatusOK)
	var stats domain.AdminStats
	decodeBody(t, resp, &stats)

	if stats.Orders != 2 {
		t.Fatalf("Expected 2 orders, got %d", stats.Orders)
	}
	if stats.Revenue != 20 {
		t.Fatalf("Expected revenue 20, got %v", stats.Revenue)
	}
}

func TestOrderStats_Public(t *testing.T) {
	env := setupTestServer(t)
	env.users.seedAdmin("chef@x.com")

	mk := func(name, category string, price float64) domain.MenuItem {
		item, err := env.menu.Create(context.Background(), &domain.CreateMenuItemRequest{
			Name: name, Category: category, Price: price,
		})
		if err != nil {
			t.Fatalf("create menu item: %v", err)
		}
		return *item
	}
	a := mk("Soup", "A", 10)
	b := mk("Steak", "B", 20)

	env.payments.Insert(context.Background(), &domain.PaymentRecord{Email: "x@x.com", Amount: 10, TransactionID: "t1", MenuItemIDs: []string{a.ID.Hex()}})
	env.payments.Insert(context.Background(), &domain.PaymentRecord{Email: "y@x.com", Amount: 10, TransactionID: "t2", MenuItemIDs: []string{a.ID.Hex()}})
	env.payments.Insert(context.Background(), &domain.PaymentRecord{Email: "z@x.com", Amount: 20, TransactionID: "t3", MenuItemIDs: []string{b.ID.Hex()}})

	resp := doJSON(t, http.MethodGet, env.server.URL+"/order-stats", "", nil, http.StatusOK)
	var stats []domain.CategoryStat
	decodeBody(t, resp, &stats)

	byCategory := make(map[string]domain.CategoryStat)
	for _, s := range stats {
		byCategory[s.Category] = s
	}

	if s := byCategory["A"]; s.Quantity != 2 || s.Revenue != 20 {
		t.Fatalf("Category A: expected 2/20, got %d/%v", s.Quantity, s.Revenue)
	}
	if s := byCategory["B"]; s.Quantity != 1 || s.Revenue != 20 {
		t.Fatalf("Category B: expected 1/20, got %d/%v", s.Quantity, s.Revenue)
	}
}

func TestIssueToken(t *testing.T) {
	env := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, env.server.URL+"/jwt", "",
		map[string]string{"email": "a@x.com"}, http.StatusOK)
	var body map[string]string
	decodeBody(t, resp, &body)

	claims, err := auth.Parse(body["token"], testSecret)
	if err != nil {
		t.Fatalf("Issued token must parse: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("Expected email a@x.com in claims, got %s", claims.Email)
	}

	doJSON(t, http.MethodPost, env.server.URL+"/jwt", "", map[string]string{}, http.StatusBadRequest)
}

func TestCreatePaymentIntent(t *testing.T) {
	env := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, env.server.URL+"/create-payment-intent", "",
		map[string]float64{"price": 13.5}, http.StatusOK)
	var body map[string]string
	decodeBody(t, resp, &body)

	if body["clientSecret"] != "pi_secret_abc" {
		t.Fatalf("Expected clientSecret pi_secret_abc, got %s", body["clientSecret"])
	}

	doJSON(t, http.MethodPost, env.server.URL+"/create-payment-intent", "",
		map[string]float64{"price": 0}, http.StatusBadRequest)
}

func TestReviews(t *testing.T) {
	env := setupTestServer(t)

	doJSON(t, http.MethodPost, env.server.URL+"/reviews", "",
		map[string]interface{}{"name": "Ada", "details": "Great soup", "rating": 5}, http.StatusCreated)

	resp := doJSON(t, http.MethodGet, env.server.URL+"/reviews", "", nil, http.StatusOK)
	var reviews []domain.Review
	decodeBody(t, resp, &reviews)

	if len(reviews) != 1 || reviews[0].Details != "Great soup" {
		t.Fatalf("Expected one review, got %+v", reviews)
	}
}

func TestRoot_Banner(t *testing.T) {
	env := setupTestServer(t)

	resp, err := http.Get(env.server.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
}
