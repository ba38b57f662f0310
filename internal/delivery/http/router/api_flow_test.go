package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/hasaanhameed/TrackCraft/config"
	deliverymiddleware "github.com/hasaanhameed/TrackCraft/internal/delivery/http/middleware"
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/router/handler"
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/validator"
	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/domain/repository"
	"github.com/hasaanhameed/TrackCraft/internal/infra/auth"
	"github.com/hasaanhameed/TrackCraft/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore backs the in-memory repositories so the full HTTP chain can be
// exercised against a single shared state, the way the real server shares one
// database.
type memoryStore struct {
	mu            sync.Mutex
	users         map[int64]*entity.User
	expenses      map[int64]*entity.Expense
	nextUserID    int64
	nextExpenseID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[int64]*entity.User),
		expenses: make(map[int64]*entity.Expense),
	}
}

type memoryUserRepository struct {
	store *memoryStore
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	copied := *user

	return &copied, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	copied := *user
	r.store.users[user.ID] = &copied

	return nil
}

func (r *memoryUserRepository) UpdateMonthlyLimit(_ context.Context, id int64, limit float64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user.MonthlyLimit = &limit
	copied := *user

	return &copied, nil
}

type memoryExpenseRepository struct {
	store *memoryStore
}

func (r *memoryExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextExpenseID++
	expense.ID = r.store.nextExpenseID
	copied := *expense
	r.store.expenses[expense.ID] = &copied

	return nil
}

func (r *memoryExpenseRepository) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*entity.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	expense, ok := r.store.expenses[id]
	if !ok || expense.UserID != ownerID {
		return nil, repository.ErrExpenseNotFound
	}

	copied := *expense

	return &copied, nil
}

func (r *memoryExpenseRepository) ListByOwner(_ context.Context, ownerID int64) ([]*entity.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owned := make([]*entity.Expense, 0)
	for _, expense := range r.store.expenses {
		if expense.UserID == ownerID {
			copied := *expense
			owned = append(owned, &copied)
		}
	}

	// Most recent first, matching the persistent store's ordering.
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].Date.Equal(owned[j].Date) {
			return owned[i].Date.After(owned[j].Date)
		}

		return owned[i].ID > owned[j].ID
	})

	return owned, nil
}

func (r *memoryExpenseRepository) Update(_ context.Context, expense *entity.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.expenses[expense.ID]
	if !ok || existing.UserID != expense.UserID {
		return repository.ErrExpenseNotFound
	}

	copied := *expense
	r.store.expenses[expense.ID] = &copied

	return nil
}

func (r *memoryExpenseRepository) Delete(_ context.Context, id, ownerID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.expenses[id]
	if !ok || existing.UserID != ownerID {
		return repository.ErrExpenseNotFound
	}

	delete(r.store.expenses, id)

	return nil
}

// memoryTxManager runs the unit of work against the shared store without real
// transaction semantics, which is sufficient for single-request tests.
type memoryTxManager struct {
	factory *memoryRepositoryFactory
}

func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type memoryRepositoryFactory struct {
	userRepo    repository.UserRepository
	expenseRepo repository.ExpenseRepository
}

func (f *memoryRepositoryFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *memoryRepositoryFactory) ExpenseRepo() repository.ExpenseRepository {
	return f.expenseRepo
}

// newAPITestServer wires the real router, handlers, auth middleware, JWT
// service and bcrypt hasher over in-memory repositories.
func newAPITestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "api-flow-test-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)

	store := newMemoryStore()
	userRepo := &memoryUserRepository{store: store}
	expenseRepo := &memoryExpenseRepository{store: store}
	txManager := &memoryTxManager{factory: &memoryRepositoryFactory{
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
	}}

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Logger:    logger,
	})
	expenseUC := impl.NewExpenseService(impl.ExpenseServiceParams{
		TxManager:   txManager,
		ExpenseRepo: expenseRepo,
		Logger:      logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliverymiddleware.NewErrorMiddleware(logger).HandleHTTPError

	NewRouter(RouterParams{
		UserHandler:    handler.NewUserHandler(userUC, profileUC, logger),
		ExpenseHandler: handler.NewExpenseHandler(expenseUC, logger),
		AuthMiddleware: deliverymiddleware.NewAuthMiddleware(tokenSvc, userRepo),
	}).RegisterRoutes(e)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return server
}

// apiEnvelope mirrors the unified response body.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func doJSON(t *testing.T, client *http.Client, method, target, token, body string) (*http.Response, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp, envelope
}

func signupAndLogin(t *testing.T, server *httptest.Server, name, email, password string) (int64, string) {
	t.Helper()

	client := server.Client()

	signupBody := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	resp, envelope := doJSON(t, client, http.MethodPost, server.URL+"/users/signup", "", signupBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	loginResp, err := client.Post(server.URL+"/login", echo.MIMEApplicationForm, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var loginEnvelope apiEnvelope
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&loginEnvelope))

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(loginEnvelope.Data, &token))
	require.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)

	return created.ID, token.AccessToken
}

// TestAPI_ExpenseLifecycle walks the full chain through the HTTP surface:
// register, exchange credentials for a token, create an expense, read it back,
// delete it, and observe the list is empty again.
func TestAPI_ExpenseLifecycle(t *testing.T) {
	server := newAPITestServer(t)
	client := server.Client()

	_, token := signupAndLogin(t, server, "Hasaan", "hasaan@example.com", "p1")

	type expenseItem struct {
		ID          int64   `json:"id"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
	}

	// A fresh account starts with no expenses.
	resp, envelope := doJSON(t, client, http.MethodGet, server.URL+"/expenses/get_expenses", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []expenseItem
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	assert.Empty(t, listed)

	createBody := `{"amount":12.5,"description":"Lunch","category":"food","date":"2026-08-30"}`
	resp, envelope = doJSON(t, client, http.MethodPost, server.URL+"/expenses/create", token, createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created expenseItem
	require.NoError(t, json.Unmarshal(envelope.Data, &created))
	require.NotZero(t, created.ID)

	// The list now contains exactly the created expense.
	resp, envelope = doJSON(t, client, http.MethodGet, server.URL+"/expenses/get_expenses", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, 12.5, listed[0].Amount)
	assert.Equal(t, "Lunch", listed[0].Description)
	assert.Equal(t, "food", listed[0].Category)

	resp, envelope = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/expenses/delete/%d", server.URL, created.ID), token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)

	// After deletion the list is empty again.
	resp, envelope = doJSON(t, client, http.MethodGet, server.URL+"/expenses/get_expenses", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	assert.Empty(t, listed)
}

// TestAPI_ExpenseOwnership verifies over the wire that one user can neither
// see nor mutate another user's expenses, and that the failures are
// indistinguishable from a missing expense.
func TestAPI_ExpenseOwnership(t *testing.T) {
	server := newAPITestServer(t)
	client := server.Client()

	_, ownerToken := signupAndLogin(t, server, "Owner", "owner@example.com", "p1")
	_, otherToken := signupAndLogin(t, server, "Other", "other@example.com", "p2")

	createBody := `{"amount":40,"description":"Concert","category":"fun","date":"2026-08-15"}`
	resp, envelope := doJSON(t, client, http.MethodPost, server.URL+"/expenses/create", ownerToken, createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))

	// The other user's list does not leak the expense.
	resp, envelope = doJSON(t, client, http.MethodGet, server.URL+"/expenses/get_expenses", otherToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	assert.Empty(t, listed)

	// Updating someone else's expense reads as not-found, never forbidden.
	updateBody := `{"amount":1,"description":"Hijacked","category":"fun"}`
	resp, envelope = doJSON(t, client, http.MethodPut, fmt.Sprintf("%s/expenses/update/%d", server.URL, created.ID), otherToken, updateBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "EXPENSE_NOT_FOUND", envelope.Error.Code)

	resp, _ = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/expenses/delete/%d", server.URL, created.ID), otherToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still sees the expense untouched.
	resp, envelope = doJSON(t, client, http.MethodGet, server.URL+"/expenses/get_expenses", ownerToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var owned []struct {
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &owned))
	require.Len(t, owned, 1)
	assert.Equal(t, "Concert", owned[0].Description)
}

// TestAPI_Unauthenticated verifies the bearer challenge on the protected
// surface.
func TestAPI_Unauthenticated(t *testing.T) {
	server := newAPITestServer(t)
	client := server.Client()

	resp, envelope := doJSON(t, client, http.MethodGet, server.URL+"/expenses/get_expenses", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

// TestAPI_DuplicateSignup verifies the uniqueness of emails end to end.
func TestAPI_DuplicateSignup(t *testing.T) {
	server := newAPITestServer(t)
	client := server.Client()

	signupAndLogin(t, server, "Hasaan", "hasaan@example.com", "p1")

	body := `{"name":"Imposter","email":"hasaan@example.com","password":"p2"}`
	resp, envelope := doJSON(t, client, http.MethodPost, server.URL+"/users/signup", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "USER_ALREADY_EXISTS", envelope.Error.Code)
}
