package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/middleware"
	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExpenseUsecase provides canned responses for expense handler tests.
type stubExpenseUsecase struct {
	expense  *entity.Expense
	expenses []*entity.Expense
	err      error
}

func (s *stubExpenseUsecase) Create(ctx context.Context, ownerID int64, input *usecase.CreateExpenseInput) (*entity.Expense, error) {
	return s.expense, s.err
}

func (s *stubExpenseUsecase) List(ctx context.Context, ownerID int64) ([]*entity.Expense, error) {
	return s.expenses, s.err
}

func (s *stubExpenseUsecase) Update(ctx context.Context, ownerID, expenseID int64, input *usecase.UpdateExpenseInput) (*entity.Expense, error) {
	return s.expense, s.err
}

func (s *stubExpenseUsecase) Delete(ctx context.Context, ownerID, expenseID int64) error {
	return s.err
}

func setAuthenticatedUser(c echo.Context) {
	c.Set(middleware.ContextKeyCurrentUser, &entity.User{ID: 9, Email: "hasaan@example.com"})
}

func TestExpenseHandler_Create(t *testing.T) {
	uc := &stubExpenseUsecase{
		expense: &entity.Expense{
			ID:       3,
			UserID:   9,
			Amount:   42.5,
			Category: "food",
			Date:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
	}
	h := NewExpenseHandler(uc, testLogger())

	body := `{"amount":42.5,"description":"Groceries","category":"food","date":"2026-08-30"}`
	c, rec := newHandlerTestContext(http.MethodPost, "/expenses/create", echo.MIMEApplicationJSON, body)
	setAuthenticatedUser(c)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)
}

func TestExpenseHandler_Create_MissingAmount(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseUsecase{}, testLogger())

	body := `{"description":"Groceries","category":"food"}`
	c, _ := newHandlerTestContext(http.MethodPost, "/expenses/create", echo.MIMEApplicationJSON, body)
	setAuthenticatedUser(c)

	err := h.Create(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestExpenseHandler_List(t *testing.T) {
	uc := &stubExpenseUsecase{
		expenses: []*entity.Expense{
			{ID: 2, UserID: 9, Amount: 10, Category: "food"},
			{ID: 1, UserID: 9, Amount: 5, Category: "travel"},
		},
	}
	h := NewExpenseHandler(uc, testLogger())

	c, rec := newHandlerTestContext(http.MethodGet, "/expenses/get_expenses", "", "")
	setAuthenticatedUser(c)

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)
	assert.Contains(t, rec.Body.String(), `"id":1`)
}

func TestExpenseHandler_Update_NotOwner(t *testing.T) {
	uc := &stubExpenseUsecase{err: errors.Wrap(domainerrors.ErrExpenseNotFound, "expense not found")}
	h := NewExpenseHandler(uc, testLogger())

	body := `{"amount":25,"description":"New","category":"food"}`
	c, _ := newHandlerTestContext(http.MethodPut, "/expenses/update/3", echo.MIMEApplicationJSON, body)
	setAuthenticatedUser(c)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Update(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExpenseNotFound))
}

func TestExpenseHandler_Delete(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseUsecase{}, testLogger())

	c, rec := newHandlerTestContext(http.MethodDelete, "/expenses/delete/3", "", "")
	setAuthenticatedUser(c)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Expense deleted successfully")
}

func TestExpenseHandler_Delete_InvalidID(t *testing.T) {
	h := NewExpenseHandler(&stubExpenseUsecase{}, testLogger())

	c, rec := newHandlerTestContext(http.MethodDelete, "/expenses/delete/abc", "", "")
	setAuthenticatedUser(c)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
