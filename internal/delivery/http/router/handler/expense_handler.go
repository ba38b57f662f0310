package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/response"
	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	"github.com/hasaanhameed/TrackCraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ExpenseHandler holds dependencies for expense-related handlers.
type ExpenseHandler struct {
	uc     usecase.ExpenseUsecase
	logger *slog.Logger
}

// NewExpenseHandler is the constructor for ExpenseHandler, injected by Fx.
func NewExpenseHandler(uc usecase.ExpenseUsecase, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		uc:     uc,
		logger: logger,
	}
}

// expenseRequest is the payload for creating or updating an expense.
type expenseRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Date        string  `json:"date"`
}

// expenseResponse is the outward representation of an expense.
type expenseResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func toExpenseResponse(expense *entity.Expense) *expenseResponse {
	return &expenseResponse{
		ID:          expense.ID,
		UserID:      expense.UserID,
		Amount:      expense.Amount,
		Description: expense.Description,
		Category:    expense.Category,
		Date:        expense.Date.Format(time.RFC3339),
	}
}

func toExpenseResponses(expenses []*entity.Expense) []*expenseResponse {
	out := make([]*expenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		out = append(out, toExpenseResponse(expense))
	}

	return out
}

// Create handles the request to record a new expense.
func (h *ExpenseHandler) Create(c echo.Context) error {
	owner, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Could not validate credentials")
	}

	var input expenseRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expense input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	expense, err := h.uc.Create(c.Request().Context(), owner.ID, &usecase.CreateExpenseInput{
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Date:        input.Date,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toExpenseResponse(expense), "Expense created successfully")
}

// List handles the request to list the caller's expenses.
func (h *ExpenseHandler) List(c echo.Context) error {
	owner, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Could not validate credentials")
	}

	expenses, err := h.uc.List(c.Request().Context(), owner.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toExpenseResponses(expenses), "Expenses retrieved successfully")
}

// Update handles the request to modify an expense.
func (h *ExpenseHandler) Update(c echo.Context) error {
	owner, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Could not validate credentials")
	}

	expenseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid expense ID")
	}

	var input expenseRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expense input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	expense, err := h.uc.Update(c.Request().Context(), owner.ID, expenseID, &usecase.UpdateExpenseInput{
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Date:        input.Date,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toExpenseResponse(expense), "Expense updated successfully")
}

// Delete handles the request to remove an expense.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	owner, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Could not validate credentials")
	}

	expenseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid expense ID")
	}

	if err := h.uc.Delete(c.Request().Context(), owner.ID, expenseID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Expense deleted successfully"}, "Expense deleted successfully")
}
