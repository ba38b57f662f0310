package usecase

import (
	"context"

	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
)

// --- Input DTOs ---

// CreateExpenseInput defines the data required to record a new expense.
// Date is accepted as either "2006-01-02" or RFC 3339; an empty date
// defaults to the current time.
type CreateExpenseInput struct {
	Amount      float64
	Description string
	Category    string
	Date        string
}

// UpdateExpenseInput defines the data required to modify an existing expense.
type UpdateExpenseInput struct {
	Amount      float64
	Description string
	Category    string
	Date        string
}

// ExpenseUsecase defines the interface for expense-related business operations.
// All operations act on behalf of ownerID; expenses belonging to other users
// are reported as not found rather than forbidden.
type ExpenseUsecase interface {
	Create(ctx context.Context, ownerID int64, input *CreateExpenseInput) (*entity.Expense, error)
	List(ctx context.Context, ownerID int64) ([]*entity.Expense, error)
	Update(ctx context.Context, ownerID, expenseID int64, input *UpdateExpenseInput) (*entity.Expense, error)
	Delete(ctx context.Context, ownerID, expenseID int64) error
}
