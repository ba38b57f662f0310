package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "github.com/hasaanhameed/TrackCraft/internal/delivery/context"
	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/domain/repository"
	"github.com/hasaanhameed/TrackCraft/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// expenseService implements the ExpenseUsecase interface.
type expenseService struct {
	txManager   repository.TransactionManager
	expenseRepo repository.ExpenseRepository
	logger      *slog.Logger
}

// ExpenseServiceParams holds dependencies for ExpenseService, injected by Fx.
type ExpenseServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ExpenseRepo repository.ExpenseRepository
	Logger      *slog.Logger
}

// NewExpenseService is the constructor for expenseService.
func NewExpenseService(params ExpenseServiceParams) usecase.ExpenseUsecase {
	return &expenseService{
		txManager:   params.TxManager,
		expenseRepo: params.ExpenseRepo,
		logger:      params.Logger,
	}
}

func (srv *expenseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// parseExpenseDate accepts "2006-01-02" or RFC 3339. An empty value defaults
// to the current time.
func parseExpenseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}

	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(domainerrors.ErrValidationFailed.WrapMessage("invalid date format, expected YYYY-MM-DD or RFC 3339"), "failed to parse expense date")
	}

	return parsed, nil
}

// Create records a new expense for ownerID.
func (srv *expenseService) Create(ctx context.Context, ownerID int64, input *usecase.CreateExpenseInput) (*entity.Expense, error) {
	srv.log(ctx).Info("Creating expense", slog.Int64("userID", ownerID), slog.String("category", input.Category))

	date, err := parseExpenseDate(input.Date)
	if err != nil {
		srv.log(ctx).Warn("Expense date validation failed", slog.Int64("userID", ownerID), slog.Any("error", err))

		return nil, err
	}

	newExpense := &entity.Expense{
		UserID:      ownerID,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Date:        date,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		expenseRepo := repoFactory.ExpenseRepo()

		if err := expenseRepo.Create(ctx, newExpense); err != nil {
			return errors.Wrap(err, "failed to create expense")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute expense creation transaction", slog.Int64("userID", ownerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Expense created", slog.Int64("expenseID", newExpense.ID))

	return newExpense, nil
}

// List returns all expenses belonging to ownerID.
func (srv *expenseService) List(ctx context.Context, ownerID int64) ([]*entity.Expense, error) {
	srv.log(ctx).Debug("Listing expenses", slog.Int64("userID", ownerID))

	// Single query operation - use direct repository instance
	expenses, err := srv.expenseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to list expenses", slog.Int64("userID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list expenses")
	}

	return expenses, nil
}

// Update modifies an existing expense owned by ownerID. An expense belonging
// to another user is reported as not found, never as forbidden, so the
// response does not reveal whether the ID exists.
func (srv *expenseService) Update(ctx context.Context, ownerID, expenseID int64, input *usecase.UpdateExpenseInput) (*entity.Expense, error) {
	srv.log(ctx).Info("Updating expense", slog.Int64("userID", ownerID), slog.Int64("expenseID", expenseID))

	date, err := parseExpenseDate(input.Date)
	if err != nil {
		srv.log(ctx).Warn("Expense date validation failed", slog.Int64("userID", ownerID), slog.Any("error", err))

		return nil, err
	}

	var updatedExpense *entity.Expense
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		expenseRepo := repoFactory.ExpenseRepo()

		expense, findErr := expenseRepo.FindByIDAndOwner(ctx, expenseID, ownerID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrExpenseNotFound) {
				return errors.Wrap(domainerrors.ErrExpenseNotFound, "expense not found")
			}

			return errors.Wrap(findErr, "failed to find expense for update")
		}

		expense.Amount = input.Amount
		expense.Description = input.Description
		expense.Category = input.Category
		expense.Date = date

		if updateErr := expenseRepo.Update(ctx, expense); updateErr != nil {
			if errors.Is(updateErr, repository.ErrExpenseNotFound) {
				return errors.Wrap(domainerrors.ErrExpenseNotFound, "expense not found")
			}

			return errors.Wrap(updateErr, "failed to update expense")
		}

		updatedExpense = expense

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Expense update failed", slog.Int64("userID", ownerID), slog.Int64("expenseID", expenseID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Expense updated", slog.Int64("expenseID", expenseID))

	return updatedExpense, nil
}

// Delete removes an expense owned by ownerID.
func (srv *expenseService) Delete(ctx context.Context, ownerID, expenseID int64) error {
	srv.log(ctx).Info("Deleting expense", slog.Int64("userID", ownerID), slog.Int64("expenseID", expenseID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		expenseRepo := repoFactory.ExpenseRepo()

		if deleteErr := expenseRepo.Delete(ctx, expenseID, ownerID); deleteErr != nil {
			if errors.Is(deleteErr, repository.ErrExpenseNotFound) {
				return errors.Wrap(domainerrors.ErrExpenseNotFound, "expense not found")
			}

			return errors.Wrap(deleteErr, "failed to delete expense")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Expense deletion failed", slog.Int64("userID", ownerID), slog.Int64("expenseID", expenseID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Expense deleted", slog.Int64("expenseID", expenseID))

	return nil
}
