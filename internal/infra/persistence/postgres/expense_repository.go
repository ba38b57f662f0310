// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/domain/repository"
	"github.com/hasaanhameed/TrackCraft/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// expenseRepository implements the domain.ExpenseRepository interface.
// Every lookup and mutation filters on (id, user_id) in the same query, so
// an ownership mismatch is indistinguishable from a missing row.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository is the constructor for expenseRepository.
func NewExpenseRepository(db *gorm.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create persists a new expense entity to the database.
func (repo *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseM := fromExpenseDomain(expense)

	if err := repo.db.WithContext(ctx).Create(expenseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrExpenseCreationFailed.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrExpenseCreationFailed.WrapMessage("missing required expense information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create expense")
	}

	// Update the entity with generated values
	expense.ID = expenseM.ID
	expense.CreatedAt = expenseM.CreatedAt
	expense.UpdatedAt = expenseM.UpdatedAt

	return nil
}

// FindByIDAndOwner retrieves an expense only if it belongs to ownerID.
func (repo *expenseRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*entity.Expense, error) {
	var expenseM model.ExpenseModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&expenseM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExpenseNotFound
		}

		return nil, errors.Wrap(err, "failed to find expense")
	}

	return toExpenseDomain(&expenseM), nil
}

// ListByOwner retrieves all expenses belonging to ownerID, most recent first.
func (repo *expenseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date DESC, id DESC").
		Find(&expenseModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list expenses")
	}

	expenses := make([]*entity.Expense, 0, len(expenseModels))
	for i := range expenseModels {
		expenses = append(expenses, toExpenseDomain(&expenseModels[i]))
	}

	return expenses, nil
}

// Update modifies an expense only if it belongs to its owner.
func (repo *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]any{
			"amount":      expense.Amount,
			"description": expense.Description,
			"category":    expense.Category,
			"date":        expense.Date,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update expense")
	}

	// If no rows were affected, the expense does not exist or belongs to
	// someone else.
	if result.RowsAffected == 0 {
		return repository.ErrExpenseNotFound
	}

	return nil
}

// Delete removes an expense only if it belongs to ownerID.
func (repo *expenseRepository) Delete(ctx context.Context, id, ownerID int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.ExpenseModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expense")
	}

	if result.RowsAffected == 0 {
		return repository.ErrExpenseNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toExpenseDomain converts a GORM ExpenseModel to a domain Expense entity.
func toExpenseDomain(data *model.ExpenseModel) *entity.Expense {
	if data == nil {
		return nil
	}

	return &entity.Expense{
		ID:          data.ID,
		UserID:      data.UserID,
		Amount:      data.Amount,
		Description: data.Description,
		Category:    data.Category,
		Date:        data.Date,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromExpenseDomain converts a domain Expense entity to a GORM ExpenseModel.
func fromExpenseDomain(data *entity.Expense) *model.ExpenseModel {
	if data == nil {
		return nil
	}

	return &model.ExpenseModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Amount:      data.Amount,
		Description: data.Description,
		Category:    data.Category,
		Date:        data.Date,
	}
}
