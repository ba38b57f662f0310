// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
)

// ErrExpenseNotFound is returned when an expense does not exist or does not
// belong to the requesting owner. The two cases are deliberately
// indistinguishable at this layer.
var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseRepository defines owner-scoped operations for expense persistence.
// Every lookup and mutation filters on both the expense id and the owner id
// in the same query, so ownership violations surface as not-found.
type ExpenseRepository interface {
	// Create persists a new expense entity to the storage.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByIDAndOwner retrieves an expense only if it belongs to ownerID.
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*entity.Expense, error)

	// ListByOwner retrieves all expenses belonging to ownerID,
	// most recent first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Expense, error)

	// Update modifies an expense only if it belongs to ownerID.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense only if it belongs to ownerID.
	Delete(ctx context.Context, id, ownerID int64) error
}
