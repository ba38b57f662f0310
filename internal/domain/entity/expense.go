// Package entity contains the core business objects of the project.
package entity

import "time"

// Expense is a single spending record owned by exactly one User.
// All reads and mutations of an Expense are scoped to its owner.
type Expense struct {
	ID          int64     // Auto-incremented primary key.
	UserID      int64     // Foreign key linking the expense to its owning User.
	Amount      float64   // Positive spending amount.
	Description string    // Non-empty free-text description.
	Category    string    // Spending category label.
	Date        time.Time // The date the expense occurred.
	CreatedAt   time.Time // Timestamp of when this record was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this record.
}
