package model

import (
	"time"
)

// ExpenseModel mirrors the 'expenses' table. UserID references users.id and
// carries the ownership constraint every query filters on.
type ExpenseModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	UserID      int64   `gorm:"not null;index"`
	Amount      float64 `gorm:"not null"`
	Description string  `gorm:"type:text;not null"`
	Category    string  `gorm:"type:varchar(100);not null"`
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExpenseModel) TableName() string {
	return "expenses"
}
