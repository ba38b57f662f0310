package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The password column stores the bcrypt
// digest, never plaintext.
type UserModel struct {
	ID           int64    `gorm:"primaryKey;autoIncrement"`
	Name         string   `gorm:"type:varchar(100)"`
	Email        string   `gorm:"type:varchar(255);unique;not null"`
	Password     string   `gorm:"type:varchar(255);not null"`
	MonthlyLimit *float64 `gorm:"type:double precision"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Expenses []ExpenseModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
