// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity record of the system. Email doubles as the
// login identifier and is globally unique.
type User struct {
	ID           int64     // Auto-incremented primary key.
	Name         string    // The user's display name.
	Email        string    // The user's unique email, used as the token subject.
	PasswordHash string    // bcrypt digest of the user's password. Never serialized.
	MonthlyLimit *float64  // Optional monthly spending limit. Nil when unset.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
