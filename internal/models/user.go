package models

import (
	"time"

	"github.com/google/uuid"
)

// User is both the auth identity and the profile record. The profile fields
// are created empty on registration and filled in via partial updates.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	Password     string    `db:"password"`
	MonthlyLimit float64   `db:"monthly_limit"`
	Bio          string    `db:"bio"`
	Phone        string    `db:"phone"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
