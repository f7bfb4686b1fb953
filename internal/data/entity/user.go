package entity

import (
	"github.com/google/uuid"
)

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	IsAdmin      bool   `db:"is_admin"`

	// Bookings is a derived back-reference index over the bookings table.
	// Only the booking service may mutate it.
	Bookings []uuid.UUID `db:"bookings"`
}
