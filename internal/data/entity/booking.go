package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the sole source of truth for the user/movie relationship.
// The owners' Bookings lists are derived from it, never the other way.
type Booking struct {
	BaseSimple
	MovieID    uuid.UUID `db:"movie_id"`
	UserID     uuid.UUID `db:"user_id"`
	SeatNumber string    `db:"seat_number"`
	Date       time.Time `db:"date"`
}
