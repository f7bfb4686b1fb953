package entity

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Description string    `db:"description"`
	PosterURL   string    `db:"poster_url"`
	ReleaseDate time.Time `db:"release_date"`
	Featured    bool      `db:"featured"`
	Actors      []string  `db:"actors"`

	// Bookings is the back-reference index, maintained the same way as
	// User.Bookings.
	Bookings []uuid.UUID `db:"bookings"`
}
