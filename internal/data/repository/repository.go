package repository

import (
	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Movie   MovieRepository
	Booking BookingRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}

// WithTx rebinds every repository onto the given transaction. The caller
// owns commit/rollback.
func (r *Repository) WithTx(tx pgx.Tx) *Repository {
	return &Repository{
		User:    r.User.WithQuerier(tx),
		Movie:   r.Movie.WithQuerier(tx),
		Booking: r.Booking.WithQuerier(tx),
		Session: r.Session,
	}
}
