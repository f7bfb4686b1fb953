package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Booking lifecycle
	r.Post("/api/booking", bookingHandler.CreateBooking)
	r.Get("/api/booking/{id}", bookingHandler.GetBookingByID)
	r.Delete("/api/booking/{id}", bookingHandler.DeleteBooking)

	// Booking history of the logged-in user
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/user/bookings", bookingHandler.GetUserBookings)
}
