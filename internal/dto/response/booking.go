package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie"`
	UserID     string    `json:"user"`
	MovieTitle string    `json:"movie_title,omitempty"`
	SeatNumber string    `json:"seat_number"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, movieTitle string) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		MovieID:    booking.MovieID.String(),
		UserID:     booking.UserID.String(),
		MovieTitle: movieTitle,
		SeatNumber: booking.SeatNumber,
		Date:       booking.Date.Format("2006-01-02"),
		CreatedAt:  booking.CreatedAt,
	}
}
