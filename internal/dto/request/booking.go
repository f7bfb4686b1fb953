package request

type CreateBookingRequest struct {
	Movie      string `json:"movie" validate:"required,uuid4"`
	User       string `json:"user" validate:"required,uuid4"`
	SeatNumber string `json:"seat_number" validate:"required,min=1,max=10"`
	Date       string `json:"date" validate:"required"`
}
