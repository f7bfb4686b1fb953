package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	Bookings  []string  `json:"bookings"`
	CreatedAt time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	bookings := make([]string, len(user.Bookings))
	for i, id := range user.Bookings {
		bookings[i] = id.String()
	}

	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		Bookings:  bookings,
		CreatedAt: user.CreatedAt,
	}
}
