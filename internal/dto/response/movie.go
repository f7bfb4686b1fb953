package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PosterURL   string    `json:"poster_url"`
	ReleaseDate string    `json:"release_date"`
	Featured    bool      `json:"featured"`
	Actors      []string  `json:"actors"`
	Bookings    []string  `json:"bookings"`
	CreatedAt   time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	bookings := make([]string, len(movie.Bookings))
	for i, id := range movie.Bookings {
		bookings[i] = id.String()
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		PosterURL:   movie.PosterURL,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Featured:    movie.Featured,
		Actors:      movie.Actors,
		Bookings:    bookings,
		CreatedAt:   movie.CreatedAt,
	}
}
