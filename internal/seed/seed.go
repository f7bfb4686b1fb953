package seed

import (
	"context"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedMovie struct {
	title       string
	description string
	releaseDate string
	posterURL   string
	featured    bool
	actors      []string
}

var initialMovies = []seedMovie{
	{
		title:       "The Shawshank Redemption",
		description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		releaseDate: "1994-09-22",
		posterURL:   "https://m.media-amazon.com/images/I/51NiGlapXlL._AC_.jpg",
		featured:    true,
		actors:      []string{"Tim Robbins", "Morgan Freeman", "Bob Gunton"},
	},
	{
		title:       "The Godfather",
		description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		releaseDate: "1972-03-24",
		posterURL:   "https://image.tmdb.org/t/p/original/3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
		featured:    true,
		actors:      []string{"Marlon Brando", "Al Pacino", "James Caan"},
	},
	{
		title:       "Inception",
		description: "A thief who enters the dreams of others to steal their secrets is given a chance to have his criminal history erased.",
		releaseDate: "2010-07-16",
		posterURL:   "https://www.aceshowbiz.com/images/still/inception_poster19.jpg",
		featured:    true,
		actors:      []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"},
	},
	{
		title:       "Interstellar",
		description: "A team of explorers travels through a wormhole in space in an attempt to ensure humanity's survival.",
		releaseDate: "2014-11-07",
		posterURL:   "https://image.tmdb.org/t/p/original/6ricSDD83BClJsFdGB6x7cM0MFQ.jpg",
		featured:    true,
		actors:      []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
	},
}

// Movies inserts the starter catalog, skipping titles that already exist.
// Errors are logged per movie so one bad row cannot block startup.
func Movies(ctx context.Context, repo repository.MovieRepository, log *zap.Logger) {
	log = log.With(zap.String("component", "seed"))

	for _, m := range initialMovies {
		existing, err := repo.FindByTitle(ctx, m.title)
		if err != nil {
			log.Error("Failed to check movie", zap.Error(err), zap.String("title", m.title))
			continue
		}
		if existing != nil {
			log.Debug("Movie already exists, skipping", zap.String("title", m.title))
			continue
		}

		releaseDate, err := time.Parse("2006-01-02", m.releaseDate)
		if err != nil {
			log.Error("Bad seed release date", zap.Error(err), zap.String("title", m.title))
			continue
		}

		now := time.Now()
		movie := &entity.Movie{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Title:       m.title,
			Description: m.description,
			PosterURL:   m.posterURL,
			ReleaseDate: releaseDate,
			Featured:    m.featured,
			Actors:      m.actors,
			Bookings:    []uuid.UUID{},
		}

		if err := repo.Create(ctx, movie); err != nil {
			log.Error("Failed to seed movie", zap.Error(err), zap.String("title", m.title))
			continue
		}

		log.Info("Seeded movie", zap.String("title", m.title))
	}
}
