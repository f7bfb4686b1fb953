package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindByTitle(ctx context.Context, title string) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)

	// Back-reference index maintenance, same contract as on users.
	AddBooking(ctx context.Context, movieID, bookingID uuid.UUID) (bool, error)
	RemoveBooking(ctx context.Context, movieID, bookingID uuid.UUID) (bool, error)

	WithQuerier(q database.Querier) MovieRepository
}

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) WithQuerier(q database.Querier) MovieRepository {
	return &movieRepository{db: q, log: r.log}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, poster_url, release_date,
		                    featured, actors, bookings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.PosterURL,
		movie.ReleaseDate,
		movie.Featured,
		movie.Actors,
		movie.Bookings,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, release_date,
		       featured, actors, bookings, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterURL,
		&movie.ReleaseDate,
		&movie.Featured,
		&movie.Actors,
		&movie.Bookings,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, release_date,
		       featured, actors, bookings, created_at, updated_at
		FROM movies
		WHERE title = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, title).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterURL,
		&movie.ReleaseDate,
		&movie.Featured,
		&movie.Actors,
		&movie.Bookings,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find movie by title %s: %w", title, err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, release_date,
		       featured, actors, bookings, created_at, updated_at
		FROM movies
		ORDER BY release_date DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterURL,
			&movie.ReleaseDate,
			&movie.Featured,
			&movie.Actors,
			&movie.Bookings,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) AddBooking(ctx context.Context, movieID, bookingID uuid.UUID) (bool, error) {
	query := `
		UPDATE movies
		SET bookings = array_append(array_remove(bookings, $2), $2), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, movieID, bookingID)
	if err != nil {
		r.log.Error("Failed to add booking reference to movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("add booking %s to movie %s: %w", bookingID.String(), movieID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *movieRepository) RemoveBooking(ctx context.Context, movieID, bookingID uuid.UUID) (bool, error) {
	query := `
		UPDATE movies
		SET bookings = array_remove(bookings, $2), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, movieID, bookingID)
	if err != nil {
		r.log.Error("Failed to remove booking reference from movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("remove booking %s from movie %s: %w", bookingID.String(), movieID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
