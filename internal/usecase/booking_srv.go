package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService owns the booking records and the back-reference lists on
// users and movies. Nothing else writes to those lists, so the two derived
// indexes can only drift through a partial failure here, and both paths
// below are built to close that window.
type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	GetBookingsOfUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	db   database.PgxIface
	// useTx selects the atomic-commit path. Off, the service falls back to
	// sequential writes with compensating cleanup.
	useTx bool
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, db database.PgxIface, useTx bool, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		db:    db,
		useTx: useTx,
		log:   log.With(zap.String("service", "booking")),
	}
}

// bookingDateLayouts are accepted on input; anything else is rejected
// rather than stored as a zero time.
var bookingDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseBookingDate(s string) (time.Time, error) {
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidInput, s)
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.Movie)
	if err != nil {
		return nil, fmt.Errorf("%w: movie id %s", ErrInvalidInput, req.Movie)
	}
	userID, err := uuid.Parse(req.User)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %s", ErrInvalidInput, req.User)
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}

	// Resolve both owners before writing anything. A validation failure
	// here must leave no trace in the store.
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie %s", ErrMovieNotFound, req.Movie)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrUserNotFound, req.User)
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:    movieID,
		UserID:     userID,
		SeatNumber: req.SeatNumber,
		Date:       date,
	}

	if s.useTx {
		err = s.createAtomic(ctx, booking)
	} else {
		err = s.createCompensating(ctx, booking)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.String("user_id", userID.String()),
		zap.String("seat_number", booking.SeatNumber),
	)

	resp := response.BookingToResponse(booking, movie.Title)
	return &resp, nil
}

// createAtomic persists the booking and both back-references in a single
// commit, so a half-linked booking is never visible to readers.
func (s *bookingService) createAtomic(ctx context.Context, booking *entity.Booking) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrCreationFailed, err)
	}
	defer tx.Rollback(ctx)

	repos := s.repo.WithTx(tx)

	if err := repos.Booking.Create(ctx, booking); err != nil {
		return fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	ok, err := repos.User.AddBooking(ctx, booking.UserID, booking.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	if !ok {
		// User deleted between the lookup and here. Abort everything.
		return fmt.Errorf("%w: user %s", ErrUserNotFound, booking.UserID.String())
	}

	ok, err = repos.Movie.AddBooking(ctx, booking.MovieID, booking.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	if !ok {
		return fmt.Errorf("%w: movie %s", ErrMovieNotFound, booking.MovieID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrCreationFailed, err)
	}
	return nil
}

// createCompensating is the path for stores without a usable multi-document
// commit. The booking row goes in first; if either back-reference update
// then fails, the writes already made are retracted so no booking is left
// pointing at owners that do not point back.
func (s *bookingService) createCompensating(ctx context.Context, booking *entity.Booking) error {
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	ok, err := s.repo.User.AddBooking(ctx, booking.UserID, booking.ID)
	if err != nil || !ok {
		s.compensateCreate(ctx, booking, false)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreationFailed, err)
		}
		return fmt.Errorf("%w: user %s", ErrUserNotFound, booking.UserID.String())
	}

	ok, err = s.repo.Movie.AddBooking(ctx, booking.MovieID, booking.ID)
	if err != nil || !ok {
		s.compensateCreate(ctx, booking, true)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreationFailed, err)
		}
		return fmt.Errorf("%w: movie %s", ErrMovieNotFound, booking.MovieID.String())
	}

	return nil
}

// compensateCreate retracts a half-created booking: the user-side
// reference when it was already written, then the booking row itself.
// Failures here are logged, not returned; the caller already has the
// original error and a retried delete of the same rows is a no-op.
func (s *bookingService) compensateCreate(ctx context.Context, booking *entity.Booking, userRefWritten bool) {
	if userRefWritten {
		if _, err := s.repo.User.RemoveBooking(ctx, booking.UserID, booking.ID); err != nil {
			s.log.Error("Compensation: failed to retract user back-reference",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("user_id", booking.UserID.String()),
			)
		}
	}
	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		s.log.Error("Compensation: failed to delete orphaned booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return
	}
	s.log.Warn("Booking creation compensated",
		zap.String("booking_id", booking.ID.String()),
	)
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking id %s", ErrInvalidInput, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrBookingNotFound, bookingID)
	}

	var movieTitle string
	if movie, err := s.repo.Movie.FindByID(ctx, booking.MovieID); err == nil && movie != nil {
		movieTitle = movie.Title
	}

	resp := response.BookingToResponse(booking, movieTitle)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: booking id %s", ErrInvalidInput, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %s", ErrBookingNotFound, bookingID)
	}

	if s.useTx {
		tx, err := s.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("%w: begin: %v", ErrDeletionFailed, err)
		}
		defer tx.Rollback(ctx)

		if err := s.deleteSequence(ctx, s.repo.WithTx(tx), booking); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("%w: commit: %v", ErrDeletionFailed, err)
		}
	} else {
		if err := s.deleteSequence(ctx, s.repo, booking); err != nil {
			return err
		}
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", booking.ID.String()),
		zap.String("movie_id", booking.MovieID.String()),
		zap.String("user_id", booking.UserID.String()),
	)
	return nil
}

// deleteSequence cleans both owners' back-references before removing the
// booking row, so a failure partway leaves an orphaned booking with clean
// owners rather than owners pointing at a booking that no longer exists.
// Every step is a no-op on retry, so the whole operation is safely
// re-runnable.
func (s *bookingService) deleteSequence(ctx context.Context, repos *repository.Repository, booking *entity.Booking) error {
	ok, err := repos.User.RemoveBooking(ctx, booking.UserID, booking.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
	if !ok {
		// Owner deleted independently. Cleaning up the booking is still
		// the right move, so keep going.
		s.log.Warn("Booking owner user no longer exists, skipping its back-reference",
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
	}

	ok, err = repos.Movie.RemoveBooking(ctx, booking.MovieID, booking.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
	if !ok {
		s.log.Warn("Booking owner movie no longer exists, skipping its back-reference",
			zap.String("booking_id", booking.ID.String()),
			zap.String("movie_id", booking.MovieID.String()),
		)
	}

	if err := repos.Booking.Delete(ctx, booking.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}

	return nil
}

func (s *bookingService) GetBookingsOfUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %s", ErrInvalidInput, userID)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	// Titles are display sugar; a vanished movie just leaves the field
	// empty instead of failing the listing.
	titles := make(map[uuid.UUID]string)
	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		title, found := titles[booking.MovieID]
		if !found {
			if movie, err := s.repo.Movie.FindByID(ctx, booking.MovieID); err == nil && movie != nil {
				title = movie.Title
			}
			titles[booking.MovieID] = title
		}
		bookingResponses[i] = response.BookingToResponse(booking, title)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}
