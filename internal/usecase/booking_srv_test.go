package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore backs the fake repositories with mutex-serialized maps. The
// mutex plays the role the single-statement SQL set updates play in the
// real store: every back-reference mutation is atomic.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	movies   map[uuid.UUID]*entity.Movie
	bookings map[uuid.UUID]*entity.Booking

	failUserAdd    bool
	failMovieAdd   bool
	failBookingDel bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		movies:   make(map[uuid.UUID]*entity.Movie),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func (s *fakeStore) addUser(u *entity.User) { s.users[u.ID] = u }

func (s *fakeStore) addMovie(m *entity.Movie) { s.movies[m.ID] = m }

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error) { return 0, nil }

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) AddBooking(ctx context.Context, userID, bookingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failUserAdd {
		return false, errors.New("store unavailable")
	}
	user, ok := r.store.users[userID]
	if !ok {
		return false, nil
	}
	user.Bookings = appendUnique(user.Bookings, bookingID)
	return true, nil
}

func (r *fakeUserRepo) RemoveBooking(ctx context.Context, userID, bookingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[userID]
	if !ok {
		return false, nil
	}
	user.Bookings = removeID(user.Bookings, bookingID)
	return true, nil
}

func (r *fakeUserRepo) WithQuerier(q database.Querier) repository.UserRepository { return r }

type fakeMovieRepo struct{ store *fakeStore }

func (r *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.movies[id], nil
}

func (r *fakeMovieRepo) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.movies {
		if m.Title == title {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovieRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	return nil, nil
}

func (r *fakeMovieRepo) CountAll(ctx context.Context) (int64, error) { return 0, nil }

func (r *fakeMovieRepo) AddBooking(ctx context.Context, movieID, bookingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failMovieAdd {
		return false, errors.New("store unavailable")
	}
	movie, ok := r.store.movies[movieID]
	if !ok {
		return false, nil
	}
	movie.Bookings = appendUnique(movie.Bookings, bookingID)
	return true, nil
}

func (r *fakeMovieRepo) RemoveBooking(ctx context.Context, movieID, bookingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movie, ok := r.store.movies[movieID]
	if !ok {
		return false, nil
	}
	movie.Bookings = removeID(movie.Bookings, bookingID)
	return true, nil
}

func (r *fakeMovieRepo) WithQuerier(q database.Querier) repository.MovieRepository { return r }

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.bookings[id], nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failBookingDel {
		return errors.New("store unavailable")
	}
	if _, ok := r.store.bookings[id]; !ok {
		return fmt.Errorf("booking %s not found", id.String())
	}
	delete(r.store.bookings, id)
	return nil
}

func (r *fakeBookingRepo) WithQuerier(q database.Querier) repository.BookingRepository { return r }

func newTestService(store *fakeStore) BookingService {
	repo := &repository.Repository{
		User:    &fakeUserRepo{store: store},
		Movie:   &fakeMovieRepo{store: store},
		Booking: &fakeBookingRepo{store: store},
	}
	// useTx off: the fakes have no transaction, so the service runs the
	// compensating path the same way it would against a store without
	// multi-document commits.
	return NewBookingService(repo, nil, false, zap.NewNop())
}

func seedOwners(store *fakeStore) (*entity.Movie, *entity.User) {
	movie := &entity.Movie{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Title: "Interstellar",
	}
	user := &entity.User{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Name:  "Ellen",
		Email: "ellen@example.com",
	}
	store.addMovie(movie)
	store.addUser(user)
	return movie, user
}

func createRequest(movie *entity.Movie, user *entity.User) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		Movie:      movie.ID.String(),
		User:       user.ID.String(),
		SeatNumber: "A1",
		Date:       "2024-01-01",
	}
}

func TestCreateBookingUpdatesBothBackReferences(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	resp, err := svc.CreateBooking(context.Background(), createRequest(movie, user))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, movie.ID.String(), resp.MovieID)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, "A1", resp.SeatNumber)
	assert.Equal(t, "2024-01-01", resp.Date)

	bookingID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	require.Contains(t, store.bookings, bookingID)
	assert.Contains(t, user.Bookings, bookingID)
	assert.Contains(t, movie.Bookings, bookingID)
}

func TestCreateBookingMovieNotFound(t *testing.T) {
	store := newFakeStore()
	_, user := seedOwners(store)
	svc := newTestService(store)

	req := &request.CreateBookingRequest{
		Movie:      uuid.New().String(),
		User:       user.ID.String(),
		SeatNumber: "A1",
		Date:       "2024-01-01",
	}

	_, err := svc.CreateBooking(context.Background(), req)
	require.ErrorIs(t, err, ErrMovieNotFound)

	// Validation failures must not write anything.
	assert.Empty(t, store.bookings)
	assert.Empty(t, user.Bookings)
}

func TestCreateBookingUserNotFound(t *testing.T) {
	store := newFakeStore()
	movie, _ := seedOwners(store)
	svc := newTestService(store)

	req := &request.CreateBookingRequest{
		Movie:      movie.ID.String(),
		User:       uuid.New().String(),
		SeatNumber: "A1",
		Date:       "2024-01-01",
	}

	_, err := svc.CreateBooking(context.Background(), req)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, store.bookings)
	assert.Empty(t, movie.Bookings)
}

func TestCreateBookingRejectsUnparseableDate(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	req := createRequest(movie, user)
	req.Date = "not-a-date"

	_, err := svc.CreateBooking(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.bookings)
}

func TestCreateBookingAcceptsRFC3339Date(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	req := createRequest(movie, user)
	req.Date = "2024-01-01T19:30:00Z"

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", resp.Date)
}

func TestCreateBookingCompensatesWhenMovieWriteFails(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	store.failMovieAdd = true

	_, err := svc.CreateBooking(context.Background(), createRequest(movie, user))
	require.ErrorIs(t, err, ErrCreationFailed)

	// The orphaned booking and the user-side reference must both be gone.
	assert.Empty(t, store.bookings)
	assert.Empty(t, user.Bookings)
	assert.Empty(t, movie.Bookings)
}

func TestCreateBookingCompensatesWhenUserWriteFails(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	store.failUserAdd = true

	_, err := svc.CreateBooking(context.Background(), createRequest(movie, user))
	require.ErrorIs(t, err, ErrCreationFailed)
	assert.Empty(t, store.bookings)
	assert.Empty(t, user.Bookings)
	assert.Empty(t, movie.Bookings)
}

func TestDeleteBookingCleansBothOwners(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	resp, err := svc.CreateBooking(context.Background(), createRequest(movie, user))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(context.Background(), resp.ID))

	assert.Empty(t, store.bookings)
	assert.Empty(t, user.Bookings)
	assert.Empty(t, movie.Bookings)

	_, err = svc.GetBookingByID(context.Background(), resp.ID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteBookingTwiceReturnsNotFound(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	resp, err := svc.CreateBooking(context.Background(), createRequest(movie, user))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(context.Background(), resp.ID))

	err = svc.DeleteBooking(context.Background(), resp.ID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteBookingSurvivesMissingUser(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	resp, err := svc.CreateBooking(context.Background(), createRequest(movie, user))
	require.NoError(t, err)

	// The user goes away independently; cleanup must still run through.
	delete(store.users, user.ID)

	require.NoError(t, svc.DeleteBooking(context.Background(), resp.ID))
	assert.Empty(t, store.bookings)
	assert.Empty(t, movie.Bookings)
}

func TestDeleteBookingUnknownID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	err := svc.DeleteBooking(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConcurrentCreationsOnOneMovieLoseNoUpdates(t *testing.T) {
	store := newFakeStore()
	movie, _ := seedOwners(store)
	svc := newTestService(store)

	const n = 25

	users := make([]*entity.User, n)
	for i := range users {
		users[i] = &entity.User{
			Base:  entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
			Name:  fmt.Sprintf("user-%d", i),
			Email: fmt.Sprintf("user-%d@example.com", i),
		}
		store.addUser(users[i])
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := &request.CreateBookingRequest{
				Movie:      movie.ID.String(),
				User:       users[i].ID.String(),
				SeatNumber: fmt.Sprintf("B%d", i),
				Date:       "2024-01-01",
			}
			_, errs[i] = svc.CreateBooking(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "creation %d", i)
	}

	// Every concurrent append must survive, and each exactly once.
	require.Len(t, movie.Bookings, n)
	seen := make(map[uuid.UUID]bool, n)
	for _, id := range movie.Bookings {
		assert.False(t, seen[id], "duplicate booking id in back-reference set")
		seen[id] = true
	}
	assert.Len(t, store.bookings, n)
}

func TestGetBookingsOfUser(t *testing.T) {
	store := newFakeStore()
	movie, user := seedOwners(store)
	svc := newTestService(store)

	for _, seat := range []string{"A1", "A2", "A3"} {
		req := createRequest(movie, user)
		req.SeatNumber = seat
		_, err := svc.CreateBooking(context.Background(), req)
		require.NoError(t, err)
	}

	resp, err := svc.GetBookingsOfUser(context.Background(), user.ID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 3)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	for _, b := range resp.Data {
		assert.Equal(t, "Interstellar", b.MovieTitle)
	}
}
