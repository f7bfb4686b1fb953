package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned results so the tests exercise only the
// HTTP mapping, not the booking logic itself.
type stubBookingService struct {
	createResp *response.BookingResponse
	createErr  error
	getResp    *response.BookingResponse
	getErr     error
	deleteErr  error
	listResp   *response.PaginatedResponse[response.BookingResponse]
	listErr    error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubBookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.getResp, s.getErr
}

func (s *stubBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	return s.deleteErr
}

func (s *stubBookingService) GetBookingsOfUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return s.listResp, s.listErr
}

func newBookingRouter(svc usecase.BookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/booking", h.CreateBooking)
	r.Get("/api/booking/{id}", h.GetBookingByID)
	r.Delete("/api/booking/{id}", h.DeleteBooking)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var envelope utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestCreateBookingReturnsCreated(t *testing.T) {
	svc := &stubBookingService{
		createResp: &response.BookingResponse{
			ID:         uuid.New().String(),
			MovieID:    uuid.New().String(),
			UserID:     uuid.New().String(),
			SeatNumber: "A1",
			Date:       "2024-01-01",
			CreatedAt:  time.Now(),
		},
	}
	router := newBookingRouter(svc)

	body := `{"movie":"` + svc.createResp.MovieID + `","user":"` + svc.createResp.UserID + `","seat_number":"A1","date":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
	assert.NotNil(t, envelope.Data)
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
}

func TestCreateBookingMapsSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"movie not found", fmt.Errorf("%w: movie x", usecase.ErrMovieNotFound), http.StatusNotFound},
		{"user not found", fmt.Errorf("%w: user x", usecase.ErrUserNotFound), http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: unparseable date", usecase.ErrInvalidInput), http.StatusUnprocessableEntity},
		{"store failure", fmt.Errorf("%w: connection reset", usecase.ErrCreationFailed), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newBookingRouter(&stubBookingService{createErr: tc.err})

			body := `{"movie":"a","user":"b","seat_number":"A1","date":"2024-01-01"}`
			req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.wantCode, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Status)
		})
	}
}

func TestInternalErrorHidesStoreDetails(t *testing.T) {
	router := newBookingRouter(&stubBookingService{
		createErr: fmt.Errorf("%w: pq: relation bookings does not exist", usecase.ErrCreationFailed),
	})

	body := `{"movie":"a","user":"b","seat_number":"A1","date":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal server error", envelope.Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestGetBookingByIDNotFound(t *testing.T) {
	router := newBookingRouter(&stubBookingService{
		getErr: fmt.Errorf("%w: booking x", usecase.ErrBookingNotFound),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/booking/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
}

func TestDeleteBookingSuccess(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/booking/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
	assert.Equal(t, "Successfully deleted", envelope.Message)
}

func TestGetUserBookingsRequiresAuthContext(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/user/bookings", nil)
	rec := httptest.NewRecorder()
	h.GetUserBookings(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserBookingsWithAuthContext(t *testing.T) {
	svc := &stubBookingService{
		listResp: response.NewPaginatedResponse([]response.BookingResponse{}, 1, 10, 0),
	}
	h := NewBookingHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/user/bookings?page=2&per_page=5", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	h.GetUserBookings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
}
