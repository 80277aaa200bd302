package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	selectDate "github.com/m04kA/SMC-ReservationService/internal/usecase/select_date"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *selectDate.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *selectDate.Request) (*selectDate.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &selectDate.Response{
		BookingID:      11,
		CategoryID:     req.CategoryID,
		Date:           req.Date,
		Status:         "awaiting_time",
		AvailableSlots: []types.TimeString{"09:00", "10:00"},
	}, nil
}

func serve(uc *fakeUseCase, userID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateBooking(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "42", `{"categoryId":3,"bookingDate":"2026-11-02"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":11,"categoryId":3,"bookingDate":"2026-11-02","status":"awaiting_time","availableSlots":["09:00","10:00"]}`,
		rec.Body.String())
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), uc.got.Date)
}

func TestCreateBookingErrors(t *testing.T) {
	cases := []struct {
		name   string
		userID string
		body   string
		err    error
		status int
	}{
		{name: "no user", body: `{}`, status: http.StatusUnauthorized},
		{name: "bad json", userID: "42", body: `{`, status: http.StatusBadRequest},
		{name: "bad date", userID: "42", body: `{"categoryId":1,"bookingDate":"02.11.2026"}`, status: http.StatusBadRequest},
		{name: "category", userID: "42", body: `{"categoryId":9,"bookingDate":"2026-11-02"}`, err: selectDate.ErrCategoryNotFound, status: http.StatusNotFound},
		{name: "past", userID: "42", body: `{"categoryId":1,"bookingDate":"2026-11-02"}`, err: selectDate.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "store", userID: "42", body: `{"categoryId":1,"bookingDate":"2026-11-02"}`,
			err: fmt.Errorf("%w: timeout", selectDate.ErrStoreUnavailable), status: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tc.err}, tc.userID, tc.body)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
