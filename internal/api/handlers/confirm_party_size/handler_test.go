package confirm_party_size

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	confirmPartySize "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_party_size"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	outcome confirmPartySize.Outcome
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmPartySize.Request) (*confirmPartySize.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp := &confirmPartySize.Response{
		Outcome:    f.outcome,
		BookingID:  req.BookingID,
		CategoryID: 1,
		Date:       time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
		PartySize:  req.PartySize,
		Capacity:   5,
		Admitted:   5,
	}
	if f.outcome == confirmPartySize.OutcomeCapacityExceeded {
		resp.AlternativeSlots = []types.TimeString{"09:00", "11:00"}
	}
	return resp, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}/party-size", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/7/party-size", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestConfirmAdmitted(t *testing.T) {
	rec := serve(&fakeUseCase{outcome: confirmPartySize.OutcomeAdmitted}, `{"partySize":4}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ConfirmPartySizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "admitted", body.Outcome)
	assert.Equal(t, 4, body.PartySize)
	assert.Empty(t, body.AlternativeSlots)
}

func TestConfirmCapacityExceeded(t *testing.T) {
	rec := serve(&fakeUseCase{outcome: confirmPartySize.OutcomeCapacityExceeded}, `{"partySize":2}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ConfirmPartySizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "capacity_exceeded", body.Outcome)
	assert.Equal(t, []string{"09:00", "11:00"}, body.AlternativeSlots)
}

func TestConfirmErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad body", body: `{"partySize":"four"}`, status: http.StatusBadRequest},
		{name: "party size", body: `{"partySize":0}`, err: confirmPartySize.ErrInvalidPartySize, status: http.StatusBadRequest},
		{name: "no pending", body: `{"partySize":2}`, err: confirmPartySize.ErrNoPendingBooking, status: http.StatusNotFound},
		{name: "store", body: `{"partySize":2}`, err: confirmPartySize.ErrStoreUnavailable, status: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tc.err}, tc.body)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
