package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:     req.Date,
		Category: domain.Category{ID: req.CategoryID, Name: "Standard", NameRu: "Стандарт", NameUz: "Standart"},
		Capacity: 5,
		Slots:    []types.TimeString{"09:00", "11:00"},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/categories/{categoryId}/available-slots", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetAvailableSlots(t *testing.T) {
	rec := serve(&fakeUseCase{}, "/api/v1/categories/1/available-slots?date=2026-11-02")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-11-02", body.Date)
	assert.Equal(t, int64(1), body.Category.ID)
	assert.Equal(t, 5, body.Capacity)
	assert.Equal(t, []string{"09:00", "11:00"}, body.Slots)
}

func TestGetAvailableSlotsErrors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad category", target: "/api/v1/categories/x/available-slots?date=2026-11-02", status: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/categories/1/available-slots", status: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/categories/1/available-slots?date=tomorrow", status: http.StatusBadRequest},
		{name: "not found", target: "/api/v1/categories/9/available-slots?date=2026-11-02", err: getAvailableSlots.ErrCategoryNotFound, status: http.StatusNotFound},
		{name: "store", target: "/api/v1/categories/1/available-slots?date=2026-11-02", err: getAvailableSlots.ErrStoreUnavailable, status: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tc.err}, tc.target)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
