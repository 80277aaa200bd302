package list_categories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) ListCategories(context.Context) ([]models.CategoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.CategoryResponse{
		{ID: 1, Name: "Standard", Capacity: 5},
		{ID: 3, Name: "Hall", Capacity: 20},
	}, nil
}

func TestListCategories(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body CategoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Categories, 2)
	assert.Equal(t, 20, body.Categories[1].Capacity)
}

func TestListCategoriesStoreUnavailable(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: timeout", catalog.ErrStoreUnavailable)}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
