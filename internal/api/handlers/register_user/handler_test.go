package register_user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	created bool
	err     error
}

func (f *fakeService) Register(_ context.Context, chatID int64, fullName string, language string) (*users.UserResponse, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &users.UserResponse{ChatID: chatID, FullName: fullName, Language: language}, f.created, nil
}

func post(svc *fakeService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestRegisterUser(t *testing.T) {
	body := `{"chatId":42,"fullName":"Aziz","language":"uz"}`

	rec := post(&fakeService{created: true}, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"chatId":42`)

	rec = post(&fakeService{created: false}, body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterUserErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{}, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{err: users.ErrInvalidInput}, `{"chatId":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{err: users.ErrInvalidLanguage}, `{"chatId":1,"language":"de"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, post(&fakeService{err: users.ErrStoreUnavailable}, `{"chatId":1}`).Code)
}
