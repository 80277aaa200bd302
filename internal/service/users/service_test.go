package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/mongostore"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/usecasetest"
)

type memoryUsers struct {
	users    map[int64]*domain.User
	notFound error
	err      error
}

func newMemoryUsers(notFound error) *memoryUsers {
	return &memoryUsers{users: make(map[int64]*domain.User), notFound: notFound}
}

func (m *memoryUsers) Upsert(_ context.Context, chatID int64, fullName string, lang domain.Language) (*domain.User, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	u, ok := m.users[chatID]
	if !ok {
		u = &domain.User{ChatID: chatID}
		m.users[chatID] = u
	}
	u.FullName = fullName
	if lang != "" {
		u.Language = lang
	}
	return u, !ok, nil
}

func (m *memoryUsers) UpsertLanguage(_ context.Context, chatID int64, lang domain.Language) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[chatID]
	if !ok {
		u = &domain.User{ChatID: chatID}
		m.users[chatID] = u
	}
	u.Language = lang
	return u, nil
}

func (m *memoryUsers) SetPhone(_ context.Context, chatID int64, phone string) (*domain.User, error) {
	u, ok := m.users[chatID]
	if !ok {
		return nil, m.notFound
	}
	u.Phone = &phone
	return u, nil
}

func (m *memoryUsers) GetByChatID(_ context.Context, chatID int64) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[chatID]
	if !ok {
		return nil, m.notFound
	}
	return u, nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newMemoryUsers(userRepo.ErrUserNotFound), usecasetest.NopLogger{})

	user, created, err := svc.Register(context.Background(), 42, " Ann ", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ann", user.FullName)
	assert.Empty(t, user.Language)

	user, created, err = svc.Register(context.Background(), 42, "Ann", "RU")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "ru", user.Language)

	_, _, err = svc.Register(context.Background(), 42, "Ann", "de")
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	_, _, err = svc.Register(context.Background(), 0, "Ann", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetPhone(t *testing.T) {
	for name, notFound := range map[string]error{
		"postgres": userRepo.ErrUserNotFound,
		"mongo":    mongostore.ErrUserNotFound,
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(newMemoryUsers(notFound), usecasetest.NopLogger{})

			_, err := svc.SetPhone(context.Background(), 42, "+998901234567")
			assert.ErrorIs(t, err, ErrUserNotFound)

			_, _, err = svc.Register(context.Background(), 42, "Ann", "")
			require.NoError(t, err)

			user, err := svc.SetPhone(context.Background(), 42, "+998901234567")
			require.NoError(t, err)
			require.NotNil(t, user.Phone)
			assert.Equal(t, "+998901234567", *user.Phone)

			_, err = svc.SetPhone(context.Background(), 42, "  ")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSetLanguageCreatesStubUser(t *testing.T) {
	svc := NewService(newMemoryUsers(userRepo.ErrUserNotFound), usecasetest.NopLogger{})

	user, err := svc.SetLanguage(context.Background(), 42, "uz")
	require.NoError(t, err)
	assert.Equal(t, "uz", user.Language)

	_, err = svc.SetLanguage(context.Background(), 42, "fr")
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	lang, err := svc.Language(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageUz, lang)
}

func TestLanguageFallsBackToDefault(t *testing.T) {
	repo := newMemoryUsers(userRepo.ErrUserNotFound)
	svc := NewService(repo, usecasetest.NopLogger{})

	lang, err := svc.Language(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEn, lang)

	_, _, err = svc.Register(context.Background(), 42, "Ann", "")
	require.NoError(t, err)
	lang, err = svc.Language(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEn, lang)

	repo.err = errors.New("timeout")
	_, err = svc.Language(context.Background(), 42)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.GetByChatID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
