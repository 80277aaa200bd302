package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/mongostore"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
)

// Service сервис регистрации пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register создает пользователя при первом обращении или обновляет имя.
// Язык записывается, только если передан. Возвращает true, если пользователь создан.
func (s *Service) Register(ctx context.Context, chatID int64, fullName string, language string) (*UserResponse, bool, error) {
	s.logger.Info("Register: chat_id=%d", chatID)

	if chatID == 0 {
		return nil, false, fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}

	lang := domain.Language(strings.ToLower(strings.TrimSpace(language)))
	if lang != "" && !lang.IsValid() {
		s.logger.Warn("Register: unsupported language=%q for chat_id=%d", language, chatID)
		return nil, false, ErrInvalidLanguage
	}

	user, created, err := s.userRepo.Upsert(ctx, chatID, strings.TrimSpace(fullName), lang)
	if err != nil {
		s.logger.Error("Register: repository error for chat_id=%d: %v", chatID, err)
		return nil, false, fmt.Errorf("%w: Register - upsert user: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Register: chat_id=%d created=%t", chatID, created)
	return FromDomainUser(user), created, nil
}

// SetPhone сохраняет номер телефона зарегистрированного пользователя
func (s *Service) SetPhone(ctx context.Context, chatID int64, phone string) (*UserResponse, error) {
	s.logger.Info("SetPhone: chat_id=%d", chatID)

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	user, err := s.userRepo.SetPhone(ctx, chatID, phone)
	if err != nil {
		return nil, s.mapError("SetPhone", chatID, err)
	}

	return FromDomainUser(user), nil
}

// SetLanguage сохраняет язык, создавая пользователя при необходимости
func (s *Service) SetLanguage(ctx context.Context, chatID int64, language string) (*UserResponse, error) {
	s.logger.Info("SetLanguage: chat_id=%d language=%s", chatID, language)

	lang := domain.Language(strings.ToLower(strings.TrimSpace(language)))
	if !lang.IsValid() {
		s.logger.Warn("SetLanguage: unsupported language=%q for chat_id=%d", language, chatID)
		return nil, ErrInvalidLanguage
	}

	user, err := s.userRepo.UpsertLanguage(ctx, chatID, lang)
	if err != nil {
		return nil, s.mapError("SetLanguage", chatID, err)
	}

	return FromDomainUser(user), nil
}

// GetByChatID возвращает пользователя
func (s *Service) GetByChatID(ctx context.Context, chatID int64) (*UserResponse, error) {
	user, err := s.userRepo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, s.mapError("GetByChatID", chatID, err)
	}
	return FromDomainUser(user), nil
}

// Language возвращает язык пользователя или язык по умолчанию
func (s *Service) Language(ctx context.Context, chatID int64) (domain.Language, error) {
	user, err := s.userRepo.GetByChatID(ctx, chatID)
	if err != nil {
		if isNotFound(err) {
			return domain.DefaultLanguage, nil
		}
		return domain.DefaultLanguage, s.mapError("Language", chatID, err)
	}
	return user.Language.OrDefault(), nil
}

func (s *Service) mapError(op string, chatID int64, err error) error {
	if isNotFound(err) {
		s.logger.Warn("%s: user chat_id=%d not found", op, chatID)
		return ErrUserNotFound
	}
	s.logger.Error("%s: repository error for chat_id=%d: %v", op, chatID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, userRepo.ErrUserNotFound) || errors.Is(err, mongostore.ErrUserNotFound)
}
