package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ErrUserNotFound возвращается, когда пользователь не найден
var ErrUserNotFound = errors.New("mongostore: user not found")

type usersCollection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

type userDocument struct {
	ChatID    int64     `bson:"chat_id"`
	FullName  string    `bson:"full_name"`
	Phone     *string   `bson:"phone,omitempty"`
	Language  string    `bson:"language"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ChatID:    d.ChatID,
		FullName:  d.FullName,
		Phone:     d.Phone,
		Language:  domain.Language(d.Language),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// UserRepository репозиторий пользователей в MongoDB
type UserRepository struct {
	users usersCollection
	now   func() time.Time
}

// NewUserRepository создает репозиторий поверх коллекции пользователей
func NewUserRepository(users usersCollection) *UserRepository {
	return &UserRepository{
		users: users,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Upsert создает пользователя или обновляет имя. Пустой язык не затирает выбранный.
func (r *UserRepository) Upsert(ctx context.Context, chatID int64, fullName string, lang domain.Language) (*domain.User, bool, error) {
	now := r.now()

	set := bson.M{
		"full_name":  fullName,
		"updated_at": now,
	}
	setOnInsert := bson.M{
		"chat_id":    chatID,
		"created_at": now,
	}
	if lang != "" {
		set["language"] = string(lang)
	} else {
		setOnInsert["language"] = ""
	}

	result, err := r.users.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, false, fmt.Errorf("mongostore: upsert user: %w", err)
	}

	user, err := r.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, false, err
	}

	created := result != nil && result.UpsertedCount > 0
	return user, created, nil
}

// UpsertLanguage устанавливает язык, создавая пользователя при отсутствии
func (r *UserRepository) UpsertLanguage(ctx context.Context, chatID int64, lang domain.Language) (*domain.User, error) {
	now := r.now()

	_, err := r.users.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{
			"$set": bson.M{
				"language":   string(lang),
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"chat_id":    chatID,
				"full_name":  "",
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("mongostore: set language: %w", err)
	}

	return r.GetByChatID(ctx, chatID)
}

// SetPhone сохраняет телефон существующего пользователя
func (r *UserRepository) SetPhone(ctx context.Context, chatID int64, phone string) (*domain.User, error) {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": bson.M{
			"phone":      phone,
			"updated_at": r.now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("mongostore: set phone: %w", err)
	}
	if result == nil || result.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}

	return r.GetByChatID(ctx, chatID)
}

// GetByChatID возвращает пользователя по chat id
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	result := r.users.FindOne(ctx, bson.M{"chat_id": chatID})
	if result == nil {
		return nil, errors.New("mongostore: find user returned no result")
	}
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("mongostore: find user: %w", err)
	}

	var doc userDocument
	if err := result.Decode(&doc); err != nil {
		return nil, fmt.Errorf("mongostore: decode user: %w", err)
	}
	return doc.toDomain(), nil
}
