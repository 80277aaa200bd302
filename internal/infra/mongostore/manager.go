// Package mongostore хранит пользователей в MongoDB
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultUsersCollection имя коллекции пользователей по умолчанию
const DefaultUsersCollection = "users"

// mongoClient подмножество mongo.Client, которое подменяется в тестах
type mongoClient interface {
	Ping(context.Context, *readpref.ReadPref) error
	Database(string, ...*options.DatabaseOptions) *mongo.Database
	Disconnect(context.Context) error
}

var connectMongo = func(ctx context.Context, opts *options.ClientOptions) (mongoClient, error) {
	return mongo.Connect(ctx, opts)
}

var createIndexes = func(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) ([]string, error) {
	return coll.Indexes().CreateMany(ctx, models)
}

// Manager владеет клиентом MongoDB и базой данных сервиса
type Manager struct {
	client          mongoClient
	db              *mongo.Database
	usersCollection string
}

// NewManager подключается к MongoDB и проверяет соединение
func NewManager(ctx context.Context, uri, database, usersCollection string) (*Manager, error) {
	if ctx == nil {
		return nil, errors.New("mongostore: context is required")
	}
	if usersCollection == "" {
		usersCollection = DefaultUsersCollection
	}

	client, err := connectMongo(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	return &Manager{
		client:          client,
		db:              client.Database(database),
		usersCollection: usersCollection,
	}, nil
}

// Users возвращает коллекцию пользователей
func (m *Manager) Users() *mongo.Collection {
	return m.db.Collection(m.usersCollection)
}

// EnsureIndexes создает уникальный индекс по chat_id
func (m *Manager) EnsureIndexes(ctx context.Context) error {
	if m == nil || m.db == nil {
		return errors.New("mongostore: manager is not initialized")
	}

	models := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "chat_id", Value: 1}},
			Options: options.Index().
				SetName("chat_id_unique").
				SetUnique(true),
		},
	}

	if _, err := createIndexes(ctx, m.Users(), models); err != nil {
		return fmt.Errorf("mongostore: create users indexes: %w", err)
	}
	return nil
}

// Ping проверяет соединение с MongoDB
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongostore: ping: %w", err)
	}
	return nil
}

// Close отключает клиента
func (m *Manager) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
