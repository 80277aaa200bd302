package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type fakeUsersCollection struct {
	docs      map[int64]bson.M
	updateErr error
}

func newFakeUsersCollection() *fakeUsersCollection {
	return &fakeUsersCollection{docs: make(map[int64]bson.M)}
}

func (f *fakeUsersCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	chatID := filter.(bson.M)["chat_id"].(int64)
	updateDoc := update.(bson.M)
	setDoc, _ := updateDoc["$set"].(bson.M)
	setOnInsertDoc, _ := updateDoc["$setOnInsert"].(bson.M)
	upsert := len(opts) > 0 && opts[0] != nil && opts[0].Upsert != nil && *opts[0].Upsert

	doc, found := f.docs[chatID]
	if !found && !upsert {
		return &mongo.UpdateResult{}, nil
	}
	if !found {
		doc = bson.M{}
		for k, v := range setOnInsertDoc {
			doc[k] = v
		}
	}
	for k, v := range setDoc {
		doc[k] = v
	}
	f.docs[chatID] = doc

	if !found {
		return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: chatID}, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeUsersCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	chatID := filter.(bson.M)["chat_id"].(int64)
	doc, ok := f.docs[chatID]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func newTestRepository(coll *fakeUsersCollection) *UserRepository {
	repo := NewUserRepository(coll)
	repo.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return repo
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	coll := newFakeUsersCollection()
	repo := newTestRepository(coll)
	ctx := context.Background()

	user, created, err := repo.Upsert(ctx, 42, "Ann", domain.LanguageRu)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ann", user.FullName)
	assert.Equal(t, domain.LanguageRu, user.Language)

	user, created, err = repo.Upsert(ctx, 42, "Ann Lee", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Ann Lee", user.FullName)
	assert.Equal(t, domain.LanguageRu, user.Language, "empty language keeps the chosen one")
}

func TestSetPhone(t *testing.T) {
	coll := newFakeUsersCollection()
	repo := newTestRepository(coll)
	ctx := context.Background()

	_, err := repo.SetPhone(ctx, 42, "+998901234567")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = repo.Upsert(ctx, 42, "Ann", "")
	require.NoError(t, err)

	user, err := repo.SetPhone(ctx, 42, "+998901234567")
	require.NoError(t, err)
	assert.True(t, user.HasPhone())
}

func TestUpsertLanguageCreatesStub(t *testing.T) {
	coll := newFakeUsersCollection()
	repo := newTestRepository(coll)

	user, err := repo.UpsertLanguage(context.Background(), 7, domain.LanguageUz)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ChatID)
	assert.Equal(t, domain.LanguageUz, user.Language)
	assert.Empty(t, user.FullName)
}

func TestGetByChatIDNotFound(t *testing.T) {
	repo := newTestRepository(newFakeUsersCollection())

	_, err := repo.GetByChatID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpsertPropagatesErrors(t *testing.T) {
	coll := newFakeUsersCollection()
	coll.updateErr = errors.New("down")
	repo := newTestRepository(coll)

	_, _, err := repo.Upsert(context.Background(), 1, "x", "")
	assert.ErrorIs(t, err, coll.updateErr)
}
