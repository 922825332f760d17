package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionCollection is the collection used by MongoStore.
const SessionCollection = "sessions"

type mongoSession struct {
	ID        string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	ExpiresAt time.Time         `bson:"expiresAt"`
}

type mongoBackend struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (b *mongoBackend) get(ctx context.Context, id string) (map[string]string, bool, error) {
	var doc mongoSession
	err := b.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session: mongo find: %w", err)
	}
	// The TTL monitor runs once a minute, so expired documents can still be read.
	if b.now().After(doc.ExpiresAt) {
		return nil, false, nil
	}
	return doc.Values, true, nil
}

func (b *mongoBackend) put(ctx context.Context, id string, values map[string]string, ttl time.Duration) error {
	doc := mongoSession{ID: id, Values: values, ExpiresAt: b.now().Add(ttl)}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("session: mongo upsert: %w", err)
	}
	return nil
}

func (b *mongoBackend) remove(ctx context.Context, id string) error {
	if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("session: mongo delete: %w", err)
	}
	return nil
}

// MongoStore keeps sessions in a MongoDB collection.
type MongoStore struct {
	serverStore
}

func NewMongoStore(db *mongo.Database, cookie CookieOptions) *MongoStore {
	b := &mongoBackend{coll: db.Collection(SessionCollection), now: time.Now}
	return &MongoStore{serverStore{backend: b, cookie: cookie}}
}

// EnsureIndexes creates the TTL index that expires stale sessions.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	b := m.backend.(*mongoBackend)
	_, err := b.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("session: create ttl index: %w", err)
	}
	return nil
}
