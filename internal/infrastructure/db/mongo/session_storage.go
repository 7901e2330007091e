package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/order-portal/internal/core/domain"
)

const sessionCollection = "portal_sessions"

// SessionStorage keeps one document per storage key.
type SessionStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewSessionStorage returns a SessionStorage over the portal_sessions collection of db.
func NewSessionStorage(db *mongo.Database) *SessionStorage {
	return &SessionStorage{coll: db.Collection(sessionCollection), now: time.Now}
}

type sessionDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *SessionStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var doc sessionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("find session %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *SessionStorage) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{
		"value":      string(value),
		"updated_at": s.now().UTC(),
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", key, err)
	}
	return nil
}
