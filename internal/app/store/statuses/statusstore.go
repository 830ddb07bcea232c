// internal/app/store/statuses/statusstore.go
package statusstore

import (
	"context"
	"errors"

	"github.com/dalemusser/suggestbox/internal/app/system/cache"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateName is returned when creating a status whose name
// already exists.
var ErrDuplicateName = errors.New("a status with this name already exists")

// Store provides the status lookup list, cached with a long TTL like
// the category list.
type Store struct {
	c     *mongo.Collection
	cache cache.Cache[[]models.Status]
}

func New(db *mongo.Database, c cache.Cache[[]models.Status]) *Store {
	return &Store{c: db.Collection("statuses"), cache: c}
}

// All returns every status, reading through the cache.
func (s *Store) All(ctx context.Context) ([]models.Status, error) {
	if out, ok := s.cache.Get(cache.KeyAllStatuses()); ok {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Status{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyAllStatuses(), out)
	return out, nil
}

// ByName returns the status with the given name from the cached list.
func (s *Store) ByName(ctx context.Context, name string) (*models.Status, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// Create inserts a status and invalidates the cached list.
func (s *Store) Create(ctx context.Context, st models.Status) (models.Status, error) {
	st.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Status{}, ErrDuplicateName
		}
		return models.Status{}, err
	}

	s.cache.Remove(cache.KeyAllStatuses())
	return st, nil
}
