// internal/app/store/categories/categorystore.go
package categorystore

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

// ErrDuplicateName is returned when creating a category whose name
// already exists.
var ErrDuplicateName = errors.New("a category with this name already exists")

// Store provides the category lookup list. Reads go through the
// long-TTL lookup cache; the list changes only when an admin edits it.
type Store struct {
	c     *mongo.Collection
	cache cache.Cache[[]models.Category]
}

func New(db *mongo.Database, c cache.Cache[[]models.Category]) *Store {
	return &Store{c: db.Collection("categories"), cache: c}
}

// All returns every category, reading through the cache.
func (s *Store) All(ctx context.Context) ([]models.Category, error) {
	if out, ok := s.cache.Get(cache.KeyAllCategories()); ok {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyAllCategories(), out)
	return out, nil
}

// ByID returns the category with the given id from the cached list.
func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// Create inserts a category and invalidates the cached list.
func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	cat.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateName
		}
		return models.Category{}, err
	}

	s.cache.Remove(cache.KeyAllCategories())
	return cat, nil
}
