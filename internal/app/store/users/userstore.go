// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/suggestbox/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides CRUD over user documents. No caching: user documents
// are read inside vote/create transactions and must always be current.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateAuthSubject is returned when creating a user whose
	// identity-provider subject is already registered.
	ErrDuplicateAuthSubject = errors.New("a user with this auth subject already exists")

	errMissingSubject = errors.New("auth_subject is required")
	errBadRole        = errors.New(`role must be "user" or "admin"`)
)

// Create inserts a new user after validating fields. Called at account
// provisioning when the identity provider first reports a subject.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()

	if u.AuthSubject == "" {
		return models.User{}, errMissingSubject
	}
	if u.Role == "" {
		u.Role = "user"
	}
	switch u.Role {
	case "user", "admin":
	default:
		return models.User{}, errBadRole
	}

	// Denormalized lists start empty, never nil, so appends and bson
	// round-trips behave uniformly.
	if u.AuthoredSuggestions == nil {
		u.AuthoredSuggestions = []models.BasicSuggestion{}
	}
	if u.VotedOnSuggestions == nil {
		u.VotedOnSuggestions = []models.BasicSuggestion{}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateAuthSubject
		}
		return models.User{}, err
	}
	return u, nil
}

// ByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ByAuthSubject loads a user by the external identity-provider subject
// id. Returns mongo.ErrNoDocuments if absent.
func (s *Store) ByAuthSubject(ctx context.Context, subject string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"auth_subject": subject}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// All returns every user document.
func (s *Store) All(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update replaces the user document by id (full overwrite). Pass the
// transaction's SessionContext when calling inside a vote or create
// transaction so the write joins the session.
func (s *Store) Update(ctx context.Context, u models.User) error {
	u.UpdatedAt = time.Now().UTC()
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	return err
}
