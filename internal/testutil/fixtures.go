package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with a unique identity-provider subject.
func (f *Fixtures) CreateUser(ctx context.Context, displayName string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:          primitive.NewObjectID(),
		AuthSubject: "oidc|" + uuid.NewString(),
		DisplayName: displayName,
		Email:       uuid.NewString() + "@example.com",
		Role:        "user",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin inserts a user with the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, displayName string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, displayName)
	if _, err := f.db.Collection("users").UpdateOne(ctx,
		map[string]any{"_id": u.ID},
		map[string]any{"$set": map[string]any{"role": "admin"}}); err != nil {
		f.t.Fatalf("failed to promote test admin: %v", err)
	}
	u.Role = "admin"
	return u
}

// CreateCategory inserts a category lookup document.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	c := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test category description",
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

// CreateStatus inserts a status lookup document.
func (f *Fixtures) CreateStatus(ctx context.Context, name string) models.Status {
	f.t.Helper()

	s := models.Status{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test status description",
	}
	if _, err := f.db.Collection("statuses").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test status: %v", err)
	}
	return s
}

// SuggestionOpt mutates a suggestion fixture before insert.
type SuggestionOpt func(*models.Suggestion)

// Approved marks the fixture approved for release.
func Approved() SuggestionOpt {
	return func(s *models.Suggestion) { s.ApprovedForRelease = true }
}

// Rejected marks the fixture rejected.
func Rejected() SuggestionOpt {
	return func(s *models.Suggestion) { s.Rejected = true }
}

// Archived marks the fixture archived.
func Archived() SuggestionOpt {
	return func(s *models.Suggestion) { s.Archived = true }
}

// CreateSuggestion inserts a suggestion authored by author. The
// author's authored_suggestions list is NOT updated; use the suggestion
// store's Create when the test needs the transactional path.
func (f *Fixtures) CreateSuggestion(ctx context.Context, title string, author models.User, category models.Category, opts ...SuggestionOpt) models.Suggestion {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Suggestion{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test suggestion description",
		Category:    category,
		Author:      models.NewBasicUser(author),
		Voters:      []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if _, err := f.db.Collection("suggestions").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test suggestion: %v", err)
	}
	return s
}
