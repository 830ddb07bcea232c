package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/suggestbox/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		AuthSubject: "oidc|create-test",
		DisplayName: "Alice",
		Email:       "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.Role != "user" {
		t.Errorf("default role: got %q, want %q", created.Role, "user")
	}
	if created.AuthoredSuggestions == nil || created.VotedOnSuggestions == nil {
		t.Error("expected denormalized lists initialized to empty slices")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{DisplayName: "No subject"}); err == nil {
		t.Error("expected missing auth subject to be rejected")
	}
	if _, err := store.Create(ctx, models.User{
		AuthSubject: "oidc|bad-role",
		Role:        "superuser",
	}); err == nil {
		t.Error("expected unknown role to be rejected")
	}
}

func TestStore_Create_DuplicateSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		AuthSubject: "oidc|dup",
		DisplayName: "First",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{
		AuthSubject: "oidc|dup",
		DisplayName: "Second",
	})
	if err != userstore.ErrDuplicateAuthSubject {
		t.Errorf("got %v, want ErrDuplicateAuthSubject", err)
	}
}

func TestStore_ByAuthSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	want := fixtures.CreateUser(ctx, "Bob")

	got, err := store.ByAuthSubject(ctx, want.AuthSubject)
	if err != nil {
		t.Fatalf("ByAuthSubject failed: %v", err)
	}
	if got.ID != want.ID || got.DisplayName != "Bob" {
		t.Errorf("got %+v", got)
	}

	if _, err := store.ByAuthSubject(ctx, "oidc|nobody"); err != mongo.ErrNoDocuments {
		t.Errorf("missing subject: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_ByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.ByID(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Before")
	u.DisplayName = "After"
	if err := store.Update(ctx, u); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.ByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.DisplayName != "After" {
		t.Errorf("DisplayName: got %q", got.DisplayName)
	}
	if got.UpdatedAt.Before(u.CreatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_All(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "One")
	fixtures.CreateUser(ctx, "Two")

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d users, want 2", len(all))
	}
}
