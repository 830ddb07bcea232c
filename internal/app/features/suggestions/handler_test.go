package suggestions_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	"github.com/dalemusser/suggestbox/internal/app/features/suggestions"
	categorystore "github.com/dalemusser/suggestbox/internal/app/store/categories"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/suggestbox/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) (*suggestions.Handler, *suggestionstore.Store, *userstore.Store) {
	t.Helper()
	users := userstore.New(db)
	sug := suggestionstore.New(db, users, testutil.NewFakeCache[[]models.Suggestion](), zap.NewNop())
	cats := categorystore.New(db, testutil.NewFakeCache[[]models.Category]())
	h := suggestions.NewHandler(sug, users, cats, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, sug, users
}

func asTestUser(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:          u.ID.Hex(),
		Name:        u.DisplayName,
		AuthSubject: u.AuthSubject,
		Role:        u.Role,
	}
}

func TestHandleVote_TogglesAndRedirects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SkipIfNoTransactions(t, db)
	h, store, _ := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	voter := fixtures.CreateUser(ctx, "Voter")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "Vote via handler", author, cat)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/suggestions/"+sug.ID.Hex()+"/vote", asTestUser(voter))
	req = testutil.WithChiURLParam(req, "id", sug.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleVote(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/suggestions/"+sug.ID.Hex() {
		t.Errorf("redirect location: got %q", loc)
	}

	got, err := store.ByID(ctx, sug.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if !got.HasVoted(voter.ID) {
		t.Error("expected vote recorded")
	}
}

func TestHandleVote_HTMXRedirect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SkipIfNoTransactions(t, db)
	h, _, _ := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	voter := fixtures.CreateUser(ctx, "Voter")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "HTMX vote", author, cat)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/suggestions/"+sug.ID.Hex()+"/vote", asTestUser(voter))
	req = testutil.WithChiURLParam(req, "id", sug.ID.Hex())
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleVote(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") == "" {
		t.Error("expected HX-Redirect header")
	}
}

func TestHandleVote_Anonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _, _ := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "No anonymous votes", author, cat)

	req := testutil.NewRequest(http.MethodPost, "/suggestions/"+sug.ID.Hex()+"/vote")
	req = testutil.WithChiURLParam(req, "id", sug.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleVote(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}

func TestHandleCreate_CreatesAndRedirects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SkipIfNoTransactions(t, db)
	h, store, users := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")

	form := url.Values{
		"title":       {"Better search"},
		"description": {"<p>Search should handle typos</p><script>alert(1)</script>"},
		"category_id": {cat.ID.Hex()},
	}
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/suggestions", form, asTestUser(author)))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/suggestions/") {
		t.Fatalf("redirect location: got %q", loc)
	}

	created, err := store.ByAuthor(ctx, author.ID)
	if err != nil {
		t.Fatalf("ByAuthor failed: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(created))
	}
	if created[0].Title != "Better search" {
		t.Errorf("Title: got %q", created[0].Title)
	}
	if strings.Contains(created[0].Description, "<script>") {
		t.Error("expected description sanitized")
	}

	u, err := users.ByID(ctx, author.ID)
	if err != nil {
		t.Fatalf("user ByID failed: %v", err)
	}
	if len(u.AuthoredSuggestions) != 1 {
		t.Errorf("authored list: got %d entries, want 1", len(u.AuthoredSuggestions))
	}
}

func TestHandleCreate_Anonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _, _ := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cat := fixtures.CreateCategory(ctx, "Feature")

	form := url.Values{
		"title":       {"Sneaky"},
		"category_id": {cat.ID.Hex()},
	}
	req := httptest.NewRequest(http.MethodPost, "/suggestions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}

func TestServeDetail_BadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _, _ := newTestHandler(t, db)

	req := testutil.NewRequest(http.MethodGet, "/suggestions/not-an-id")
	req = testutil.WithChiURLParam(req, "id", "not-an-id")
	rec := httptest.NewRecorder()

	// Rendering the not-found page needs the template engine; the
	// status code is written first, which is what we assert on.
	func() {
		defer func() { _ = recover() }()
		h.ServeDetail(rec, req)
	}()

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestHandleVote_MissingSuggestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SkipIfNoTransactions(t, db)
	h, _, _ := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	voter := fixtures.CreateUser(ctx, "Voter")
	missing := primitive.NewObjectID()

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/suggestions/"+missing.Hex()+"/vote", asTestUser(voter))
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	rec := httptest.NewRecorder()

	// Rendering the not-found page needs the template engine; the
	// status code is written first, which is what we assert on.
	func() {
		defer func() { _ = recover() }()
		h.HandleVote(rec, req)
	}()

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
