package admin_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/suggestbox/internal/app/features/admin"
	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	categorystore "github.com/dalemusser/suggestbox/internal/app/store/categories"
	statusstore "github.com/dalemusser/suggestbox/internal/app/store/statuses"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/suggestbox/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) (*admin.Handler, *suggestionstore.Store) {
	t.Helper()
	users := userstore.New(db)
	sug := suggestionstore.New(db, users, testutil.NewFakeCache[[]models.Suggestion](), zap.NewNop())
	cats := categorystore.New(db, testutil.NewFakeCache[[]models.Category]())
	stats := statusstore.New(db, testutil.NewFakeCache[[]models.Status]())
	h := admin.NewHandler(sug, cats, stats, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, sug
}

func postAction(t *testing.T, h http.HandlerFunc, id, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewFormRequest(target, form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleApprove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, store := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "Approve me", author, cat)

	rec := postAction(t, h.HandleApprove, sug.ID.Hex(), "/admin/suggestions/"+sug.ID.Hex()+"/approve", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}

	got, err := store.ByID(ctx, sug.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if !got.ApprovedForRelease || got.Rejected {
		t.Errorf("flags after approve: approved=%v rejected=%v", got.ApprovedForRelease, got.Rejected)
	}
}

func TestHandleReject_ClearsApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, store := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "Reject me", author, cat, testutil.Approved())

	rec := postAction(t, h.HandleReject, sug.ID.Hex(), "/admin/suggestions/"+sug.ID.Hex()+"/reject", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}

	got, err := store.ByID(ctx, sug.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if !got.Rejected || got.ApprovedForRelease {
		t.Errorf("flags after reject: approved=%v rejected=%v", got.ApprovedForRelease, got.Rejected)
	}
}

func TestHandleArchive_RemovesFromActiveList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, store := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "Archive me", author, cat)

	rec := postAction(t, h.HandleArchive, sug.ID.Hex(), "/admin/suggestions/"+sug.ID.Hex()+"/archive", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected archived suggestion excluded from All, got %d", len(all))
	}
}

func TestHandleSetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, store := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")
	fixtures.CreateStatus(ctx, "Planned")
	sug := fixtures.CreateSuggestion(ctx, "Status me", author, cat)

	form := url.Values{
		"status":      {"Planned"},
		"owner_notes": {"On the roadmap <script>alert(1)</script>"},
	}
	rec := postAction(t, h.HandleSetStatus, sug.ID.Hex(), "/admin/suggestions/"+sug.ID.Hex()+"/status", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}

	got, err := store.ByID(ctx, sug.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Status == nil || got.Status.Name != "Planned" {
		t.Errorf("status: got %+v", got.Status)
	}
	if got.OwnerNotes == "" || got.OwnerNotes == form.Get("owner_notes") {
		t.Errorf("expected sanitized owner notes, got %q", got.OwnerNotes)
	}
}

func TestHandleSetStatus_UnknownStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	cat := fixtures.CreateCategory(ctx, "Feature")
	sug := fixtures.CreateSuggestion(ctx, "Bad status", author, cat)

	form := url.Values{"status": {"Imagined"}}
	rec := postAction(t, h.HandleSetStatus, sug.ID.Hex(), "/admin/suggestions/"+sug.ID.Hex()+"/status", form)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

func TestHandleCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"name":        {"Feature"},
		"description": {"New capability requests"},
	}
	rec := httptest.NewRecorder()
	h.HandleCreateCategory(rec, testutil.NewFormRequest("/admin/categories", form, testutil.AdminUser()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}

	n, err := db.Collection("categories").CountDocuments(ctx, map[string]any{"name": "Feature"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected category created, found %d", n)
	}
}

func TestHandleCreateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{"name": {"Completed"}}
	rec := httptest.NewRecorder()
	h.HandleCreateStatus(rec, testutil.NewFormRequest("/admin/statuses", form, testutil.AdminUser()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want 303", rec.Code)
	}

	n, err := db.Collection("statuses").CountDocuments(ctx, map[string]any{"name": "Completed"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected status created, found %d", n)
	}
}
