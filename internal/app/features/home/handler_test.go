package home_test

import (
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	"github.com/dalemusser/suggestbox/internal/app/features/home"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/suggestbox/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	sug := suggestionstore.New(db, users, testutil.NewFakeCache[[]models.Suggestion](), zap.NewNop())
	h := home.NewHandler(sug, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	// Rendering needs the booted template engine; the handler's store
	// work runs before that, which is what this exercises.
	func() {
		defer func() { _ = recover() }()
		h.ServeRoot(rec, req)
	}()
}
