package home

import (
	"context"
	"net/http"
	"sort"

	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
	"github.com/dalemusser/suggestbox/internal/app/system/timeouts"
	"github.com/dalemusser/suggestbox/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// topCount limits how many suggestions the landing page shows.
const topCount = 5

// Handler serves the landing page.
type Handler struct {
	Suggestions *suggestionstore.Store
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(sug *suggestionstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Suggestions: sug,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// topVM is a landing-page row.
type topVM struct {
	ID    string
	Title string
	Votes int
}

// ServeRoot handles GET /: a short intro plus the most-voted approved
// suggestions.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	approved, err := h.Suggestions.Approved(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading suggestions", err)
		return
	}

	sort.Slice(approved, func(i, j int) bool {
		return approved[i].VoteCount() > approved[j].VoteCount()
	})
	if len(approved) > topCount {
		approved = approved[:topCount]
	}

	top := make([]topVM, 0, len(approved))
	for _, s := range approved {
		top = append(top, topVM{ID: s.ID.Hex(), Title: s.Title, Votes: s.VoteCount()})
	}

	data := struct {
		viewdata.BaseVM
		Top []topVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
		Top:    top,
	}
	templates.Render(w, r, "home", data)
}
