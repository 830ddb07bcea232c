// internal/app/features/suggestions/handler.go
package suggestions

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	categorystore "github.com/dalemusser/suggestbox/internal/app/store/categories"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/app/system/auth"
	"github.com/dalemusser/suggestbox/internal/app/system/htmlsanitize"
	"github.com/dalemusser/suggestbox/internal/app/system/timeouts"
	"github.com/dalemusser/suggestbox/internal/app/system/viewdata"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public suggestion pages: browsing, submitting, and
// voting.
type Handler struct {
	Suggestions *suggestionstore.Store
	Users       *userstore.Store
	Categories  *categorystore.Store
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(sug *suggestionstore.Store, users *userstore.Store, cats *categorystore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Suggestions: sug,
		Users:       users,
		Categories:  cats,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// listItemVM is one row in a suggestion list.
type listItemVM struct {
	ID       string
	Title    string
	Category string
	Author   string
	Status   string
	Votes    int
	HasVoted bool
}

func newListItem(s models.Suggestion, viewerID primitive.ObjectID, signedIn bool) listItemVM {
	vm := listItemVM{
		ID:       s.ID.Hex(),
		Title:    s.Title,
		Category: s.Category.Name,
		Author:   s.Author.DisplayName,
		Votes:    s.VoteCount(),
	}
	if s.Status != nil {
		vm.Status = s.Status.Name
	}
	if signedIn {
		vm.HasVoted = s.HasVoted(viewerID)
	}
	return vm
}

// viewerID extracts the signed-in user's ObjectID from the session, if any.
func viewerID(r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /suggestions – approved list                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Suggestions.Approved(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading suggestions", err)
		return
	}

	uid, signedIn := viewerID(r)
	rows := make([]listItemVM, 0, len(items))
	for _, s := range items {
		rows = append(rows, newListItem(s, uid, signedIn))
	}

	data := struct {
		viewdata.BaseVM
		Suggestions []listItemVM
	}{
		BaseVM:      viewdata.NewBaseVM(r, "Suggestions", "/"),
		Suggestions: rows,
	}
	templates.Render(w, r, "suggestions_list", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /suggestions/{id} – detail                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "That suggestion does not exist.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	s, err := h.Suggestions.ByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "That suggestion does not exist.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "loading suggestion", err)
		return
	}

	uid, signedIn := viewerID(r)

	data := struct {
		viewdata.BaseVM
		Item        listItemVM
		Description template.HTML
		OwnerNotes  template.HTML
		Archived    bool
	}{
		BaseVM:      viewdata.NewBaseVM(r, s.Title, "/suggestions"),
		Item:        newListItem(*s, uid, signedIn),
		Description: htmlsanitize.PrepareForDisplay(s.Description),
		OwnerNotes:  htmlsanitize.PrepareForDisplay(s.OwnerNotes),
		Archived:    s.Archived,
	}
	templates.Render(w, r, "suggestion_detail", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /suggestions/new + POST /suggestions – submit                           |
*─────────────────────────────────────────────────────────────────────────────*/

type newFormData struct {
	viewdata.BaseVM
	Categories []models.Category
	Error      string
	Title      string
	Desc       string
}

func (h *Handler) ServeNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderNewForm(w, r, newFormData{})
}

func (h *Handler) renderNewForm(w http.ResponseWriter, r *http.Request, data newFormData) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := h.Categories.All(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading categories", err)
		return
	}

	data.BaseVM = viewdata.NewBaseVM(r, "New suggestion", "/suggestions")
	data.Categories = cats
	templates.Render(w, r, "suggestion_new", data)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(htmlsanitize.Sanitize(r.PostFormValue("title")))
	desc := strings.TrimSpace(htmlsanitize.Sanitize(r.PostFormValue("description")))
	catID := r.PostFormValue("category_id")

	if title == "" {
		h.renderNewForm(w, r, newFormData{Error: "A title is required.", Desc: desc})
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(catID)
	if err != nil {
		h.renderNewForm(w, r, newFormData{Error: "Pick a category.", Title: title, Desc: desc})
		return
	}

	uid, ok := viewerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.Categories.ByID(ctx, categoryID)
	if err == mongo.ErrNoDocuments {
		h.renderNewForm(w, r, newFormData{Error: "Pick a category.", Title: title, Desc: desc})
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "loading category", err)
		return
	}

	author, err := h.Users.ByID(ctx, uid)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading author", err)
		return
	}

	created, err := h.Suggestions.Create(ctx, models.Suggestion{
		Title:       title,
		Description: desc,
		Category:    *cat,
		Author:      models.NewBasicUser(*author),
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "creating suggestion", err)
		return
	}

	h.Log.Info("suggestion created",
		zap.String("suggestion_id", created.ID.Hex()),
		zap.String("author_id", uid.Hex()))

	http.Redirect(w, r, "/suggestions/"+created.ID.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /suggestions/{id}/vote – toggle vote                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "That suggestion does not exist.")
		return
	}

	uid, ok := viewerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	voted, err := h.Suggestions.ToggleVote(ctx, id, uid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "That suggestion does not exist.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "toggling vote", err)
		return
	}

	h.Log.Info("vote toggled",
		zap.String("suggestion_id", id.Hex()),
		zap.String("user_id", uid.Hex()),
		zap.Bool("voted", voted))

	target := "/suggestions/" + id.Hex()
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /suggestions/mine – authored and voted-on lists                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	uid, ok := viewerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	authored, err := h.Suggestions.ByAuthor(ctx, uid)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading authored suggestions", err)
		return
	}

	// The voted-on list comes from the user document's embedded
	// projections, not a suggestion query.
	user, err := h.Users.ByID(ctx, uid)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading user", err)
		return
	}

	rows := make([]listItemVM, 0, len(authored))
	for _, s := range authored {
		rows = append(rows, newListItem(s, uid, true))
	}

	data := struct {
		viewdata.BaseVM
		Authored []listItemVM
		VotedOn  []models.BasicSuggestion
	}{
		BaseVM:   viewdata.NewBaseVM(r, "My suggestions", "/suggestions"),
		Authored: rows,
		VotedOn:  user.VotedOnSuggestions,
	}
	templates.Render(w, r, "suggestions_mine", data)
}
