// internal/app/features/admin/handler.go

// Package admin serves the triage pages: the awaiting-approval queue,
// approve/reject/archive actions, status assignment, and maintenance of
// the category and status lookup lists.
package admin

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	categorystore "github.com/dalemusser/suggestbox/internal/app/store/categories"
	statusstore "github.com/dalemusser/suggestbox/internal/app/store/statuses"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
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

type Handler struct {
	Suggestions *suggestionstore.Store
	Categories  *categorystore.Store
	Statuses    *statusstore.Store
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(sug *suggestionstore.Store, cats *categorystore.Store, stats *statusstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Suggestions: sug,
		Categories:  cats,
		Statuses:    stats,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// queueRowVM is one suggestion in the triage queue.
type queueRowVM struct {
	ID       string
	Title    string
	Category string
	Author   string
	Status   string
	Votes    int
	Approved bool
	Rejected bool
}

func newQueueRow(s models.Suggestion) queueRowVM {
	vm := queueRowVM{
		ID:       s.ID.Hex(),
		Title:    s.Title,
		Category: s.Category.Name,
		Author:   s.Author.DisplayName,
		Votes:    s.VoteCount(),
		Approved: s.ApprovedForRelease,
		Rejected: s.Rejected,
	}
	if s.Status != nil {
		vm.Status = s.Status.Name
	}
	return vm
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/suggestions – triage queue                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	waiting, err := h.Suggestions.AwaitingApproval(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading triage queue", err)
		return
	}

	all, err := h.Suggestions.All(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading suggestions", err)
		return
	}

	statuses, err := h.Statuses.All(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading statuses", err)
		return
	}

	waitingRows := make([]queueRowVM, 0, len(waiting))
	for _, s := range waiting {
		waitingRows = append(waitingRows, newQueueRow(s))
	}
	allRows := make([]queueRowVM, 0, len(all))
	for _, s := range all {
		allRows = append(allRows, newQueueRow(s))
	}

	data := struct {
		viewdata.BaseVM
		Waiting  []queueRowVM
		All      []queueRowVM
		Statuses []models.Status
	}{
		BaseVM:   viewdata.NewBaseVM(r, "Triage queue", "/"),
		Waiting:  waitingRows,
		All:      allRows,
		Statuses: statuses,
	}
	templates.Render(w, r, "admin_queue", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/suggestions/{id}/(approve|reject|archive|status)                |
*─────────────────────────────────────────────────────────────────────────────*/

// loadSuggestion resolves the {id} URL parameter. A nil return means a
// response has already been written.
func (h *Handler) loadSuggestion(ctx context.Context, w http.ResponseWriter, r *http.Request) *models.Suggestion {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "That suggestion does not exist.")
		return nil
	}

	s, err := h.Suggestions.ByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "That suggestion does not exist.")
		return nil
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "loading suggestion", err)
		return nil
	}
	return s
}

func (h *Handler) update(ctx context.Context, w http.ResponseWriter, r *http.Request, s models.Suggestion, action string) {
	if err := h.Suggestions.Update(ctx, s); err != nil {
		h.ErrLog.Internal(w, r, "updating suggestion", err)
		return
	}

	h.Log.Info("suggestion "+action,
		zap.String("suggestion_id", s.ID.Hex()))

	http.Redirect(w, r, "/admin/suggestions", http.StatusSeeOther)
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	s := h.loadSuggestion(ctx, w, r)
	if s == nil {
		return
	}
	s.ApprovedForRelease = true
	s.Rejected = false
	h.update(ctx, w, r, *s, "approved")
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	s := h.loadSuggestion(ctx, w, r)
	if s == nil {
		return
	}
	s.Rejected = true
	s.ApprovedForRelease = false
	h.update(ctx, w, r, *s, "rejected")
}

func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	s := h.loadSuggestion(ctx, w, r)
	if s == nil {
		return
	}
	s.Archived = true
	h.update(ctx, w, r, *s, "archived")
}

// HandleSetStatus assigns a lookup status and optional owner notes.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	s := h.loadSuggestion(ctx, w, r)
	if s == nil {
		return
	}

	statusName := strings.TrimSpace(r.PostFormValue("status"))
	if statusName != "" {
		st, err := h.Statuses.ByName(ctx, statusName)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
		if err != nil {
			h.ErrLog.Internal(w, r, "loading status", err)
			return
		}
		s.Status = st
	}

	if notes := strings.TrimSpace(r.PostFormValue("owner_notes")); notes != "" {
		s.OwnerNotes = htmlsanitize.Sanitize(notes)
	}

	h.update(ctx, w, r, *s, "status set")
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /admin/(categories|statuses) – lookup list maintenance             |
*─────────────────────────────────────────────────────────────────────────────*/

type lookupPageData struct {
	viewdata.BaseVM
	Heading string
	Action  string
	Items   []lookupItemVM
	Error   string
}

type lookupItemVM struct {
	Name        string
	Description string
}

func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, "")
}

func (h *Handler) renderCategories(w http.ResponseWriter, r *http.Request, formError string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := h.Categories.All(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading categories", err)
		return
	}

	items := make([]lookupItemVM, 0, len(cats))
	for _, c := range cats {
		items = append(items, lookupItemVM{Name: c.Name, Description: c.Description})
	}

	templates.Render(w, r, "admin_lookup", lookupPageData{
		BaseVM:  viewdata.NewBaseVM(r, "Categories", "/admin/suggestions"),
		Heading: "Categories",
		Action:  "/admin/categories",
		Items:   items,
		Error:   formError,
	})
}

func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		h.renderCategories(w, r, "A name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.Categories.Create(ctx, models.Category{
		Name:        name,
		Description: strings.TrimSpace(r.PostFormValue("description")),
	})
	if err == categorystore.ErrDuplicateName {
		h.renderCategories(w, r, "That category already exists.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "creating category", err)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (h *Handler) ServeStatuses(w http.ResponseWriter, r *http.Request) {
	h.renderStatuses(w, r, "")
}

func (h *Handler) renderStatuses(w http.ResponseWriter, r *http.Request, formError string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	stats, err := h.Statuses.All(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "loading statuses", err)
		return
	}

	items := make([]lookupItemVM, 0, len(stats))
	for _, s := range stats {
		items = append(items, lookupItemVM{Name: s.Name, Description: s.Description})
	}

	templates.Render(w, r, "admin_lookup", lookupPageData{
		BaseVM:  viewdata.NewBaseVM(r, "Statuses", "/admin/suggestions"),
		Heading: "Statuses",
		Action:  "/admin/statuses",
		Items:   items,
		Error:   formError,
	})
}

func (h *Handler) HandleCreateStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		h.renderStatuses(w, r, "A name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.Statuses.Create(ctx, models.Status{
		Name:        name,
		Description: strings.TrimSpace(r.PostFormValue("description")),
	})
	if err == statusstore.ErrDuplicateName {
		h.renderStatuses(w, r, "That status already exists.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "creating status", err)
		return
	}

	http.Redirect(w, r, "/admin/statuses", http.StatusSeeOther)
}
