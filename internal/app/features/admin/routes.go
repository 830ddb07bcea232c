// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/suggestbox/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin subrouter. Every route requires the admin
// role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireRole("admin"))

	r.Get("/suggestions", h.ServeQueue)
	r.Post("/suggestions/{id}/approve", h.HandleApprove)
	r.Post("/suggestions/{id}/reject", h.HandleReject)
	r.Post("/suggestions/{id}/archive", h.HandleArchive)
	r.Post("/suggestions/{id}/status", h.HandleSetStatus)

	r.Get("/categories", h.ServeCategories)
	r.Post("/categories", h.HandleCreateCategory)
	r.Get("/statuses", h.ServeStatuses)
	r.Post("/statuses", h.HandleCreateStatus)

	return r
}
