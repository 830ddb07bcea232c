// internal/app/features/suggestions/routes.go
package suggestions

import (
	"github.com/dalemusser/suggestbox/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/new", h.ServeNewForm)
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.ServeMine)
		pr.Post("/{id}/vote", h.HandleVote)
	})

	return r
}
