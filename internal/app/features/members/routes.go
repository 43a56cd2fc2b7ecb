// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns the member endpoints, mounted under /members.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	return r
}
