// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns the group endpoints, mounted under /groups.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{groupId}/members", h.AddMember)
	r.Post("/{groupId}/members/{memberId}/events", h.CreateEvent)
	return r
}
