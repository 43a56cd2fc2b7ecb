// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// Routes returns the event endpoints, mounted under /events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.Get)
	r.Post("/{eventId}/invitees", h.AddInvitee)
	r.Post("/{eventId}/attendees", h.AddAttendee)
	return r
}
