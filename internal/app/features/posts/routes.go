// internal/app/features/posts/routes.go
package posts

import "github.com/go-chi/chi/v5"

// Routes returns the post endpoints, mounted under /posts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{postId}/replies", h.CreateReply)
	return r
}
