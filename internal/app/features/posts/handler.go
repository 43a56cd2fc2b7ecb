// internal/app/features/posts/handler.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"github.com/convenehq/convene/internal/app/features/shared"
	poststore "github.com/convenehq/convene/internal/app/store/posts"
	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/htmlsanitize"
	"github.com/convenehq/convene/internal/app/system/inputval"
	"github.com/convenehq/convene/internal/app/system/timeouts"
	"github.com/convenehq/convene/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Posts.
type Handler struct {
	Log   *zap.Logger
	Rules inputval.Rules
	Posts *poststore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Rules: inputval.Default(),
		Posts: poststore.New(db),
	}
}

// Create handles POST /posts. A post may be attached to a group, an
// event, both, or neither; every referenced id is verified first.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return
	}

	// Sanitize before validating so markup-only name/text fail the
	// non-empty rule instead of reaching the store as "".
	body["name"] = htmlsanitize.SanitizeStrict(body["name"])
	body["text"] = htmlsanitize.Sanitize(body["text"])

	req, verr := inputval.Check(h.Rules, inputval.Request{Body: body}, inputval.Spec{
		Body: []inputval.Field{
			inputval.F("name"),
			inputval.F("text"),
			inputval.F("memberId"),
			inputval.Opt("groupId"),
			inputval.Opt("eventId"),
		},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}

	owner, _ := primitive.ObjectIDFromHex(req.Body["memberId"])
	post := models.Post{
		Name:  req.Body["name"],
		Text:  req.Body["text"],
		Owner: owner,
	}
	if v := req.Body["groupId"]; v != "" {
		id, _ := primitive.ObjectIDFromHex(v)
		post.Group = &id
	}
	if v := req.Body["eventId"]; v != "" {
		id, _ := primitive.ObjectIDFromHex(v)
		post.Event = &id
	}

	created, err := h.Posts.Create(ctx, post)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /posts/{id} with the owner and one level of replies
// expanded.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	req, verr := inputval.Check(h.Rules, inputval.Request{Params: shared.ParamValues(r, "id")}, inputval.Spec{
		Params: []inputval.Field{inputval.F("id")},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}
	id, _ := primitive.ObjectIDFromHex(req.Params["id"])

	out, err := h.Posts.GetExpanded(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Write(w, r, h.Log, apierr.NotFound("post", id.Hex()))
			return
		}
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

// CreateReply handles POST /posts/{postId}/replies. The reply is a post
// in its own right, appended to the parent's replies list.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return
	}

	body["name"] = htmlsanitize.SanitizeStrict(body["name"])
	body["text"] = htmlsanitize.Sanitize(body["text"])

	req, verr := inputval.Check(h.Rules, inputval.Request{
		Params: shared.ParamValues(r, "postId"),
		Body:   body,
	}, inputval.Spec{
		Params: []inputval.Field{inputval.F("postId")},
		Body: []inputval.Field{
			inputval.F("name"),
			inputval.F("text"),
			inputval.F("memberId"),
		},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}

	parentID, _ := primitive.ObjectIDFromHex(req.Params["postId"])
	owner, _ := primitive.ObjectIDFromHex(req.Body["memberId"])

	created, err := h.Posts.CreateReply(ctx, parentID, models.Post{
		Name:  req.Body["name"],
		Text:  req.Body["text"],
		Owner: owner,
	})
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}
