// internal/app/features/members/handler.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/convenehq/convene/internal/app/features/shared"
	memberstore "github.com/convenehq/convene/internal/app/store/members"
	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/htmlsanitize"
	"github.com/convenehq/convene/internal/app/system/inputval"
	"github.com/convenehq/convene/internal/app/system/timeouts"
	"github.com/convenehq/convene/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Members.
type Handler struct {
	Log     *zap.Logger
	Rules   inputval.Rules
	Members *memberstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		Rules:   inputval.Default(),
		Members: memberstore.New(db),
	}
}

// Create handles POST /members.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return
	}

	// Sanitize before validating so a markup-only name fails the
	// non-empty rule instead of reaching the store as "".
	body["name"] = htmlsanitize.SanitizeStrict(body["name"])

	req, verr := inputval.Check(h.Rules, inputval.Request{Body: body}, inputval.Spec{
		Body: []inputval.Field{inputval.F("name"), inputval.F("email")},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}

	created, err := h.Members.Create(ctx, models.Member{
		Name:  req.Body["name"],
		Email: req.Body["email"],
	})
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /members/{id} and returns the member with its
// reference lists expanded.
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

	out, err := h.Members.GetExpanded(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Write(w, r, h.Log, apierr.NotFound("member", id.Hex()))
			return
		}
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
