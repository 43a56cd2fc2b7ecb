// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/convenehq/convene/internal/app/features/shared"
	eventstore "github.com/convenehq/convene/internal/app/store/events"
	groupstore "github.com/convenehq/convene/internal/app/store/groups"
	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/htmlsanitize"
	"github.com/convenehq/convene/internal/app/system/inputval"
	"github.com/convenehq/convene/internal/app/system/timeouts"
	"github.com/convenehq/convene/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Groups. It also owns the
// nested event-creation route, which lives under a group path.
type Handler struct {
	Log    *zap.Logger
	Rules  inputval.Rules
	Groups *groupstore.Store
	Events *eventstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Rules:  inputval.Default(),
		Groups: groupstore.New(db),
		Events: eventstore.New(db),
	}
}

// Create handles POST /groups. The owner is verified and becomes the
// first member of the new group.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return
	}

	// Sanitize before validating so a markup-only name fails the
	// non-empty rule instead of reaching the store as "".
	body["name"] = htmlsanitize.SanitizeStrict(body["name"])
	body["description"] = htmlsanitize.Sanitize(body["description"])

	req, verr := inputval.Check(h.Rules, inputval.Request{Body: body}, inputval.Spec{
		Body: []inputval.Field{
			inputval.F("name"),
			inputval.F("owner"),
			inputval.Opt("description"),
			inputval.Opt("tags"),
			inputval.Opt("isPublic"),
		},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}

	owner, _ := primitive.ObjectIDFromHex(req.Body["owner"])
	isPublic := true
	if v := req.Body["isPublic"]; v != "" {
		isPublic, _ = strconv.ParseBool(v)
	}

	created, err := h.Groups.Create(ctx, models.Group{
		Name:        req.Body["name"],
		Description: req.Body["description"],
		IsPublic:    isPublic,
		Tags:        groupstore.ParseTags(req.Body["tags"]),
		Owner:       owner,
	})
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /groups/{id} with members, events, and posts expanded.
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

	out, err := h.Groups.GetExpanded(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Write(w, r, h.Log, apierr.NotFound("group", id.Hex()))
			return
		}
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

// AddMember handles POST /groups/{groupId}/members. Adding a member who
// already belongs is a no-op on both sides of the edge.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return
	}

	req, verr := inputval.Check(h.Rules, inputval.Request{
		Params: shared.ParamValues(r, "groupId"),
		Body:   body,
	}, inputval.Spec{
		Params: []inputval.Field{inputval.F("groupId")},
		Body:   []inputval.Field{inputval.F("memberId")},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}

	groupID, _ := primitive.ObjectIDFromHex(req.Params["groupId"])
	memberID, _ := primitive.ObjectIDFromHex(req.Body["memberId"])

	updated, err := h.Groups.AddMember(ctx, groupID, memberID)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

// CreateEvent handles POST /groups/{groupId}/members/{memberId}/events.
// The path member is the event's creator; invitees come from the body as
// a comma-separated id list or a JSON string array.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return
	}

	body["name"] = htmlsanitize.SanitizeStrict(body["name"])

	req, verr := inputval.Check(h.Rules, inputval.Request{
		Params: shared.ParamValues(r, "groupId", "memberId"),
		Body:   body,
	}, inputval.Spec{
		Params: []inputval.Field{inputval.F("groupId"), inputval.F("memberId")},
		Body: []inputval.Field{
			inputval.F("name"),
			inputval.F("startDate"),
			inputval.F("endDate"),
			inputval.Opt("invitees"),
		},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return
	}

	groupID, _ := primitive.ObjectIDFromHex(req.Params["groupId"])
	creatorID, _ := primitive.ObjectIDFromHex(req.Params["memberId"])
	startDate, _ := inputval.ParseDate(req.Body["startDate"])
	endDate, _ := inputval.ParseDate(req.Body["endDate"])
	invitees, _ := inputval.ParseObjectIDList(req.Body["invitees"])

	created, err := h.Events.Create(ctx, models.Event{
		Name:      req.Body["name"],
		Group:     groupID,
		Creator:   creatorID,
		Invitees:  invitees,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}
