// internal/app/features/events/handler.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/convenehq/convene/internal/app/features/shared"
	eventstore "github.com/convenehq/convene/internal/app/store/events"
	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/inputval"
	"github.com/convenehq/convene/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Events. Event creation lives
// under the groups feature because the route is group-scoped.
type Handler struct {
	Log    *zap.Logger
	Rules  inputval.Rules
	Events *eventstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Rules:  inputval.Default(),
		Events: eventstore.New(db),
	}
}

// Get handles GET /events/{id} with group, creator, invitees, attendees,
// and posts expanded.
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

	out, err := h.Events.GetExpanded(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Write(w, r, h.Log, apierr.NotFound("event", id.Hex()))
			return
		}
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

// AddInvitee handles POST /events/{eventId}/invitees. Inviting a member
// twice leaves a single invitees entry.
func (h *Handler) AddInvitee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, ok := h.checkMove(w, r)
	if !ok {
		return
	}

	eventID, _ := primitive.ObjectIDFromHex(req.Params["eventId"])
	memberID, _ := primitive.ObjectIDFromHex(req.Body["memberId"])

	updated, err := h.Events.AddInvitee(ctx, eventID, memberID)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

// AddAttendee handles POST /events/{eventId}/attendees. The member must
// currently be an invitee; the move removes the invitation and records
// attendance.
func (h *Handler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, ok := h.checkMove(w, r)
	if !ok {
		return
	}

	eventID, _ := primitive.ObjectIDFromHex(req.Params["eventId"])
	memberID, _ := primitive.ObjectIDFromHex(req.Body["memberId"])

	updated, err := h.Events.MoveInviteeToAttendee(ctx, eventID, memberID)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

// checkMove validates the shared shape of the invitee/attendee routes:
// an eventId path param and a memberId body field.
func (h *Handler) checkMove(w http.ResponseWriter, r *http.Request) (inputval.Request, bool) {
	body, err := shared.BodyValues(r)
	if err != nil {
		apierr.Write(w, r, h.Log, shared.MalformedBody())
		return inputval.Request{}, false
	}

	req, verr := inputval.Check(h.Rules, inputval.Request{
		Params: shared.ParamValues(r, "eventId"),
		Body:   body,
	}, inputval.Spec{
		Params: []inputval.Field{inputval.F("eventId")},
		Body:   []inputval.Field{inputval.F("memberId")},
	})
	if verr != nil {
		apierr.Write(w, r, h.Log, verr)
		return inputval.Request{}, false
	}
	return req, true
}
