// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"time"

	"github.com/convenehq/convene/internal/app/store/expand"
	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/verify"
	"github.com/convenehq/convene/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("events")}
}

// Create verifies the group, the creator, and every invitee exist, then
// inserts the event and reflects it onto the group's events list and the
// creator's member_events list.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	refs := []verify.Ref{
		{Kind: verify.KindGroup, ID: e.Group},
		{Kind: verify.KindMember, ID: e.Creator},
	}
	for _, inv := range e.Invitees {
		refs = append(refs, verify.Ref{Kind: verify.KindMember, ID: inv})
	}
	if err := verify.Exists(ctx, s.db, refs); err != nil {
		return models.Event{}, err
	}

	e.ID = primitive.NewObjectID()
	if e.Invitees == nil {
		e.Invitees = []primitive.ObjectID{}
	}
	e.Attendees = []primitive.ObjectID{}
	e.Posts = []primitive.ObjectID{}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}

	if _, err := s.db.Collection("groups").UpdateByID(ctx, e.Group, bson.M{
		"$addToSet": bson.M{"events": e.ID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}); err != nil {
		return models.Event{}, err
	}
	if _, err := s.db.Collection("members").UpdateByID(ctx, e.Creator, bson.M{
		"$addToSet": bson.M{"member_events": e.ID},
	}); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// AddInvitee verifies both ids exist and inserts memberID into the
// event's invitee set. Returns the updated event.
func (s *Store) AddInvitee(ctx context.Context, eventID, memberID primitive.ObjectID) (models.Event, error) {
	if err := verify.Exists(ctx, s.db, []verify.Ref{
		{Kind: verify.KindEvent, ID: eventID},
		{Kind: verify.KindMember, ID: memberID},
	}); err != nil {
		return models.Event{}, err
	}

	if _, err := s.c.UpdateByID(ctx, eventID, bson.M{
		"$addToSet": bson.M{"invitees": memberID},
	}); err != nil {
		return models.Event{}, err
	}
	return s.GetByID(ctx, eventID)
}

// MoveInviteeToAttendee moves memberID from the invitee list to the
// attendee list as one logical step: the member is removed from
// invitees, appended to attendees, and the whole document rewritten. It
// fails with a NotFoundError when the member is not currently invited.
func (s *Store) MoveInviteeToAttendee(ctx context.Context, eventID, memberID primitive.ObjectID) (models.Event, error) {
	if err := verify.Exists(ctx, s.db, []verify.Ref{
		{Kind: verify.KindEvent, ID: eventID},
		{Kind: verify.KindMember, ID: memberID},
	}); err != nil {
		return models.Event{}, err
	}

	e, err := s.GetByID(ctx, eventID)
	if err != nil {
		return models.Event{}, err
	}

	invited := false
	remaining := make([]primitive.ObjectID, 0, len(e.Invitees))
	for _, id := range e.Invitees {
		if id == memberID {
			invited = true
			continue
		}
		remaining = append(remaining, id)
	}
	if !invited {
		return models.Event{}, apierr.NotFound("invitee", memberID.Hex())
	}

	e.Invitees = remaining
	already := false
	for _, id := range e.Attendees {
		if id == memberID {
			already = true
			break
		}
	}
	if !already {
		e.Attendees = append(e.Attendees, memberID)
	}

	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": e.ID}, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Expanded is an event read with group, creator, invitees, attendees,
// and posts populated. Posts carry one level of replies.
type Expanded struct {
	ID        primitive.ObjectID     `json:"id"`
	Name      string                 `json:"name"`
	Group     models.GroupSummary    `json:"group"`
	Creator   models.MemberSummary   `json:"creator"`
	Invitees  []models.MemberSummary `json:"invitees"`
	Attendees []models.MemberSummary `json:"attendees"`
	Posts     []models.PostThread    `json:"posts"`
	StartDate time.Time              `json:"startDate"`
	EndDate   time.Time              `json:"endDate"`
}

func (s *Store) GetExpanded(ctx context.Context, id primitive.ObjectID) (Expanded, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return Expanded{}, err
	}

	groups, err := expand.Groups(ctx, s.db, []primitive.ObjectID{e.Group})
	if err != nil {
		return Expanded{}, err
	}
	creators, err := expand.Members(ctx, s.db, []primitive.ObjectID{e.Creator})
	if err != nil {
		return Expanded{}, err
	}
	invitees, err := expand.Members(ctx, s.db, e.Invitees)
	if err != nil {
		return Expanded{}, err
	}
	attendees, err := expand.Members(ctx, s.db, e.Attendees)
	if err != nil {
		return Expanded{}, err
	}
	posts, err := expand.PostThreads(ctx, s.db, e.Posts)
	if err != nil {
		return Expanded{}, err
	}

	out := Expanded{
		ID:        e.ID,
		Name:      e.Name,
		Invitees:  invitees,
		Attendees: attendees,
		Posts:     posts,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	}
	if len(groups) > 0 {
		out.Group = groups[0]
	}
	if len(creators) > 0 {
		out.Creator = creators[0]
	}
	if out.Invitees == nil {
		out.Invitees = []models.MemberSummary{}
	}
	if out.Attendees == nil {
		out.Attendees = []models.MemberSummary{}
	}
	if out.Posts == nil {
		out.Posts = []models.PostThread{}
	}
	return out, nil
}
