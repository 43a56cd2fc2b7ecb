// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"strings"
	"time"

	"github.com/convenehq/convene/internal/app/store/expand"
	"github.com/convenehq/convene/internal/app/system/verify"
	"github.com/convenehq/convene/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("groups")}
}

// ParseTags turns a comma-separated tags string into a trimmed list.
// An absent field yields an empty list, never nil.
func ParseTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Create verifies the owner exists, then inserts the group with the
// owner as its first member and reflects the membership onto the owner's
// member_groups list. The two reflection writes are idempotent
// $addToSet updates, not a transaction: a failure after the insert can
// leave the member side not yet reflected.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	if err := verify.Exists(ctx, s.db, []verify.Ref{
		{Kind: verify.KindMember, ID: g.Owner},
	}); err != nil {
		return models.Group{}, err
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	if g.Tags == nil {
		g.Tags = []string{}
	}
	g.Members = []primitive.ObjectID{g.Owner}
	g.Events = []primitive.ObjectID{}
	g.Posts = []primitive.ObjectID{}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}

	if err := s.reflectMembership(ctx, g.ID, g.Owner); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// AddMember verifies both ids exist, inserts memberID into the group's
// member set, and reflects the group onto the member's member_groups.
// Both writes use $addToSet, so repeating the call converges to the same
// state. Returns the updated group.
func (s *Store) AddMember(ctx context.Context, groupID, memberID primitive.ObjectID) (models.Group, error) {
	if err := verify.Exists(ctx, s.db, []verify.Ref{
		{Kind: verify.KindGroup, ID: groupID},
		{Kind: verify.KindMember, ID: memberID},
	}); err != nil {
		return models.Group{}, err
	}

	_, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"members": memberID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return models.Group{}, err
	}

	if err := s.reflectMembership(ctx, groupID, memberID); err != nil {
		return models.Group{}, err
	}
	return s.GetByID(ctx, groupID)
}

// reflectMembership records the group on the member's side of the edge.
func (s *Store) reflectMembership(ctx context.Context, groupID, memberID primitive.ObjectID) error {
	_, err := s.db.Collection("members").UpdateByID(ctx, memberID, bson.M{
		"$addToSet": bson.M{"member_groups": groupID},
	})
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Expanded is a group read with owner, members, events, and posts
// populated.
type Expanded struct {
	ID          primitive.ObjectID     `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	IsPublic    bool                   `json:"isPublic"`
	Tags        []string               `json:"tags"`
	Owner       models.MemberSummary   `json:"owner"`
	Members     []models.MemberSummary `json:"members"`
	Events      []models.EventSummary  `json:"events"`
	Posts       []models.PostSummary   `json:"posts"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func (s *Store) GetExpanded(ctx context.Context, id primitive.ObjectID) (Expanded, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return Expanded{}, err
	}

	members, err := expand.Members(ctx, s.db, g.Members)
	if err != nil {
		return Expanded{}, err
	}
	events, err := expand.Events(ctx, s.db, g.Events)
	if err != nil {
		return Expanded{}, err
	}
	posts, err := expand.Posts(ctx, s.db, g.Posts)
	if err != nil {
		return Expanded{}, err
	}
	owners, err := expand.Members(ctx, s.db, []primitive.ObjectID{g.Owner})
	if err != nil {
		return Expanded{}, err
	}

	out := Expanded{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		IsPublic:    g.IsPublic,
		Tags:        g.Tags,
		Members:     members,
		Events:      events,
		Posts:       posts,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if len(owners) > 0 {
		out.Owner = owners[0]
	}
	if out.Members == nil {
		out.Members = []models.MemberSummary{}
	}
	if out.Events == nil {
		out.Events = []models.EventSummary{}
	}
	if out.Posts == nil {
		out.Posts = []models.PostSummary{}
	}
	return out, nil
}
