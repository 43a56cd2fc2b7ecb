// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"time"

	"github.com/convenehq/convene/internal/app/store/expand"
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
	return &Store{db: db, c: db.Collection("posts")}
}

// Create verifies the owner and any group/event the post is attached to,
// inserts the post, and reflects it onto the owner's member_posts and
// the group's/event's posts lists.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	refs := []verify.Ref{{Kind: verify.KindMember, ID: p.Owner}}
	if p.Group != nil {
		refs = append(refs, verify.Ref{Kind: verify.KindGroup, ID: *p.Group})
	}
	if p.Event != nil {
		refs = append(refs, verify.Ref{Kind: verify.KindEvent, ID: *p.Event})
	}
	if err := verify.Exists(ctx, s.db, refs); err != nil {
		return models.Post{}, err
	}

	p.ID = primitive.NewObjectID()
	p.Replies = []primitive.ObjectID{}
	p.PostedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}

	if _, err := s.db.Collection("members").UpdateByID(ctx, p.Owner, bson.M{
		"$addToSet": bson.M{"member_posts": p.ID},
	}); err != nil {
		return models.Post{}, err
	}
	if p.Group != nil {
		if _, err := s.db.Collection("groups").UpdateByID(ctx, *p.Group, bson.M{
			"$addToSet": bson.M{"posts": p.ID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		}); err != nil {
			return models.Post{}, err
		}
	}
	if p.Event != nil {
		if _, err := s.db.Collection("events").UpdateByID(ctx, *p.Event, bson.M{
			"$addToSet": bson.M{"posts": p.ID},
		}); err != nil {
			return models.Post{}, err
		}
	}
	return p, nil
}

// CreateReply verifies the parent post and the reply's owner exist,
// creates the reply, and appends it to the parent's replies. Nothing
// checks that the chain stays acyclic.
func (s *Store) CreateReply(ctx context.Context, parentID primitive.ObjectID, p models.Post) (models.Post, error) {
	if err := verify.Exists(ctx, s.db, []verify.Ref{
		{Kind: verify.KindPost, ID: parentID},
		{Kind: verify.KindMember, ID: p.Owner},
	}); err != nil {
		return models.Post{}, err
	}

	p.ID = primitive.NewObjectID()
	p.Replies = []primitive.ObjectID{}
	p.PostedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}

	if _, err := s.c.UpdateByID(ctx, parentID, bson.M{
		"$addToSet": bson.M{"replies": p.ID},
	}); err != nil {
		return models.Post{}, err
	}
	if _, err := s.db.Collection("members").UpdateByID(ctx, p.Owner, bson.M{
		"$addToSet": bson.M{"member_posts": p.ID},
	}); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Expanded is a post read with the owner and one level of replies
// populated.
type Expanded struct {
	ID       primitive.ObjectID   `json:"id"`
	Name     string               `json:"name"`
	Text     string               `json:"text"`
	Owner    models.MemberSummary `json:"owner"`
	Group    *primitive.ObjectID  `json:"group,omitempty"`
	Event    *primitive.ObjectID  `json:"event,omitempty"`
	Replies  []models.PostThread  `json:"replies"`
	PostedAt time.Time            `json:"postedAt"`
}

func (s *Store) GetExpanded(ctx context.Context, id primitive.ObjectID) (Expanded, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Expanded{}, err
	}

	owners, err := expand.Members(ctx, s.db, []primitive.ObjectID{p.Owner})
	if err != nil {
		return Expanded{}, err
	}
	replies, err := expand.PostThreads(ctx, s.db, p.Replies)
	if err != nil {
		return Expanded{}, err
	}

	out := Expanded{
		ID:       p.ID,
		Name:     p.Name,
		Text:     p.Text,
		Group:    p.Group,
		Event:    p.Event,
		Replies:  replies,
		PostedAt: p.PostedAt,
	}
	if len(owners) > 0 {
		out.Owner = owners[0]
	}
	if out.Replies == nil {
		out.Replies = []models.PostThread{}
	}
	return out, nil
}
