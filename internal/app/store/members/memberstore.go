// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/convenehq/convene/internal/app/store/expand"
	"github.com/convenehq/convene/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

var ErrDuplicateEmail = errors.New("a member with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("members")}
}

// Create inserts a new member with empty reference lists. Email is
// lowercased; uniqueness is enforced by the store's unique index.
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.MemberGroups = []primitive.ObjectID{}
	m.MemberPosts = []primitive.ObjectID{}
	m.MemberEvents = []primitive.ObjectID{}
	m.JoinedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Member{}, ErrDuplicateEmail
		}
		return models.Member{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// Expanded is a member read with the reference lists populated.
type Expanded struct {
	ID           primitive.ObjectID    `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	MemberGroups []models.GroupSummary `json:"memberGroups"`
	MemberPosts  []models.PostSummary  `json:"memberPosts"`
	MemberEvents []models.EventSummary `json:"memberEvents"`
	JoinedAt     time.Time             `json:"joinedAt"`
}

// GetExpanded loads a member with groups, posts, and events expanded to
// their summary projections.
func (s *Store) GetExpanded(ctx context.Context, id primitive.ObjectID) (Expanded, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Expanded{}, err
	}

	groups, err := expand.Groups(ctx, s.db, m.MemberGroups)
	if err != nil {
		return Expanded{}, err
	}
	posts, err := expand.Posts(ctx, s.db, m.MemberPosts)
	if err != nil {
		return Expanded{}, err
	}
	events, err := expand.Events(ctx, s.db, m.MemberEvents)
	if err != nil {
		return Expanded{}, err
	}

	if groups == nil {
		groups = []models.GroupSummary{}
	}
	if posts == nil {
		posts = []models.PostSummary{}
	}
	if events == nil {
		events = []models.EventSummary{}
	}
	return Expanded{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		MemberGroups: groups,
		MemberPosts:  posts,
		MemberEvents: events,
		JoinedAt:     m.JoinedAt,
	}, nil
}
