package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/convenehq/convene/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember inserts a member document and returns it.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string) models.Member {
	f.t.Helper()

	m := models.Member{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		MemberGroups: []primitive.ObjectID{},
		MemberPosts:  []primitive.ObjectID{},
		MemberEvents: []primitive.ObjectID{},
		JoinedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateGroup inserts a group owned by ownerID, with the owner already in
// the members list.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, ownerID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		IsPublic:  true,
		Members:   []primitive.ObjectID{ownerID},
		Events:    []primitive.ObjectID{},
		Posts:     []primitive.ObjectID{},
		Tags:      []string{},
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateEvent inserts an event in groupID created by creatorID with the
// given invitees.
func (f *Fixtures) CreateEvent(ctx context.Context, name string, groupID, creatorID primitive.ObjectID, invitees ...primitive.ObjectID) models.Event {
	f.t.Helper()

	if invitees == nil {
		invitees = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	e := models.Event{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Group:     groupID,
		Creator:   creatorID,
		Invitees:  invitees,
		Attendees: []primitive.ObjectID{},
		Posts:     []primitive.ObjectID{},
		StartDate: now.Add(24 * time.Hour),
		EndDate:   now.Add(26 * time.Hour),
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

// CreatePost inserts a post owned by ownerID.
func (f *Fixtures) CreatePost(ctx context.Context, name, body string, ownerID primitive.ObjectID) models.Post {
	f.t.Helper()

	p := models.Post{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Text:     body,
		Owner:    ownerID,
		Replies:  []primitive.ObjectID{},
		PostedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}
