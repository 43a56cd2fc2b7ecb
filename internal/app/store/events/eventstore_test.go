package eventstore_test

import (
	"errors"
	"testing"
	"time"

	eventstore "github.com/convenehq/convene/internal/app/store/events"
	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/domain/models"
	"github.com/convenehq/convene/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateMember(ctx, "Owner", "owner@test.com")
	invitee := fixtures.CreateMember(ctx, "Guest", "guest@test.com")
	group := fixtures.CreateGroup(ctx, "Hiking Club", owner.ID)

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Millisecond)
	created, err := store.Create(ctx, models.Event{
		Name:      "Summit Hike",
		Group:     group.ID,
		Creator:   owner.ID,
		Invitees:  []primitive.ObjectID{invitee.ID},
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if len(created.Attendees) != 0 || created.Attendees == nil {
		t.Errorf("Attendees: got %v, want empty", created.Attendees)
	}

	// The event is reflected on the group and the creator.
	var g models.Group
	if err := db.Collection("groups").FindOne(ctx, bson.M{"_id": group.ID}).Decode(&g); err != nil {
		t.Fatalf("failed to reload group: %v", err)
	}
	if len(g.Events) != 1 || g.Events[0] != created.ID {
		t.Errorf("group Events: got %v, want [%s]", g.Events, created.ID.Hex())
	}
	var m models.Member
	if err := db.Collection("members").FindOne(ctx, bson.M{"_id": owner.ID}).Decode(&m); err != nil {
		t.Fatalf("failed to reload creator: %v", err)
	}
	if len(m.MemberEvents) != 1 || m.MemberEvents[0] != created.ID {
		t.Errorf("creator MemberEvents: got %v, want [%s]", m.MemberEvents, created.ID.Hex())
	}
}

func TestStore_Create_MissingInvitee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateMember(ctx, "Owner", "owner@test.com")
	group := fixtures.CreateGroup(ctx, "Hiking Club", owner.ID)

	missing := primitive.NewObjectID()
	_, err := store.Create(ctx, models.Event{
		Name:      "Ghost Hike",
		Group:     group.ID,
		Creator:   owner.ID,
		Invitees:  []primitive.ObjectID{missing},
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().Add(time.Hour),
	})

	var nf *apierr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "member" || nf.ID != missing.Hex() {
		t.Errorf("NotFoundError: got kind=%q id=%q", nf.Kind, nf.ID)
	}

	n, err := db.Collection("events").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no events persisted, found %d", n)
	}
}

func TestStore_AddInvitee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateMember(ctx, "Owner", "owner@test.com")
	guest := fixtures.CreateMember(ctx, "Guest", "guest@test.com")
	group := fixtures.CreateGroup(ctx, "Hiking Club", owner.ID)
	event := fixtures.CreateEvent(ctx, "Summit Hike", group.ID, owner.ID)

	updated, err := store.AddInvitee(ctx, event.ID, guest.ID)
	if err != nil {
		t.Fatalf("AddInvitee failed: %v", err)
	}
	if len(updated.Invitees) != 1 || updated.Invitees[0] != guest.ID {
		t.Errorf("Invitees: got %v, want [%s]", updated.Invitees, guest.ID.Hex())
	}

	// Inviting again does not duplicate the entry.
	updated, err = store.AddInvitee(ctx, event.ID, guest.ID)
	if err != nil {
		t.Fatalf("second AddInvitee failed: %v", err)
	}
	if len(updated.Invitees) != 1 {
		t.Errorf("Invitees after repeat invite: got %v, want one entry", updated.Invitees)
	}
}

func TestStore_MoveInviteeToAttendee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateMember(ctx, "Owner", "owner@test.com")
	guest := fixtures.CreateMember(ctx, "Guest", "guest@test.com")
	group := fixtures.CreateGroup(ctx, "Hiking Club", owner.ID)
	event := fixtures.CreateEvent(ctx, "Summit Hike", group.ID, owner.ID, guest.ID)

	updated, err := store.MoveInviteeToAttendee(ctx, event.ID, guest.ID)
	if err != nil {
		t.Fatalf("MoveInviteeToAttendee failed: %v", err)
	}

	for _, id := range updated.Invitees {
		if id == guest.ID {
			t.Error("guest still present in Invitees after move")
		}
	}
	count := 0
	for _, id := range updated.Attendees {
		if id == guest.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("guest appears %d times in Attendees, want 1", count)
	}
}

func TestStore_MoveInviteeToAttendee_NotInvited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateMember(ctx, "Owner", "owner@test.com")
	outsider := fixtures.CreateMember(ctx, "Outsider", "outsider@test.com")
	group := fixtures.CreateGroup(ctx, "Hiking Club", owner.ID)
	event := fixtures.CreateEvent(ctx, "Summit Hike", group.ID, owner.ID)

	_, err := store.MoveInviteeToAttendee(ctx, event.ID, outsider.ID)

	var nf *apierr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "invitee" || nf.ID != outsider.ID.Hex() {
		t.Errorf("NotFoundError: got kind=%q id=%q", nf.Kind, nf.ID)
	}

	// The event is unchanged.
	reloaded, err := store.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(reloaded.Attendees) != 0 {
		t.Errorf("Attendees: got %v, want empty", reloaded.Attendees)
	}
}
