package indexes_test

import (
	"testing"

	"github.com/convenehq/convene/internal/app/system/indexes"
	"github.com/convenehq/convene/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Running twice must be a no-op.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll second run failed: %v", err)
	}

	// The unique email index must actually reject duplicates.
	members := db.Collection("members")
	if _, err := members.InsertOne(ctx, bson.M{"email": "dup@test.com"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := members.InsertOne(ctx, bson.M{"email": "dup@test.com"}); err == nil {
		t.Error("expected duplicate email insert to fail")
	}
}
