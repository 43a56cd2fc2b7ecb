// internal/app/system/verify/verify.go

// Package verify is the cross-entity referential-integrity gate. Before a
// write that references other entities, callers list the (kind, id) pairs
// the payload names; Exists confirms each one resolves to a stored
// document of that kind.
//
// The check is advisory, not transactional: nothing stops a referenced
// entity from being deleted between verification and the dependent write,
// so callers must tolerate eventually dangling references.
package verify

import (
	"context"

	"github.com/convenehq/convene/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Kind names an entity collection.
type Kind string

const (
	KindMember Kind = "member"
	KindGroup  Kind = "group"
	KindEvent  Kind = "event"
	KindPost   Kind = "post"
)

// collection maps a kind to its collection name.
func (k Kind) collection() string {
	return string(k) + "s"
}

// Ref is one (kind, id) pair to verify.
type Ref struct {
	Kind Kind
	ID   primitive.ObjectID
}

// Exists checks every ref concurrently and waits for all lookups. It
// returns nil only when each id resolves to a document of its kind. When
// entities are missing it reports exactly one NotFoundError: the first
// missing ref in input order, regardless of which lookup resolved first.
// Lookup failures other than "no document" propagate as-is.
func Exists(ctx context.Context, db *mongo.Database, refs []Ref) error {
	if len(refs) == 0 {
		return nil
	}

	found := make([]bool, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			proj := options.FindOne().SetProjection(bson.M{"_id": 1})
			err := db.Collection(ref.Kind.collection()).
				FindOne(gctx, bson.M{"_id": ref.ID}, proj).
				Err()
			switch err {
			case nil:
				found[i] = true
				return nil
			case mongo.ErrNoDocuments:
				return nil
			default:
				return err
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, ok := range found {
		if !ok {
			return apierr.NotFound(string(refs[i].Kind), refs[i].ID.Hex())
		}
	}
	return nil
}
