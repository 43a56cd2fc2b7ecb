// internal/app/store/expand/expand.go

// Package expand loads projected summaries for lists of entity
// references, preserving the order of the input ids. It is the
// populate step the stores orchestrate on expanded reads: one $in find
// per referenced collection, never one query per id.
package expand

import (
	"context"

	"github.com/convenehq/convene/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Members loads member summaries in the order of ids. Ids that no longer
// resolve are skipped; references can dangle and reads must tolerate it.
func Members(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]models.MemberSummary, error) {
	docs, err := find[models.MemberSummary](ctx, db.Collection("members"), ids,
		bson.M{"name": 1, "email": 1})
	if err != nil {
		return nil, err
	}
	return inOrder(ids, docs, func(m models.MemberSummary) primitive.ObjectID { return m.ID }), nil
}

// Groups loads group summaries in the order of ids.
func Groups(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]models.GroupSummary, error) {
	docs, err := find[models.GroupSummary](ctx, db.Collection("groups"), ids,
		bson.M{"name": 1, "description": 1, "tags": 1})
	if err != nil {
		return nil, err
	}
	return inOrder(ids, docs, func(g models.GroupSummary) primitive.ObjectID { return g.ID }), nil
}

// Events loads event summaries in the order of ids.
func Events(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]models.EventSummary, error) {
	docs, err := find[models.EventSummary](ctx, db.Collection("events"), ids,
		bson.M{"name": 1, "start_date": 1, "end_date": 1})
	if err != nil {
		return nil, err
	}
	return inOrder(ids, docs, func(e models.EventSummary) primitive.ObjectID { return e.ID }), nil
}

// Posts loads post summaries in the order of ids.
func Posts(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]models.PostSummary, error) {
	docs, err := find[models.PostSummary](ctx, db.Collection("posts"), ids,
		bson.M{"name": 1, "text": 1, "posted_at": 1})
	if err != nil {
		return nil, err
	}
	return inOrder(ids, docs, func(p models.PostSummary) primitive.ObjectID { return p.ID }), nil
}

// PostThreads loads posts with one level of replies expanded. The reply
// ids of every post are gathered into a single follow-up find.
func PostThreads(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]models.PostThread, error) {
	type postDoc struct {
		models.PostSummary `bson:",inline"`
		ReplyIDs           []primitive.ObjectID `bson:"replies"`
	}

	docs, err := find[postDoc](ctx, db.Collection("posts"), ids,
		bson.M{"name": 1, "text": 1, "posted_at": 1, "replies": 1})
	if err != nil {
		return nil, err
	}
	ordered := inOrder(ids, docs, func(p postDoc) primitive.ObjectID { return p.ID })

	var replyIDs []primitive.ObjectID
	for _, p := range ordered {
		replyIDs = append(replyIDs, p.ReplyIDs...)
	}
	replies, err := Posts(ctx, db, replyIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.PostSummary, len(replies))
	for _, r := range replies {
		byID[r.ID] = r
	}

	threads := make([]models.PostThread, 0, len(ordered))
	for _, p := range ordered {
		th := models.PostThread{PostSummary: p.PostSummary, Replies: []models.PostSummary{}}
		for _, rid := range p.ReplyIDs {
			if r, ok := byID[rid]; ok {
				th.Replies = append(th.Replies, r)
			}
		}
		threads = append(threads, th)
	}
	return threads, nil
}

func find[T any](ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID, projection bson.M) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// inOrder reorders docs to match ids, dropping ids with no document.
func inOrder[T any](ids []primitive.ObjectID, docs []T, id func(T) primitive.ObjectID) []T {
	byID := make(map[primitive.ObjectID]T, len(docs))
	for _, d := range docs {
		byID[id(d)] = d
	}
	out := make([]T, 0, len(ids))
	for _, want := range ids {
		if d, ok := byID[want]; ok {
			out = append(out, d)
		}
	}
	return out
}
