// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensurePosts(ctx, db); err != nil {
		problems = append(problems, "posts: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("members"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("name_ci"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("groups"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("owner"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("name_ci"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("group_start"),
		},
		{
			Keys:    bson.D{{Key: "creator", Value: 1}},
			Options: options.Index().SetName("creator"),
		},
	})
}

func ensurePosts(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection("posts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "posted_at", Value: -1}},
			Options: options.Index().SetName("owner_posted"),
		},
		{
			Keys:    bson.D{{Key: "group", Value: 1}},
			Options: options.Index().SetName("group"),
		},
		{
			Keys:    bson.D{{Key: "event", Value: 1}},
			Options: options.Index().SetName("event"),
		},
	})
}

func createIndexes(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		// An index with the same keys but different options already
		// exists. Log and keep what is there rather than failing startup.
		if strings.Contains(err.Error(), "IndexOptionsConflict") {
			zap.L().Warn("index options conflict, keeping existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			return nil
		}
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("indexes", names))
	return nil
}
