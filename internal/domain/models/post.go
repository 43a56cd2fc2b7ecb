// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a titled piece of text written by a member, optionally attached
// to a group or an event. Replies reference other posts, forming a forest.
// Nothing rejects a reply chain that loops back to an ancestor; that is a
// known gap awaiting a product decision.
type Post struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Text string             `bson:"text" json:"text"`

	Owner   primitive.ObjectID   `bson:"owner" json:"owner"`
	Replies []primitive.ObjectID `bson:"replies" json:"replies"`

	Group *primitive.ObjectID `bson:"group,omitempty" json:"group,omitempty"`
	Event *primitive.ObjectID `bson:"event,omitempty" json:"event,omitempty"`

	PostedAt time.Time `bson:"posted_at" json:"postedAt"`
}
