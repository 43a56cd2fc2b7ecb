// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a collection of members that hosts events and posts.
//
// NOTE:
//   - The owner is always present in Members; the create path inserts it.
//   - Tags come from a comma-separated input string, split and trimmed.
//     An absent tags field yields an empty (not nil-serialized) list.
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic    bool               `bson:"is_public" json:"isPublic"`

	Members []primitive.ObjectID `bson:"members" json:"members"`
	Events  []primitive.ObjectID `bson:"events" json:"events"`
	Posts   []primitive.ObjectID `bson:"posts" json:"posts"`
	Tags    []string             `bson:"tags" json:"tags"`

	Owner primitive.ObjectID `bson:"owner" json:"owner"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
