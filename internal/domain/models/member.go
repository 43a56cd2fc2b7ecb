// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a person who can own groups, attend events, and write posts.
//
// NOTE:
//   - The reference lists (MemberGroups, MemberPosts, MemberEvents) are
//     embedded on the member document and kept in sync with the owning
//     side by idempotent $addToSet writes. The two sides are separate
//     writes with no transaction between them.
//   - Email is unique across members (enforced by a unique index).
type Member struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email  string             `bson:"email" json:"email"`

	MemberGroups []primitive.ObjectID `bson:"member_groups" json:"memberGroups"`
	MemberPosts  []primitive.ObjectID `bson:"member_posts" json:"memberPosts"`
	MemberEvents []primitive.ObjectID `bson:"member_events" json:"memberEvents"`

	JoinedAt time.Time `bson:"joined_at" json:"joinedAt"`
}
