// internal/domain/models/summaries.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Summary types are the projected shapes used when a read response
// expands a reference field into the referenced document's fields.

type MemberSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

type GroupSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
}

type EventSummary struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	StartDate time.Time          `bson:"start_date" json:"startDate"`
	EndDate   time.Time          `bson:"end_date" json:"endDate"`
}

type PostSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Text     string             `bson:"text" json:"text"`
	PostedAt time.Time          `bson:"posted_at" json:"postedAt"`
}

// PostThread is a post summary with one level of replies expanded.
type PostThread struct {
	PostSummary `bson:",inline"`
	Replies     []PostSummary `json:"replies"`
}
