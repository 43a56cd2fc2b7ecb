// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event belongs to a group and tracks invitees separately from attendees.
// A member moves from Invitees to Attendees as one logical step: removed
// from one list, appended to the other, and the whole document rewritten.
type Event struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	Group   primitive.ObjectID `bson:"group" json:"group"`
	Creator primitive.ObjectID `bson:"creator" json:"creator"`

	Invitees  []primitive.ObjectID `bson:"invitees" json:"invitees"`
	Attendees []primitive.ObjectID `bson:"attendees" json:"attendees"`
	Posts     []primitive.ObjectID `bson:"posts" json:"posts"`

	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`
}
