// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account provisioned from the external identity
// provider. AuthSubject is the provider's subject id and is unique.
//
// AuthoredSuggestions and VotedOnSuggestions are denormalized projections
// maintained transactionally alongside the suggestions collection; see
// the suggestions store. They must agree with the authoritative
// suggestion documents; that agreement is what the multi-document
// transactions protect.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthSubject string             `bson:"auth_subject" json:"auth_subject"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	Email       string             `bson:"email" json:"email"`
	Role        string             `bson:"role" json:"role"` // user | admin

	AuthoredSuggestions []BasicSuggestion `bson:"authored_suggestions" json:"authored_suggestions"`
	VotedOnSuggestions  []BasicSuggestion `bson:"voted_on_suggestions" json:"voted_on_suggestions"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BasicUser is the lightweight projection of a User embedded in each
// suggestion as its author. Display fields are copied at write time and
// not re-synced.
type BasicUser struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	DisplayName string             `bson:"display_name" json:"display_name"`
}

// NewBasicUser builds the projection embedded in suggestion documents.
func NewBasicUser(u User) BasicUser {
	return BasicUser{ID: u.ID, DisplayName: u.DisplayName}
}
