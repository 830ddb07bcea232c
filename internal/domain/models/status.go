// internal/domain/models/status.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Status is the triage outcome an admin assigns to a suggestion
// (Completed, Watching, Upcoming, Dismissed, ...).
type Status struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
