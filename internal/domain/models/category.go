// internal/domain/models/category.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category classifies a suggestion (Feature, Enhancement, Bugfix, ...).
// A full copy is embedded in each suggestion at creation time.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
