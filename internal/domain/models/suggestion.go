// internal/domain/models/suggestion.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion is a user-submitted proposal. It carries triage state
// (approved / rejected / archived) and the set of users who voted for it.
//
// Category and Author are embedded copies taken at creation time so that
// listing suggestions never needs a cross-collection join. They are not
// re-synced if the source documents change later.
type Suggestion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    Category           `bson:"category" json:"category"`
	Author      BasicUser          `bson:"author" json:"author"`

	// Status is assigned by an admin during triage (Completed, Upcoming, ...).
	// Nil until the suggestion has been triaged.
	Status     *Status `bson:"status,omitempty" json:"status,omitempty"`
	OwnerNotes string  `bson:"owner_notes,omitempty" json:"owner_notes,omitempty"`

	// Voters holds the ids of users who upvoted. Set semantics: a user
	// appears at most once. Mutate via AddVote/RemoveVote.
	Voters []primitive.ObjectID `bson:"voters" json:"voters"`

	ApprovedForRelease bool `bson:"approved_for_release" json:"approved_for_release"`
	Rejected           bool `bson:"rejected" json:"rejected"`
	Archived           bool `bson:"archived" json:"archived"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasVoted reports whether userID is in the voter set.
func (s *Suggestion) HasVoted(userID primitive.ObjectID) bool {
	for _, v := range s.Voters {
		if v == userID {
			return true
		}
	}
	return false
}

// AddVote adds userID to the voter set. It reports whether the id was
// newly inserted; adding an existing voter is a no-op returning false.
func (s *Suggestion) AddVote(userID primitive.ObjectID) bool {
	if s.HasVoted(userID) {
		return false
	}
	s.Voters = append(s.Voters, userID)
	return true
}

// RemoveVote removes userID from the voter set. It reports whether the
// id was present.
func (s *Suggestion) RemoveVote(userID primitive.ObjectID) bool {
	for i, v := range s.Voters {
		if v == userID {
			s.Voters = append(s.Voters[:i], s.Voters[i+1:]...)
			return true
		}
	}
	return false
}

// VoteCount returns the number of voters.
func (s *Suggestion) VoteCount() int {
	return len(s.Voters)
}

// BasicSuggestion is the lightweight projection of a Suggestion embedded
// in user documents (authored / voted-on lists). Created at write time;
// the Title copy goes stale if the suggestion is renamed, which is the
// accepted tradeoff for join-free reads.
type BasicSuggestion struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`
}

// NewBasicSuggestion builds the projection embedded in user documents.
func NewBasicSuggestion(s Suggestion) BasicSuggestion {
	return BasicSuggestion{ID: s.ID, Title: s.Title}
}
