// internal/app/store/suggestions/suggestionstore.go
package suggestionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/app/system/cache"
	"github.com/dalemusser/suggestbox/internal/app/system/txn"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrVoteDrift is returned when an un-vote finds no matching projection
// in the user's voted-on list. The voter set and the user's list are
// written in the same transaction, so a mismatch means the two
// collections have drifted outside this code path. The transaction is
// aborted rather than papering over the inconsistency.
var ErrVoteDrift = errors.New("user voted-on list does not match suggestion voter set")

// Store is the suggestion data-access layer: reads through the cache,
// and runs the multi-document transactions that keep each suggestion
// consistent with the denormalized lists on its author and voters.
type Store struct {
	c      *mongo.Collection
	client *mongo.Client
	users  *userstore.Store
	cache  cache.Cache[[]models.Suggestion]
	log    *zap.Logger
}

func New(db *mongo.Database, users *userstore.Store, c cache.Cache[[]models.Suggestion], logger *zap.Logger) *Store {
	return &Store{
		c:      db.Collection("suggestions"),
		client: db.Client(),
		users:  users,
		cache:  c,
		log:    logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Reads                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// All returns every non-archived suggestion, reading through the cache.
// An empty result is a valid cached value, not an error. Callers get
// their own slice; mutating it does not touch the cached entry.
func (s *Store) All(ctx context.Context) ([]models.Suggestion, error) {
	if out, ok := s.cache.Get(cache.KeyAllSuggestions()); ok {
		return append([]models.Suggestion{}, out...), nil
	}

	cur, err := s.c.Find(ctx, bson.M{"archived": false})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Suggestion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyAllSuggestions(), out)
	return append([]models.Suggestion{}, out...), nil
}

// ByAuthor returns the suggestions authored by authorID. This is a live
// query against the suggestions collection (cached per author), fully
// independent of the denormalized authored list on the user document.
func (s *Store) ByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Suggestion, error) {
	key := cache.KeyAuthorSuggestions(authorID.Hex())
	if out, ok := s.cache.Get(key); ok {
		return append([]models.Suggestion{}, out...), nil
	}

	cur, err := s.c.Find(ctx, bson.M{"author._id": authorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Suggestion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	s.cache.Set(key, out)
	return append([]models.Suggestion{}, out...), nil
}

// Approved returns the suggestions approved for release. Derived from
// the cached All view; never queries the store directly.
func (s *Store) Approved(ctx context.Context) ([]models.Suggestion, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Suggestion{}
	for _, sug := range all {
		if sug.ApprovedForRelease {
			out = append(out, sug)
		}
	}
	return out, nil
}

// AwaitingApproval returns suggestions that are neither approved nor
// rejected, derived from the cached All view.
func (s *Store) AwaitingApproval(ctx context.Context) ([]models.Suggestion, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Suggestion{}
	for _, sug := range all {
		if !sug.ApprovedForRelease && !sug.Rejected {
			out = append(out, sug)
		}
	}
	return out, nil
}

// ByID loads a suggestion by id, bypassing the cache. Returns
// mongo.ErrNoDocuments if absent.
func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.Suggestion, error) {
	var sug models.Suggestion
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sug); err != nil {
		return nil, err
	}
	return &sug, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Writes                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Update replaces the suggestion document by id (full overwrite,
// last-writer-wins) and invalidates the all-suggestions cache entry.
// Per-author cache entries are left to expire on their own TTL.
func (s *Store) Update(ctx context.Context, sug models.Suggestion) error {
	sug.UpdatedAt = time.Now().UTC()
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": sug.ID}, sug); err != nil {
		return err
	}

	s.cache.Remove(cache.KeyAllSuggestions())
	return nil
}

// Create inserts the suggestion and appends a projection of it to the
// author's authored list, in one transaction. On any failure the
// transaction aborts and neither document changes.
func (s *Store) Create(ctx context.Context, sug models.Suggestion) (models.Suggestion, error) {
	if sug.ID.IsZero() {
		sug.ID = primitive.NewObjectID()
	}
	if sug.Voters == nil {
		sug.Voters = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	sug.CreatedAt = now
	sug.UpdatedAt = now

	err := txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		if _, err := s.c.InsertOne(sc, sug); err != nil {
			return fmt.Errorf("insert suggestion: %w", err)
		}

		author, err := s.users.ByID(sc, sug.Author.ID)
		if err != nil {
			return fmt.Errorf("load author %s: %w", sug.Author.ID.Hex(), err)
		}

		author.AuthoredSuggestions = append(author.AuthoredSuggestions, models.NewBasicSuggestion(sug))
		if err := s.users.Update(sc, *author); err != nil {
			return fmt.Errorf("update author %s: %w", author.ID.Hex(), err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("create suggestion transaction aborted",
			zap.String("suggestion_id", sug.ID.Hex()),
			zap.String("author_id", sug.Author.ID.Hex()),
			zap.Error(err))
		return models.Suggestion{}, err
	}

	// Invalidate so the new suggestion shows up on the next list read
	// instead of waiting out the TTL.
	s.cache.Remove(cache.KeyAllSuggestions())
	return sug, nil
}

// ToggleVote casts or retracts userID's vote on suggestionID. A first
// call adds the user to the voter set and a projection to the user's
// voted-on list; a second call removes both. Both documents change in
// one transaction or not at all. It reports whether the call ended with
// the vote present (true = voted, false = un-voted).
func (s *Store) ToggleVote(ctx context.Context, suggestionID, userID primitive.ObjectID) (bool, error) {
	var voted bool

	err := txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		var sug models.Suggestion
		if err := s.c.FindOne(sc, bson.M{"_id": suggestionID}).Decode(&sug); err != nil {
			return fmt.Errorf("load suggestion %s: %w", suggestionID.Hex(), err)
		}

		// Set-add reports whether the member is new; an existing member
		// means this call is an un-vote.
		voted = sug.AddVote(userID)
		if !voted {
			sug.RemoveVote(userID)
		}
		sug.UpdatedAt = time.Now().UTC()

		if _, err := s.c.ReplaceOne(sc, bson.M{"_id": suggestionID}, sug); err != nil {
			return fmt.Errorf("replace suggestion %s: %w", suggestionID.Hex(), err)
		}

		voter, err := s.users.ByID(sc, userID)
		if err != nil {
			return fmt.Errorf("load voter %s: %w", userID.Hex(), err)
		}

		if voted {
			voter.VotedOnSuggestions = append(voter.VotedOnSuggestions, models.NewBasicSuggestion(sug))
		} else {
			removed := false
			for i, b := range voter.VotedOnSuggestions {
				if b.ID == sug.ID {
					voter.VotedOnSuggestions = append(voter.VotedOnSuggestions[:i], voter.VotedOnSuggestions[i+1:]...)
					removed = true
					break
				}
			}
			if !removed {
				return fmt.Errorf("%w: suggestion %s absent from user %s", ErrVoteDrift, sug.ID.Hex(), userID.Hex())
			}
		}

		if err := s.users.Update(sc, *voter); err != nil {
			return fmt.Errorf("update voter %s: %w", userID.Hex(), err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("vote transaction aborted",
			zap.String("suggestion_id", suggestionID.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		return false, err
	}

	s.cache.Remove(cache.KeyAllSuggestions())
	return voted, nil
}
