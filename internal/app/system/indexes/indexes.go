// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureSuggestions(ctx, db); err != nil {
		problems = append(problems, "suggestions: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureStatuses(ctx, db); err != nil {
		problems = append(problems, "statuses: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureSuggestions(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("suggestions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// The default listing filters on archived; the author page on author._id.
		{Keys: bson.D{{Key: "archived", Value: 1}}},
		{Keys: bson.D{{Key: "author._id", Value: 1}}},
		// Triage queue scans approved/rejected together.
		{Keys: bson.D{{Key: "approved_for_release", Value: 1}, {Key: "rejected", Value: 1}}},
	})
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "auth_subject", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_auth_subject"),
		},
	})
	return err
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("categories").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_category_name"),
		},
	})
	return err
}

func ensureStatuses(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("statuses").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_status_name"),
		},
	})
	return err
}
