// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/suggestbox/internal/app/resources"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin promotes the configured account to the admin role, so a
// fresh deployment always has someone who can run the triage queue. If
// no user with that email exists yet, promotion happens at first
// sign-in instead.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))

	res, err := deps.MongoDatabase.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": "admin", "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		logger.Info("admin account not present yet; will be promoted at first sign-in",
			zap.String("email", email))
		return nil
	}
	if res.ModifiedCount > 0 {
		logger.Info("promoted account to admin", zap.String("email", email))
	}
	return nil
}
