// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the suggestion box.
// Values are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: SUGGESTBOX_MONGO_URI, SUGGESTBOX_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "suggestbox", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "suggestbox-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "cache_capacity", Default: 10000, Desc: "Max entries per cache instance"},
	{Name: "suggestion_cache_ttl", Default: "1m", Desc: "TTL for cached suggestion lists"},
	{Name: "lookup_cache_ttl", Default: "24h", Desc: "TTL for cached category/status lists"},

	{Name: "admin_email", Default: "", Desc: "Email promoted to the admin role on startup and sign-in"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Externally visible base URL"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// config.LoadWithAppConfig merges .env files, config files, SUGGESTBOX_*
// environment variables, and command-line flags, with flags taking
// precedence.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SUGGESTBOX", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		CacheCapacity:      appValues.Int("cache_capacity"),
		SuggestionCacheTTL: appValues.Duration("suggestion_cache_ttl", time.Minute),
		LookupCacheTTL:     appValues.Duration("lookup_cache_ttl", 24*time.Hour),

		AdminEmail: appValues.String("admin_email"),
		BaseURL:    appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backends are touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.CacheCapacity <= 0 {
		return fmt.Errorf("cache_capacity must be positive")
	}
	if appCfg.SuggestionCacheTTL <= 0 || appCfg.LookupCacheTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	return nil
}
