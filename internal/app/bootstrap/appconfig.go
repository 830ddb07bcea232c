// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to the suggestion
// box: the Mongo connection, session cookies, cache sizing, and the
// bootstrap admin account.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies
	SessionName   string // Cookie name (default: suggestbox-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Cache sizing. Suggestion lists are cached briefly; category and
	// status lookup lists are cached for much longer.
	CacheCapacity      int
	SuggestionCacheTTL time.Duration
	LookupCacheTTL     time.Duration

	// AdminEmail names the account promoted to admin at first sign-in
	// and at startup.
	AdminEmail string

	// BaseURL is the externally visible URL of this deployment.
	BaseURL string
}
