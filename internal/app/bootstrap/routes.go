// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/suggestbox/internal/app/features/admin"
	errorsfeature "github.com/dalemusser/suggestbox/internal/app/features/errors"
	healthfeature "github.com/dalemusser/suggestbox/internal/app/features/health"
	homefeature "github.com/dalemusser/suggestbox/internal/app/features/home"
	loginfeature "github.com/dalemusser/suggestbox/internal/app/features/login"
	logoutfeature "github.com/dalemusser/suggestbox/internal/app/features/logout"
	suggestionsfeature "github.com/dalemusser/suggestbox/internal/app/features/suggestions"
	categorystore "github.com/dalemusser/suggestbox/internal/app/store/categories"
	statusstore "github.com/dalemusser/suggestbox/internal/app/store/statuses"
	suggestionstore "github.com/dalemusser/suggestbox/internal/app/store/suggestions"
	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/app/system/auth"
	"github.com/dalemusser/suggestbox/internal/app/system/cache"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	// Register each feature's embedded templates.
	_ "github.com/dalemusser/suggestbox/internal/app/features/admin/views"
	_ "github.com/dalemusser/suggestbox/internal/app/features/home/views"
	_ "github.com/dalemusser/suggestbox/internal/app/features/login/views"
	_ "github.com/dalemusser/suggestbox/internal/app/features/suggestions/views"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It initializes the session store and
// template engine, builds the cache instances and stores, and mounts
// the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Boot the template engine once at startup. Dev mode enables
	// template reloading.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// One cache instance per TTL class: suggestion lists expire
	// quickly, lookup lists hardly ever change.
	suggestionCache := cache.New[[]models.Suggestion](appCfg.CacheCapacity, appCfg.SuggestionCacheTTL)
	categoryCache := cache.New[[]models.Category](appCfg.CacheCapacity, appCfg.LookupCacheTTL)
	statusCache := cache.New[[]models.Status](appCfg.CacheCapacity, appCfg.LookupCacheTTL)

	users := userstore.New(deps.MongoDatabase)
	suggestions := suggestionstore.New(deps.MongoDatabase, users, suggestionCache, logger)
	categories := categorystore.New(deps.MongoDatabase, categoryCache)
	statuses := statusstore.New(deps.MongoDatabase, statusCache)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Loads the SessionUser into context for every request.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support.
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler(suggestions, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	suggestionsHandler := suggestionsfeature.NewHandler(suggestions, users, categories, errLog, logger)
	r.Mount("/suggestions", suggestionsfeature.Routes(suggestionsHandler))

	// Authentication.
	loginHandler := loginfeature.NewHandler(users, errLog, logger, appCfg.AdminEmail)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Admin triage.
	adminHandler := adminfeature.NewHandler(suggestions, categories, statuses, errLog, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
