// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	eventsfeature "github.com/convenehq/convene/internal/app/features/events"
	groupsfeature "github.com/convenehq/convene/internal/app/features/groups"
	healthfeature "github.com/convenehq/convene/internal/app/features/health"
	membersfeature "github.com/convenehq/convene/internal/app/features/members"
	postsfeature "github.com/convenehq/convene/internal/app/features/posts"
	"github.com/convenehq/convene/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Convene mounts one feature router per entity plus the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestlog.Middleware(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	membersHandler := membersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler))

	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	postsHandler := postsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler))

	return r, nil
}
