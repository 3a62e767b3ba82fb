package httpapi

import (
	"context"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/pkg/httpapi/controllers"
	"github.com/go-roadmap/roadmap-core/pkg/httpapi/routerhelper"
)

// API assembles the httprouter.Router, middleware chain, and
// controller routes into a runnable Server.
type API struct {
	log *zap.Logger
}

// NewAPI returns an API that logs through log.
func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Run builds the route table, wraps it in the middleware chain, and
// blocks serving requests until ctx is cancelled.
func (api *API) Run(ctx context.Context, config Config, log *zap.Logger, mapService controllers.MapService) error {
	log.Info("starting query HTTP API")

	router := httprouter.New()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	group := routerhelper.NewRouteGroup(router, "/api")
	mapController := controllers.New(mapService, log)
	mapController.Routes(group)

	mountDocs(router)

	chain := alice.New(
		corsHandler.Handler,
		EnforceJSONHandler,
		RecoverPanic(log),
		RealIP,
		Heartbeat("healthz"),
		Logger(log),
		Labels,
	).Then(router)

	srv := New(ctx, chain, config)
	return srv.ListenAndServe()
}
