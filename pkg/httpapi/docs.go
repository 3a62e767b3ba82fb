package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger"
)

// swaggerSpecPath is the hand-authored OpenAPI document served under
// /api/docs — there is no swag codegen step in this build.
const swaggerSpecPath = "docs/swagger.json"

// mountDocs registers the swagger UI and its backing spec file on
// router.
func mountDocs(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/docs/doc.json", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, swaggerSpecPath)
	}))
	router.Handler(http.MethodGet, "/api/docs/*any", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
}
