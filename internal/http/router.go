package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mfcruz/gestor/internal/http/auth"
	"github.com/mfcruz/gestor/internal/http/client"
	"github.com/mfcruz/gestor/internal/http/finance"
	"github.com/mfcruz/gestor/internal/http/importcsv"
	"github.com/mfcruz/gestor/internal/http/notify"
	"github.com/mfcruz/gestor/internal/http/project"
)

func New(
	verifier TokenVerifier,
	authV1 *auth.Handler,
	clientsV1 *client.Handler,
	projectsV1 *project.Handler,
	financeV1 *finance.Handler,
	importV1 *importcsv.Handler,
	notifyV1 *notify.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		// Login and register are the only unauthenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(verifier))

			r.Route("/auth", authV1.Routes)
			r.Route("/clients", clientsV1.Routes)
			projectsV1.Routes(r)
			financeV1.Routes(r)
			r.Route("/import", importV1.Routes)
			r.Route("/notify", notifyV1.Routes)
		})
	})

	return router
}
