package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dfcarvalho/caixa-escolar/internal/http/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/http/school"
	"github.com/dfcarvalho/caixa-escolar/internal/http/summary"
)

func New(
	schoolsV1 *school.Handler,
	ledgerV1 *ledger.Handler,
	summaryV1 *summary.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/schools", schoolsV1.Routes)
		r.Route("/ledger", ledgerV1.Routes)
		r.Route("/summary", summaryV1.Routes)
	})

	return router
}
