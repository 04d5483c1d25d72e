package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/auth"
	budgetHandler "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/budget"
	ledgerHandler "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/ledger"
	recurringHandler "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/recurring"
)

func New(
	jwtSecret string,
	entriesV1 *ledgerHandler.Handler,
	recurringV1 *recurringHandler.Handler,
	budgetsV1 *budgetHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/recurring", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			recurringV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})
	})

	return router
}
