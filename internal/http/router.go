package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mardavsj/csrfunds/internal/http/auth"
	"github.com/mardavsj/csrfunds/internal/http/funds"
	"github.com/mardavsj/csrfunds/internal/http/receipts"
	"github.com/mardavsj/csrfunds/internal/http/sponsors"
	"github.com/mardavsj/csrfunds/internal/http/sponsorships"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	sponsorsV1 *sponsors.Handler,
	fundsV1 *funds.Handler,
	sponsorshipsV1 *sponsorships.Handler,
	receiptsV1 *receipts.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/sponsors", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sponsorsV1.Routes(r)
		})

		r.Route("/funds", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			fundsV1.Routes(r)
		})

		r.Route("/sponsorships", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sponsorshipsV1.Routes(r)
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			receiptsV1.Routes(r)
		})
	})

	return router
}
