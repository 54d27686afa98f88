package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler builds the routing tree. It is exported so tests can drive it
// through httptest without a listener.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", s.handle(s.ping))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.withTx(s.signup))
			r.Post("/login", s.withTx(s.login))
			r.Post("/refresh", s.handle(s.refresh))
		})

		r.Group(func(r chi.Router) {
			r.Use(s.bearerToken)
			r.Post("/me/change_password", s.withTx(s.changePassword))
			r.Get("/users/me", s.withTx(s.me))
		})
	})

	return r
}
