package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/auth/signup", h.SignupHandler)
		r.Post("/auth/login", h.LoginHandler)
		r.Get("/ecards/public/{slug}", h.PublicCardHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/ecards", h.ListCardsHandler)
			r.Post("/ecards", h.UpsertCardHandler)
			r.Get("/ecards/{id}", h.GetCardHandler)
			r.Delete("/ecards/{id}", h.DeleteCardHandler)
			r.Get("/ecards/preview/{id}", h.PreviewCardHandler)
			r.Get("/ecards/export/{id}", h.ExportCardHandler)
		})
	})
}
