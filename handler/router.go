package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterOptions wires the handlers and middleware into a router. Nil
// fields leave their routes unmounted.
type RouterOptions struct {
	Auth     *Auth
	Profile  *Profile
	Identity func(http.Handler) http.Handler
	Health   http.HandlerFunc
}

// Router builds the storefront HTTP surface.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Health != nil {
		r.Get("/health", opts.Health)
	}

	r.Group(func(r chi.Router) {
		if opts.Identity != nil {
			r.Use(opts.Identity)
		}

		if opts.Auth != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/google", opts.Auth.GoogleLogin)
				r.Post("/phone/request-pin", opts.Auth.RequestPhonePIN)
				r.Post("/phone/verify", opts.Auth.VerifyPhonePIN)
				r.Post("/logout", opts.Auth.Logout)
			})
		}

		r.Route("/api", func(r chi.Router) {
			if opts.Profile != nil {
				r.Put("/profile", opts.Profile.Update)
			}
			r.Get("/session", Session)
		})
	})

	return r
}
