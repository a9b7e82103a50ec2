package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaughan-dsouza/betasks/internal/middleware"
	"github.com/vaughan-dsouza/betasks/internal/utils"
)

// Routes builds the router. accessLog adds chi's request logger.
func (h *Handler) Routes(accessLog bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if accessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)

	// Public
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)
	r.Post("/logout", h.Auth.Logout)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.sessions))

		r.Get("/profile", h.Auth.Profile)

		r.Get("/tasks", h.Tasks.ListTasks)
		r.Post("/tasks", h.Tasks.CreateTask)
		r.Delete("/tasks/{id}", h.Tasks.DeleteTask)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/users", h.Admin.ListUsers)
			r.Get("/tasks", h.Admin.ListTasks)
		})
	})

	return r
}
