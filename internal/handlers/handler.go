package handlers

import (
	"github.com/vaughan-dsouza/betasks/internal/auth"
	"github.com/vaughan-dsouza/betasks/internal/session"
	"github.com/vaughan-dsouza/betasks/internal/store"
)

type Handler struct {
	Auth  *AuthHandler
	Tasks *TaskHandler
	Admin *AdminHandler

	sessions *session.Manager
}

func NewHandler(creds *auth.Credentials, sessions *session.Manager, users store.Users, tasks store.Tasks) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(creds, sessions),
		Tasks:    NewTaskHandler(tasks),
		Admin:    NewAdminHandler(users, tasks),
		sessions: sessions,
	}
}
