package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/betasks/internal/store"
	"github.com/vaughan-dsouza/betasks/internal/utils"
)

// AdminHandler serves read-only views across all owners.
type AdminHandler struct {
	Users store.Users
	Tasks store.Tasks
}

func NewAdminHandler(users store.Users, tasks store.Tasks) *AdminHandler {
	return &AdminHandler{Users: users, Tasks: tasks}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		internalError(w, r, "admin.users", err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Tasks.ListAll(r.Context())
	if err != nil {
		internalError(w, r, "admin.tasks", err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}
