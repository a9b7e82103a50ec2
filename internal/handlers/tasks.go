package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/betasks/internal/applog"
	"github.com/vaughan-dsouza/betasks/internal/store"
	"github.com/vaughan-dsouza/betasks/internal/utils"
)

type TaskHandler struct {
	Tasks store.Tasks
}

func NewTaskHandler(tasks store.Tasks) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

// ---------------------- CREATE ----------------------

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	claims, _ := utils.ClaimsFrom(r.Context())

	task, err := h.Tasks.Create(r.Context(), claims.ID, body.Title, body.Description)
	if err != nil {
		internalError(w, r, "tasks.create", err)
		return
	}

	applog.Audit(r, claims.ID, "tasks.create", map[string]any{"task_id": task.ID})
	utils.JSON(w, http.StatusCreated, map[string]any{
		"message": "Task added",
		"task":    task,
	})
}

// ---------------------- LIST ----------------------

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	claims, _ := utils.ClaimsFrom(r.Context())

	tasks, err := h.Tasks.ListByOwner(r.Context(), claims.ID)
	if err != nil {
		internalError(w, r, "tasks.list", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// ---------------------- DELETE ----------------------

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := utils.ClaimsFrom(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Task not found or not authorized")
		return
	}

	_, err = h.Tasks.DeleteOwned(r.Context(), id, claims.ID)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Task not found or not authorized")
		return
	}
	if err != nil {
		internalError(w, r, "tasks.delete", err)
		return
	}

	applog.Audit(r, claims.ID, "tasks.delete", map[string]any{"task_id": id})
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
