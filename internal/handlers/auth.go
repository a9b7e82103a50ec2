package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/betasks/internal/applog"
	"github.com/vaughan-dsouza/betasks/internal/auth"
	"github.com/vaughan-dsouza/betasks/internal/models"
	"github.com/vaughan-dsouza/betasks/internal/session"
	"github.com/vaughan-dsouza/betasks/internal/store"
	"github.com/vaughan-dsouza/betasks/internal/utils"
)

type AuthHandler struct {
	Creds    *auth.Credentials
	Sessions *session.Manager
}

func NewAuthHandler(creds *auth.Credentials, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{Creds: creds, Sessions: sessions}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	Role      string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.Creds.Register(r.Context(), req.Email, req.Password, req.FirstName, req.Role)
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		utils.JSONError(w, http.StatusBadRequest, "Email already registered")
		return
	case errors.Is(err, models.ErrUnknownRole):
		utils.JSONError(w, http.StatusBadRequest, "Invalid role")
		return
	case err != nil:
		internalError(w, r, "auth.register", err)
		return
	}

	applog.Audit(r, u.ID, "auth.register", map[string]any{"role": u.Role})
	utils.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"newUser": u,
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.Creds.Verify(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		applog.Security(r, "auth.login.fail", map[string]any{"email": req.Email})
		utils.JSONError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err != nil {
		internalError(w, r, "auth.login", err)
		return
	}

	token, exp, err := h.Sessions.Issue(u)
	if err != nil {
		internalError(w, r, "auth.login.token", err)
		return
	}

	http.SetCookie(w, h.Sessions.Cookie(token, exp))
	applog.Audit(r, u.ID, "auth.login.success", nil)
	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    loginUser{ID: u.ID, Email: u.Email, Role: u.Role},
	})
}

// -------------- LOGOUT -----------------------

// Logout always clears the cookie. A still-valid token is also revoked so it
// cannot be replayed before it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, err := h.Sessions.Verify(r.Context(), session.FromRequest(r)); err == nil {
		if err := h.Sessions.Revoke(r.Context(), claims); err != nil {
			applog.Error(r, "auth.logout.revoke", err, nil)
		} else {
			applog.Audit(r, claims.ID, "auth.logout", nil)
		}
	}

	http.SetCookie(w, h.Sessions.ClearCookie())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// -------------- PROFILE (protected) ----------------

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.ClaimsFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	u, err := h.Creds.FindByID(r.Context(), claims.ID)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(w, r, "auth.profile", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"user": u})
}

func internalError(w http.ResponseWriter, r *http.Request, action string, err error) {
	applog.Error(r, action, err, nil)
	utils.JSONError(w, http.StatusInternalServerError, "Internal server error")
}
