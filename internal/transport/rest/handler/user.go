package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"adaptlearn/internal/model"
	"adaptlearn/internal/service"
	"adaptlearn/internal/transport/rest/middleware"
)

const defaultLeaderboardSize = 10

// UserHandler handles user statistics endpoints
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Stats handles GET /api/users/stats and GET /api/users/stats/{id}.
// Admins may query any user; students only themselves.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if id := mux.Vars(r)["id"]; id != "" {
		if middleware.GetRole(r.Context()) != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		userID = id
	}

	stats, err := h.userSvc.Stats(r.Context(), userID)
	if err == service.ErrUserNotFound {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching user statistics")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Leaderboard handles GET /api/users/leaderboard
func (h *UserHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.userSvc.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
