package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adaptlearn/internal/genai"
	"adaptlearn/internal/service"
	"adaptlearn/internal/transport/rest/middleware"
)

// SubjectHandler handles subject endpoints
type SubjectHandler struct {
	subjectSvc *service.SubjectService
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjectSvc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// CreateSubjectRequest is the request body for creating a subject
type CreateSubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /api/subjects (admin). Generation failures surface as
// an opaque upstream error; callers never see transport or JSON detail.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "name and description are required")
		return
	}

	id, err := h.subjectSvc.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		var genErr *genai.GenerationError
		if errors.As(err, &genErr) {
			writeError(w, http.StatusBadGateway, "question generation failed")
			return
		}
		writeError(w, http.StatusInternalServerError, "error creating subject")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Subject created successfully", "id": id})
}

// List handles GET /api/subjects
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subjects, err := h.subjectSvc.ListWithLevels(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching subjects")
		return
	}

	writeJSON(w, http.StatusOK, subjects)
}

// Get handles GET /api/subjects/{id}
func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid subject ID format")
		return
	}

	subject, err := h.subjectSvc.GetWithLevel(r.Context(), middleware.GetUserID(r.Context()), id)
	if err == service.ErrSubjectNotFound {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching subject")
		return
	}

	writeJSON(w, http.StatusOK, subject)
}

// Delete handles DELETE /api/subjects/{id} (admin)
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid subject ID format")
		return
	}

	err := h.subjectSvc.Delete(r.Context(), id)
	if err == service.ErrSubjectNotFound {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error deleting subject")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Subject deleted successfully"})
}
