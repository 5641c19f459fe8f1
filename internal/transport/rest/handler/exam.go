package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"adaptlearn/internal/model"
	"adaptlearn/internal/service"
	"adaptlearn/internal/transport/rest/middleware"
)

// ExamHandler handles exam endpoints
type ExamHandler struct {
	examSvc *service.ExamService
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examSvc *service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// SubmitExamRequest is the request body for submitting answers
type SubmitExamRequest struct {
	Answers []int `json:"answers"`
}

// Get handles GET /api/exams/{subjectId}?difficulty=easy
// Admins receive the full exam with answer keys and attempt summaries;
// students receive the redacted view.
func (h *ExamHandler) Get(w http.ResponseWriter, r *http.Request) {
	subjectID := mux.Vars(r)["subjectId"]
	difficulty, err := model.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if middleware.GetRole(r.Context()) == model.RoleAdmin {
		exam, attempts, err := h.examSvc.GetForAdmin(r.Context(), subjectID, difficulty)
		if err == service.ErrExamNotFound {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "error fetching exam")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"exam": exam, "attempts": attempts})
		return
	}

	view, err := h.examSvc.GetForStudent(r.Context(), middleware.GetUserID(r.Context()), subjectID, difficulty)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, view)
	case service.ErrExamLocked:
		writeError(w, http.StatusForbidden, err.Error())
	case service.ErrExamNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "error fetching exam")
	}
}

// Submit handles POST /api/exams/{subjectId}?difficulty=easy
func (h *ExamHandler) Submit(w http.ResponseWriter, r *http.Request) {
	subjectID := mux.Vars(r)["subjectId"]
	difficulty, err := model.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SubmitExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.examSvc.Submit(r.Context(), middleware.GetUserID(r.Context()), subjectID, difficulty, req.Answers)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, result)
	case service.ErrBadSubmission:
		writeError(w, http.StatusBadRequest, err.Error())
	case service.ErrExamLocked:
		writeError(w, http.StatusForbidden, err.Error())
	case service.ErrExamNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "error submitting exam")
	}
}
