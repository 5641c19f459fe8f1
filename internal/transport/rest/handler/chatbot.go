package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"adaptlearn/internal/genai"
)

// ChatbotHandler answers free-text questions about a subject via the
// generation facade.
type ChatbotHandler struct {
	ai *genai.Service
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(ai *genai.Service) *ChatbotHandler {
	return &ChatbotHandler{ai: ai}
}

// AskRequest is the request body for the chatbot
type AskRequest struct {
	Subject  string `json:"subject"`
	Question string `json:"question"`
}

// Ask handles POST /api/chatbot
func (h *ChatbotHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.ai.AskAboutSubject(r.Context(), req.Subject, req.Question, nil)
	if err == genai.ErrMissingParams {
		writeError(w, http.StatusBadRequest, "subject and question are required")
		return
	}
	if err != nil {
		var genErr *genai.GenerationError
		if errors.As(err, &genErr) {
			writeError(w, http.StatusBadGateway, "generation failed")
			return
		}
		writeError(w, http.StatusInternalServerError, "error answering question")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}
