package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"adaptlearn/internal/genai"
	"adaptlearn/internal/service"
	"adaptlearn/internal/transport/rest/handler"
	"adaptlearn/internal/transport/rest/middleware"
	"adaptlearn/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SubjectService *service.SubjectService
	ExamService    *service.ExamService
	UserService    *service.UserService
	AI             *genai.Service
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	subjectHandler := handler.NewSubjectHandler(c.SubjectService)
	examHandler := handler.NewExamHandler(c.ExamService)
	userHandler := handler.NewUserHandler(c.UserService)
	chatbotHandler := handler.NewChatbotHandler(c.AI)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	api.HandleFunc("/ws/generation", wsHandler.GenerationWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes (any role)
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)

	authed.HandleFunc("/subjects", subjectHandler.List).Methods("GET", "OPTIONS")
	authed.HandleFunc("/subjects/{id}", subjectHandler.Get).Methods("GET", "OPTIONS")
	authed.HandleFunc("/exams/{subjectId}", examHandler.Get).Methods("GET", "OPTIONS")
	authed.HandleFunc("/exams/{subjectId}", examHandler.Submit).Methods("POST", "OPTIONS")
	authed.HandleFunc("/chatbot", chatbotHandler.Ask).Methods("POST", "OPTIONS")
	authed.HandleFunc("/users/stats", userHandler.Stats).Methods("GET", "OPTIONS")
	authed.HandleFunc("/users/leaderboard", userHandler.Leaderboard).Methods("GET", "OPTIONS")

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(authMW.RequireAuth, authMW.RequireAdmin)

	admin.HandleFunc("/subjects", subjectHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/subjects/{id}", subjectHandler.Delete).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/users/stats/{id}", userHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
