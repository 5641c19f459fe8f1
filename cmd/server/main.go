package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adaptlearn/internal/cache"
	"adaptlearn/internal/config"
	"adaptlearn/internal/genai"
	"adaptlearn/internal/repository"
	"adaptlearn/internal/service"
	"adaptlearn/internal/transport/rest"
	"adaptlearn/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Endpoint: %s", aiConfig.CompletionsEndpoint())
	log.Printf("  Model:    %s", aiConfig.Model)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (subject creation and chatbot will fail)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	subjectRepo := repository.NewSubjectRepo(db)
	examRepo := repository.NewExamRepo(db)
	attemptRepo := repository.NewAttemptRepo(db)
	levelRepo := repository.NewLevelRepo(db)

	// Initialize caches
	examCache := cache.NewExamCache(rdb)
	leaderboard := cache.NewLeaderboardCache(rdb)

	// Initialize services
	aiSvc := genai.NewService(genai.NewHTTPGateway(aiConfig))
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	subjectSvc := service.NewSubjectService(subjectRepo, examRepo, levelRepo, attemptRepo, examCache, aiSvc)
	examSvc := service.NewExamService(examRepo, attemptRepo, levelRepo, userRepo, examCache, leaderboard)
	userSvc := service.NewUserService(userRepo, attemptRepo, levelRepo, leaderboard)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	subjectSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		SubjectService: subjectSvc,
		ExamService:    examSvc,
		UserService:    userSvc,
		AI:             aiSvc,
		WSHub:          wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/auth/register")
		log.Println("  POST /api/auth/login")
		log.Println("  GET/POST /api/subjects")
		log.Println("  GET/DELETE /api/subjects/{id}")
		log.Println("  GET/POST /api/exams/{subjectId}")
		log.Println("  POST /api/chatbot")
		log.Println("  GET  /api/users/stats")
		log.Println("  GET  /api/users/leaderboard")
		log.Println("  WS   /api/ws/generation")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
