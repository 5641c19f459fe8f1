// Command seed bootstraps the first admin account.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"adaptlearn/internal/config"
	"adaptlearn/internal/model"
	"adaptlearn/internal/repository"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	users := repository.NewUserRepo(mongoClient.Database(cfg.MongoDB))

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal("Lookup failed:", err)
	}
	if existing != nil {
		log.Printf("Admin %s already exists", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatal("Hashing failed:", err)
	}

	id, err := users.Create(ctx, &model.User{
		Name:     getEnvOrDefault("ADMIN_NAME", "Administrator"),
		Email:    email,
		Password: string(hash),
		Role:     model.RoleAdmin,
	})
	if err != nil {
		log.Fatal("Create failed:", err)
	}
	log.Printf("Created admin %s (%s)", email, id)
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
