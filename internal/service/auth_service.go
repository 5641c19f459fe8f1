package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"adaptlearn/internal/model"
	"adaptlearn/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("user already exists")
)

const (
	tokenLifetime = 30 * 24 * time.Hour
	bcryptCost    = 10
)

// AuthService handles registration, login and JWT validation
type AuthService struct {
	users     repository.UserRepo
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates a student account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleStudent,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(id, user.Role)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{ID: id, Name: name, Email: email, Role: user.Role, Token: token}, nil
}

// Login validates credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role, Token: token}, nil
}

// ValidateToken validates a JWT and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) generateToken(userID string, role model.Role) (string, error) {
	claims := &model.UserClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
