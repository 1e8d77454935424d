package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bolophil/SplitIt/internal/auth"
)

// AuthService exposes register/login over JSON HTTP.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/v1/auth/register.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Info("Register request", "email", req.Email)

	if req.Email == "" || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, auth.ErrInvalidCredentials)
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Email, req.DisplayName, req.PhoneNumber, req.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, authResponse{
		User: userResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			CreatedAt:   user.CreatedAt,
		},
		Token: token,
	})
}

// Login handles POST /api/v1/auth/login.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Info("Login request", "email", req.Email)

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, auth.ErrInvalidCredentials)
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusOK, authResponse{
		User: userResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			CreatedAt:   user.CreatedAt,
		},
		Token: token,
	})
}
