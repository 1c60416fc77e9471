package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
)

type contextKey string

const usernameKey contextKey = "username"

// requireAuth rejects requests without a valid bearer token and stores the
// authenticated username on the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		s.mu.Lock()
		username, valid := s.tokens[token]
		s.mu.Unlock()
		if !valid {
			respondError(w, http.StatusUnauthorized, "Token expired or invalid")
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the username set by requireAuth.
func currentUser(r *http.Request) string {
	username, _ := r.Context().Value(usernameKey).(string)
	return username
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Username]; exists {
		s.mu.Unlock()
		respondError(w, http.StatusConflict, "Username already taken")
		return
	}
	s.users[req.Username] = user{username: req.Username, password: req.Password, email: req.Email}
	token := uuid.NewString()
	s.tokens[token] = req.Username
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, api.AuthResponse{
		Token:    token,
		Message:  "User registered successfully",
		Username: req.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	u, exists := s.users[req.Username]
	if !exists || u.password != req.Password {
		s.mu.Unlock()
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token := uuid.NewString()
	s.tokens[token] = req.Username
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, api.AuthResponse{
		Token:    token,
		Message:  "Login successful",
		Username: req.Username,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid":   true,
		"message": "Token is valid",
	})
}

// RevokeToken invalidates a previously issued token. Tests use it to
// simulate server-side session expiry.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// RevokeAllTokens invalidates every issued token.
func (s *Server) RevokeAllTokens() {
	s.mu.Lock()
	s.tokens = make(map[string]string)
	s.mu.Unlock()
}
