package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/xelth-com/eckshipgo/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles user login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := decodeJSON(req, &loginReq); err != nil {
		respondAppError(w, req, err)
		return
	}

	// 1. Find User
	user, err := r.deps.Users.FindUserByEmail(req.Context(), strings.TrimSpace(loginReq.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 2. Check Password
	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 3. Update Last Login
	now := time.Now()
	user.LastLogin = &now
	if err := r.deps.Users.TouchLogin(req.Context(), user); err != nil {
		r.deps.Log.Warnf("Failed to record login of %s: %v", user.Email, err)
	}

	// 4. Generate Tokens
	accessToken, refreshToken, err := utils.GenerateTokens(user, r.deps.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}
