package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// Auth groups the login, logout and verify handlers.
//
// By default login accepts any email with no credential check, matching
// the site this replaces (its allow-list was present but bypassed with
// an "allow any email" switch; whether the list was ever meant to be the
// real gate is unknown). Both controls are opt-in here: allowEmails
// restricts who may log in, passwordHash adds a bcrypt password check.
type Auth struct {
	gate         *session.Gate
	allowEmails  []string
	passwordHash string
}

// NewAuth creates the auth handler group. allowEmails and passwordHash
// may be empty; see the Auth doc for what that means.
func NewAuth(gate *session.Gate, allowEmails []string, passwordHash string) *Auth {
	return &Auth{
		gate:         gate,
		allowEmails:  allowEmails,
		passwordHash: passwordHash,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login establishes an admin session and sets the cookie pair.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if len(a.allowEmails) > 0 && !contains(a.allowEmails, req.Email) {
		slog.Warn("login rejected by allow-list", "email", req.Email)
		writeError(w, http.StatusForbidden, "Unauthorized access")
		return
	}

	if a.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(req.Password)); err != nil {
			slog.Warn("login rejected by password check", "email", req.Email)
			writeError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
	}

	a.gate.Issue(w, req.Email)
	slog.Info("admin logged in", "email", req.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    map[string]string{"email": req.Email},
	})
}

// Logout clears the cookie pair.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.gate.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Verify reports whether the request carries a valid session.
func (a *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	sess := a.gate.FromRequest(r)
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]string{
			"email": sess.Email,
			"role":  sess.Role,
		},
	})
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
