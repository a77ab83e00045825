package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/contact"
)

// Contact handles contact-form submissions from the public site.
type Contact struct {
	store *contact.Store
}

// NewContact creates the contact handler.
func NewContact(store *contact.Store) *Contact {
	return &Contact{store: store}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"subject"`
	Phone   string `json:"phone"`
}

// Submit validates and persists one contact-form submission.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	added, err := c.store.Add(r.Context(), contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Subject: req.Subject,
		Phone:   req.Phone,
	})
	if err != nil {
		slog.Error("store contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	slog.Info("contact submission received", "id", added.ID, "email", added.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully"})
}
