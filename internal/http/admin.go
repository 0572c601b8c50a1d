package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/internal/services"
	"portfolio-backend-go/internal/store"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Replied   bool      `json:"replied"`
}

type AnalyticsResponse struct {
	PageViews          int        `json:"page_views"`
	ContactSubmissions int        `json:"contact_submissions"`
	TotalMessages      int        `json:"total_messages"`
	UnreadMessages     int        `json:"unread_messages"`
	LastContact        *time.Time `json:"last_contact"`
}

func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}
	if !services.VerifyAdminPassword(req.Password, s.Config.AdminPassword) {
		WriteError(w, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}
	access, err := s.Tokens.CreateAccessToken()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: access, TokenType: "bearer"})
}

func (s *Server) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	skip := parseInt(r.URL.Query().Get("skip"), 0)
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	messages, err := s.Store.ListMessages(r.Context(), skip, limit)
	if err != nil {
		log.Printf("admin: list messages: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	items := make([]MessageDTO, 0, len(messages))
	for _, msg := range messages {
		items = append(items, messageDTO(msg))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageId")
	if err := s.Store.MarkMessageRead(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteServiceError(w, services.ErrNotFound("Message not found"))
			return
		}
		log.Printf("admin: mark read %s: %v", id, err)
		WriteError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Message marked as read"})
}

func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	data, err := s.Store.Analytics(r.Context())
	if err != nil {
		log.Printf("admin: analytics: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	WriteJSON(w, http.StatusOK, AnalyticsResponse{
		PageViews:          data.PageViews,
		ContactSubmissions: data.ContactSubmissions,
		TotalMessages:      data.TotalMessages,
		UnreadMessages:     data.UnreadMessages,
		LastContact:        data.LastContact,
	})
}

func messageDTO(msg models.ContactMessage) MessageDTO {
	return MessageDTO{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Timestamp: msg.CreatedAt,
		Read:      msg.Read,
		Replied:   msg.Replied,
	}
}
