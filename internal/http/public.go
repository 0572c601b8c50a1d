package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"portfolio-backend-go/internal/services"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Portfolio API is running"})
}

// SubmitContact handles POST /api/contact. The caller sees success once the
// message is durably stored; email delivery does not change the outcome.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid payload")
		return
	}
	input := services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if _, err := s.Contact.Submit(r.Context(), input, requestMeta(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Your message has been received. I'll get back to you soon.",
	})
}

// TrackPage handles POST /api/track/page-view?page=. It always reports
// success; a failed store write is dropped and logged.
func (s *Server) TrackPage(w http.ResponseWriter, r *http.Request) {
	page := strings.TrimSpace(r.URL.Query().Get("page"))
	if page == "" {
		page = "home"
	}
	services.TrackPageView(r.Context(), s.Store, page, requestMeta(r))
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func requestMeta(r *http.Request) services.RequestMeta {
	return services.RequestMeta{
		UserAgent: trimString(r.Header.Get("User-Agent"), 512),
		IPAddress: trimString(resolveClientIP(r), 64),
	}
}

func resolveClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return r.RemoteAddr
}

func trimString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

func parseInt(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
