package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"portfolio-backend-go/internal/models"
)

type SectionDTO struct {
	SectionName string          `json:"section_name"`
	Content     json.RawMessage `json:"content"`
	LastUpdated time.Time       `json:"last_updated"`
}

type PortfolioUpdateRequest struct {
	SectionName string          `json:"section_name"`
	Content     json.RawMessage `json:"content"`
}

func (s *Server) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	sections, err := s.Store.ListSections(r.Context())
	if err != nil {
		log.Printf("admin: list portfolio: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch portfolio data")
		return
	}
	items := make([]SectionDTO, 0, len(sections))
	for _, section := range sections {
		items = append(items, SectionDTO{
			SectionName: section.SectionName,
			Content:     json.RawMessage(section.Content),
			LastUpdated: section.LastUpdated,
		})
	}
	WriteJSON(w, http.StatusOK, items)
}

// UpdatePortfolio upserts one section by name, fully replacing its content.
func (s *Server) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req PortfolioUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid payload")
		return
	}
	name := strings.TrimSpace(req.SectionName)
	if name == "" {
		WriteError(w, http.StatusUnprocessableEntity, "section_name is required")
		return
	}
	content := req.Content
	if len(content) == 0 {
		content = json.RawMessage(`{}`)
	}
	section := models.PortfolioSection{
		SectionName: name,
		Content:     []byte(content),
		LastUpdated: time.Now().UTC(),
	}
	if err := s.Store.UpsertSection(r.Context(), section); err != nil {
		log.Printf("admin: upsert portfolio %q: %v", name, err)
		WriteError(w, http.StatusInternalServerError, "Failed to update portfolio section")
		return
	}
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Portfolio section updated successfully"})
}
