package services

import (
	"context"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/internal/notify"
	"portfolio-backend-go/internal/store"
)

const (
	maxNameLength    = 100
	maxSubjectLength = 200
	maxMessageLength = 2000
)

// ContactInput is a raw contact-form submission before validation.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// RequestMeta carries request metadata recorded with the tracking event.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// ValidateContactInput checks the submission constraints: name 1-100 chars,
// subject 1-200, message 1-2000 (rune counts, surrounding whitespace
// stripped), and a syntactically valid email address.
func ValidateContactInput(input ContactInput) (ContactInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if n := len([]rune(input.Name)); n < 1 || n > maxNameLength {
		return ContactInput{}, ErrValidation("Name must be between 1 and 100 characters")
	}
	addr, err := mail.ParseAddress(input.Email)
	if err != nil || addr.Address != input.Email {
		return ContactInput{}, ErrValidation("A valid email address is required")
	}
	if n := len([]rune(input.Subject)); n < 1 || n > maxSubjectLength {
		return ContactInput{}, ErrValidation("Subject must be between 1 and 200 characters")
	}
	if n := len([]rune(input.Message)); n < 1 || n > maxMessageLength {
		return ContactInput{}, ErrValidation("Message must be between 1 and 2000 characters")
	}
	return input, nil
}

// ContactPipeline validates and persists a submission, then fires the
// notification emails and the tracking event. Only validation and the insert
// can fail the request; everything after a durable insert is best effort.
type ContactPipeline struct {
	Store    store.Store
	Notifier notify.Notifier
	// Timeout bounds each outbound side-effect call after the insert.
	Timeout time.Duration
}

func (p *ContactPipeline) Submit(ctx context.Context, input ContactInput, meta RequestMeta) (models.ContactMessage, error) {
	input, err := ValidateContactInput(input)
	if err != nil {
		return models.ContactMessage{}, err
	}

	msg := models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Store.InsertMessage(ctx, msg); err != nil {
		log.Printf("contact: insert message: %v", err)
		return models.ContactMessage{}, ErrInternal("Failed to send message. Please try again later.")
	}

	payload := notify.Payload{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
	}

	// The email and tracking branches are independent of each other and of
	// the response; run them concurrently, each on its own deadline.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.Timeout)
		defer cancel()
		if !p.Notifier.Send(notifyCtx, notify.KindAdminAlert, payload) {
			log.Printf("contact: admin notification failed for message %s", msg.ID)
		}
		if !p.Notifier.Send(notifyCtx, notify.KindAutoReply, payload) {
			log.Printf("contact: auto-reply failed for message %s", msg.ID)
		}
	}()
	go func() {
		defer wg.Done()
		trackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.Timeout)
		defer cancel()
		TrackPageView(trackCtx, p.Store, "contact_submission", meta)
	}()
	wg.Wait()

	return msg, nil
}

// TrackPageView records a page-view event. It never fails the caller: on
// store error the event is dropped and logged.
func TrackPageView(ctx context.Context, s store.Store, page string, meta RequestMeta) {
	view := models.PageView{
		ID:        uuid.NewString(),
		Page:      page,
		UserAgent: nullIfEmpty(meta.UserAgent),
		IPAddress: nullIfEmpty(meta.IPAddress),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.InsertPageView(ctx, view); err != nil {
		log.Printf("track: page view %q dropped: %v", page, err)
	}
}

func nullIfEmpty(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
