package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.brevo.com/v3"

// Brevo sends transactional email through the Brevo (Sendinblue) API.
// The API answers 201 on accepted sends.
type Brevo struct {
	APIKey     string
	AdminEmail string
	SenderName string
	BaseURL    string
	Client     *http.Client
}

func NewBrevo(apiKey, adminEmail string, timeout time.Duration) *Brevo {
	return &Brevo{
		APIKey:     apiKey,
		AdminEmail: adminEmail,
		SenderName: "Portfolio Contact Form",
		BaseURL:    defaultBaseURL,
		Client:     &http.Client{Timeout: timeout},
	}
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (b *Brevo) Send(ctx context.Context, kind Kind, payload Payload) bool {
	var email brevoEmail
	switch kind {
	case KindAdminAlert:
		email = b.adminAlert(payload)
	case KindAutoReply:
		email = b.autoReply(payload)
	default:
		log.Printf("notify: unknown kind %q", kind)
		return false
	}

	body, err := json.Marshal(email)
	if err != nil {
		log.Printf("notify: encode %s: %v", kind, err)
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		log.Printf("notify: request %s: %v", kind, err)
		return false
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", b.APIKey)

	resp, err := b.Client.Do(req)
	if err != nil {
		log.Printf("notify: send %s: %v", kind, err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Printf("notify: send %s: unexpected status %d", kind, resp.StatusCode)
		return false
	}
	return true
}

func (b *Brevo) adminAlert(p Payload) brevoEmail {
	content := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #06b6d4;">New Contact Form Submission</h2>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Subject:</strong> %s</p>
    <p><strong>Message:</strong></p>
    <div style="background: white; padding: 15px; border-radius: 4px; border-left: 4px solid #06b6d4;">%s</div>
  </div>
  <p style="color: #666; font-size: 14px;">This message was sent from your portfolio contact form.</p>
</div>`,
		htmlEscape(p.Name), htmlEscape(p.Email), htmlEscape(p.Subject),
		strings.ReplaceAll(htmlEscape(p.Message), "\n", "<br>"))
	return brevoEmail{
		Sender:      brevoAddress{Name: b.SenderName, Email: b.AdminEmail},
		To:          []brevoAddress{{Email: b.AdminEmail}},
		Subject:     "New Contact Form Submission: " + p.Subject,
		HTMLContent: content,
	}
}

func (b *Brevo) autoReply(p Payload) brevoEmail {
	content := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #06b6d4;">Thank you for reaching out!</h2>
  <p>Hi %s,</p>
  <p>Thank you for your message regarding "%s". I have received your inquiry and will get back to you within 24-48 hours.</p>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #333; margin-top: 0;">Your Message:</h3>
    <p style="color: #666; font-style: italic;">"%s"</p>
  </div>
  <p>Best regards,<br><strong>%s</strong></p>
  <div style="border-top: 1px solid #eee; padding-top: 20px; margin-top: 30px; font-size: 12px; color: #999;">
    <p>This is an automated response. Please do not reply to this email.</p>
  </div>
</div>`,
		htmlEscape(p.Name), htmlEscape(p.Subject), htmlEscape(p.Message), htmlEscape(b.SenderName))
	return brevoEmail{
		Sender:      brevoAddress{Name: b.SenderName, Email: b.AdminEmail},
		To:          []brevoAddress{{Name: p.Name, Email: p.Email}},
		Subject:     "Thank you for contacting me - Re: " + p.Subject,
		HTMLContent: content,
	}
}

func htmlEscape(value string) string {
	return html.EscapeString(value)
}
