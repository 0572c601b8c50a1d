package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type capturedSend struct {
	path   string
	apiKey string
	email  brevoEmail
}

func newTestBrevo(t *testing.T, status int) (*Brevo, *[]capturedSend) {
	t.Helper()
	var mu sync.Mutex
	captured := &[]capturedSend{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var email brevoEmail
		_ = json.NewDecoder(r.Body).Decode(&email)
		mu.Lock()
		*captured = append(*captured, capturedSend{
			path:   r.URL.Path,
			apiKey: r.Header.Get("api-key"),
			email:  email,
		})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	client := NewBrevo("test-key", "owner@example.com", 2*time.Second)
	client.SenderName = "Test Owner"
	client.BaseURL = server.URL
	return client, captured
}

func testPayload() Payload {
	return Payload{
		Name:    "Ann",
		Email:   "ann@x.com",
		Subject: "Hi",
		Message: "Hello\nthere",
	}
}

func TestBrevo_AdminAlert(t *testing.T) {
	client, captured := newTestBrevo(t, http.StatusCreated)
	if !client.Send(context.Background(), KindAdminAlert, testPayload()) {
		t.Fatal("expected success on 201")
	}
	if len(*captured) != 1 {
		t.Fatalf("expected 1 send, got %d", len(*captured))
	}
	sent := (*captured)[0]
	if sent.path != "/smtp/email" {
		t.Errorf("expected /smtp/email, got %q", sent.path)
	}
	if sent.apiKey != "test-key" {
		t.Errorf("expected api-key header, got %q", sent.apiKey)
	}
	if len(sent.email.To) != 1 || sent.email.To[0].Email != "owner@example.com" {
		t.Errorf("admin alert must go to the admin address, got %+v", sent.email.To)
	}
	if !strings.Contains(sent.email.Subject, "Hi") {
		t.Errorf("expected submission subject in email subject, got %q", sent.email.Subject)
	}
	if !strings.Contains(sent.email.HTMLContent, "ann@x.com") {
		t.Error("expected submitter email in alert body")
	}
	if !strings.Contains(sent.email.HTMLContent, "Hello<br>there") {
		t.Error("expected newline converted to <br> in alert body")
	}
}

func TestBrevo_AutoReply(t *testing.T) {
	client, captured := newTestBrevo(t, http.StatusCreated)
	if !client.Send(context.Background(), KindAutoReply, testPayload()) {
		t.Fatal("expected success on 201")
	}
	sent := (*captured)[0]
	if len(sent.email.To) != 1 || sent.email.To[0].Email != "ann@x.com" {
		t.Errorf("auto reply must go to the submitter, got %+v", sent.email.To)
	}
	if !strings.Contains(sent.email.HTMLContent, "Hi Ann,") {
		t.Error("expected greeting with submitter name")
	}
}

func TestBrevo_EscapesHTML(t *testing.T) {
	client, captured := newTestBrevo(t, http.StatusCreated)
	payload := testPayload()
	payload.Message = `<script>alert("x")</script>`
	client.Send(context.Background(), KindAdminAlert, payload)
	sent := (*captured)[0]
	if strings.Contains(sent.email.HTMLContent, "<script>") {
		t.Error("message content must be HTML-escaped")
	}
}

func TestBrevo_NonCreatedStatusFails(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError} {
		client, _ := newTestBrevo(t, status)
		if client.Send(context.Background(), KindAdminAlert, testPayload()) {
			t.Errorf("status %d: expected failure", status)
		}
	}
}

func TestBrevo_UnreachableServerFails(t *testing.T) {
	client := NewBrevo("test-key", "owner@example.com", 100*time.Millisecond)
	client.BaseURL = "http://127.0.0.1:1"
	if client.Send(context.Background(), KindAdminAlert, testPayload()) {
		t.Error("expected failure against unreachable server")
	}
}

func TestBrevo_UnknownKind(t *testing.T) {
	client, captured := newTestBrevo(t, http.StatusCreated)
	if client.Send(context.Background(), Kind("bogus"), testPayload()) {
		t.Error("expected failure for unknown kind")
	}
	if len(*captured) != 0 {
		t.Error("unknown kind must not hit the API")
	}
}

func TestNoop(t *testing.T) {
	if (Noop{}).Send(context.Background(), KindAdminAlert, testPayload()) {
		t.Error("noop notifier reports failure")
	}
}
