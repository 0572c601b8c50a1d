package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"portfolio-backend-go/internal/config"
	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/internal/notify"
	"portfolio-backend-go/internal/store"
)

// fakeStore is an in-memory store.Store used by the handler tests.
type fakeStore struct {
	mu       sync.Mutex
	messages []models.ContactMessage
	sections map[string]models.PortfolioSection
	views    []models.PageView
	samples  []models.ServerMetricSample
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sections: map[string]models.PortfolioSection{}}
}

func (f *fakeStore) InsertMessage(ctx context.Context, msg models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeStore) ListMessages(ctx context.Context, skip, limit int) ([]models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	sorted := append([]models.ContactMessage{}, f.messages...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if skip >= len(sorted) {
		return []models.ContactMessage{}, nil
	}
	sorted = sorted[skip:]
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeStore) MarkMessageRead(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Read = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Analytics(ctx context.Context) (models.AnalyticsData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.AnalyticsData{}, f.failWith
	}
	data := models.AnalyticsData{
		PageViews:          len(f.views),
		ContactSubmissions: len(f.messages),
		TotalMessages:      len(f.messages),
	}
	for _, msg := range f.messages {
		if !msg.Read {
			data.UnreadMessages++
		}
		if data.LastContact == nil || msg.CreatedAt.After(*data.LastContact) {
			created := msg.CreatedAt
			data.LastContact = &created
		}
	}
	return data, nil
}

func (f *fakeStore) ListSections(ctx context.Context) ([]models.PortfolioSection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	items := make([]models.PortfolioSection, 0, len(f.sections))
	for _, section := range f.sections {
		items = append(items, section)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SectionName < items[j].SectionName })
	return items, nil
}

func (f *fakeStore) UpsertSection(ctx context.Context, section models.PortfolioSection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sections[section.SectionName] = section
	return nil
}

func (f *fakeStore) InsertPageView(ctx context.Context, view models.PageView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.views = append(f.views, view)
	return nil
}

func (f *fakeStore) InsertMetricSample(ctx context.Context, sample models.ServerMetricSample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, sample)
	return nil
}

func (f *fakeStore) LatestMetricSamples(ctx context.Context, limit int) ([]models.ServerMetricSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := append([]models.ServerMetricSample{}, f.samples...)
	if len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Kind
	ok   bool
}

func (f *fakeNotifier) Send(ctx context.Context, kind notify.Kind, payload notify.Payload) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, kind)
	return f.ok
}

const testAdminPassword = "correct-horse"

func testConfig() config.Config {
	return config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "portfolio-test",
		TokenTTLSeconds:      28800,
		AdminPassword:        testAdminPassword,
		NotifyTimeoutSeconds: 2,
		MetricsDiskPath:      "/",
	}
}

func newTestServer(st store.Store, notifier notify.Notifier) *Server {
	if notifier == nil {
		notifier = &fakeNotifier{ok: true}
	}
	return NewServer(st, testConfig(), notifier)
}

// adminToken returns a valid bearer token for the test server.
func adminToken(s *Server) string {
	token, err := s.Tokens.CreateAccessToken()
	if err != nil {
		panic(err)
	}
	return token
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func messageFixture(id string, createdAt time.Time, read bool) models.ContactMessage {
	return models.ContactMessage{
		ID:        id,
		Name:      "Ann",
		Email:     "ann@x.com",
		Subject:   "Hi",
		Message:   "Hello",
		CreatedAt: createdAt,
		Read:      read,
	}
}
