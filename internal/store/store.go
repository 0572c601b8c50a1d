package store

import (
	"context"
	"errors"

	"portfolio-backend-go/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary for the three document collections
// (contact messages, portfolio sections, page views) and the server metric
// samples kept for the admin dashboard.
type Store interface {
	InsertMessage(ctx context.Context, msg models.ContactMessage) error
	ListMessages(ctx context.Context, skip, limit int) ([]models.ContactMessage, error)
	// MarkMessageRead sets the read flag for the given id. It returns
	// ErrNotFound when no message has that id; re-marking an already-read
	// message succeeds.
	MarkMessageRead(ctx context.Context, id string) error
	Analytics(ctx context.Context) (models.AnalyticsData, error)

	ListSections(ctx context.Context) ([]models.PortfolioSection, error)
	UpsertSection(ctx context.Context, section models.PortfolioSection) error

	InsertPageView(ctx context.Context, view models.PageView) error

	InsertMetricSample(ctx context.Context, sample models.ServerMetricSample) error
	LatestMetricSamples(ctx context.Context, limit int) ([]models.ServerMetricSample, error)
}
