package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"portfolio-backend-go/internal/models"
)

// PG implements Store on top of a pooled sqlx connection to Postgres.
type PG struct {
	DB *sqlx.DB
}

func NewPG(db *sqlx.DB) *PG {
	return &PG{DB: db}
}

func (s *PG) InsertMessage(ctx context.Context, msg models.ContactMessage) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO contact_messages (id, name, email, subject, message, created_at, read, replied)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt, msg.Read, msg.Replied)
	return err
}

func (s *PG) ListMessages(ctx context.Context, skip, limit int) ([]models.ContactMessage, error) {
	rows := []models.ContactMessage{}
	err := s.DB.SelectContext(ctx, &rows, `
SELECT id, name, email, subject, message, created_at, read, replied
FROM contact_messages
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, skip)
	return rows, err
}

func (s *PG) MarkMessageRead(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, `UPDATE contact_messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PG) Analytics(ctx context.Context) (models.AnalyticsData, error) {
	var data models.AnalyticsData
	if err := s.DB.GetContext(ctx, &data.TotalMessages, `SELECT count(*) FROM contact_messages`); err != nil {
		return models.AnalyticsData{}, err
	}
	if err := s.DB.GetContext(ctx, &data.UnreadMessages, `SELECT count(*) FROM contact_messages WHERE read = FALSE`); err != nil {
		return models.AnalyticsData{}, err
	}
	if err := s.DB.GetContext(ctx, &data.PageViews, `SELECT count(*) FROM page_views`); err != nil {
		return models.AnalyticsData{}, err
	}
	data.ContactSubmissions = data.TotalMessages
	var last time.Time
	err := s.DB.GetContext(ctx, &last, `SELECT created_at FROM contact_messages ORDER BY created_at DESC LIMIT 1`)
	switch {
	case err == nil:
		data.LastContact = &last
	case errors.Is(err, sql.ErrNoRows):
		// no messages yet
	default:
		return models.AnalyticsData{}, err
	}
	return data, nil
}

func (s *PG) ListSections(ctx context.Context) ([]models.PortfolioSection, error) {
	rows := []models.PortfolioSection{}
	err := s.DB.SelectContext(ctx, &rows, `
SELECT section_name, content, last_updated
FROM portfolio_sections
ORDER BY section_name ASC
`)
	return rows, err
}

func (s *PG) UpsertSection(ctx context.Context, section models.PortfolioSection) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO portfolio_sections (section_name, content, last_updated)
VALUES ($1,$2,$3)
ON CONFLICT (section_name)
DO UPDATE SET content = EXCLUDED.content, last_updated = EXCLUDED.last_updated
`, section.SectionName, section.Content, section.LastUpdated)
	return err
}

func (s *PG) InsertPageView(ctx context.Context, view models.PageView) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO page_views (id, page, user_agent, ip_address, created_at)
VALUES ($1,$2,$3,$4,$5)
`, view.ID, view.Page, view.UserAgent, view.IPAddress, view.CreatedAt)
	return err
}

func (s *PG) InsertMetricSample(ctx context.Context, sample models.ServerMetricSample) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO server_metric_samples (
  id, captured_at, process_rss_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes,
  process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, sample.ID, sample.CapturedAt, sample.ProcessRSSBytes, sample.SystemMemoryTotal,
		sample.SystemMemoryUsed, sample.DiskTotalBytes, sample.DiskUsedBytes,
		sample.ProcessCpuLoad, sample.SystemCpuLoad)
	return err
}

func (s *PG) LatestMetricSamples(ctx context.Context, limit int) ([]models.ServerMetricSample, error) {
	rows := []models.ServerMetricSample{}
	if err := s.DB.SelectContext(ctx, &rows, `
SELECT id, captured_at, process_rss_bytes, system_memory_total_bytes,
       system_memory_used_bytes, disk_total_bytes, disk_used_bytes,
       process_cpu_load, system_cpu_load
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	// oldest first for charting
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
