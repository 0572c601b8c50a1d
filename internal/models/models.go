package models

import "time"

type ContactMessage struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
	Read      bool      `db:"read"`
	Replied   bool      `db:"replied"`
}

type PortfolioSection struct {
	SectionName string    `db:"section_name"`
	Content     []byte    `db:"content"`
	LastUpdated time.Time `db:"last_updated"`
}

type PageView struct {
	ID        string    `db:"id"`
	Page      string    `db:"page"`
	UserAgent *string   `db:"user_agent"`
	IPAddress *string   `db:"ip_address"`
	CreatedAt time.Time `db:"created_at"`
}

// AnalyticsData is recomputed from the store on every request, never persisted.
type AnalyticsData struct {
	PageViews          int
	ContactSubmissions int
	TotalMessages      int
	UnreadMessages     int
	LastContact        *time.Time
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
