package httpapi

import (
	"log"
	"net/http"
	"time"

	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/internal/services"
)

type MetricSampleDTO struct {
	CapturedAt        time.Time `json:"captured_at"`
	ProcessRSSBytes   int64     `json:"process_rss_bytes"`
	SystemMemoryTotal int64     `json:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `json:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `json:"disk_total_bytes"`
	DiskUsedBytes     int64     `json:"disk_used_bytes"`
	ProcessCpuLoad    float64   `json:"process_cpu_load"`
	SystemCpuLoad     float64   `json:"system_cpu_load"`
}

type MetricsResponse struct {
	Current MetricSampleDTO   `json:"current"`
	History []MetricSampleDTO `json:"history"`
}

// ServerMetrics captures a fresh cpu/memory/disk sample and returns it with
// the recent history. Sampling happens only when the dashboard asks.
func (s *Server) ServerMetrics(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit < 1 || limit > 500 {
		limit = 120
	}
	current, err := services.CaptureMetrics(r.Context(), s.Store, s.Config.MetricsDiskPath)
	if err != nil {
		log.Printf("admin: capture metrics: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to capture metrics")
		return
	}
	history, err := s.Store.LatestMetricSamples(r.Context(), limit)
	if err != nil {
		log.Printf("admin: metrics history: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch metrics")
		return
	}
	items := make([]MetricSampleDTO, 0, len(history))
	for _, sample := range history {
		items = append(items, metricSampleDTO(sample))
	}
	WriteJSON(w, http.StatusOK, MetricsResponse{Current: metricSampleDTO(current), History: items})
}

func metricSampleDTO(sample models.ServerMetricSample) MetricSampleDTO {
	return MetricSampleDTO{
		CapturedAt:        sample.CapturedAt,
		ProcessRSSBytes:   sample.ProcessRSSBytes,
		SystemMemoryTotal: sample.SystemMemoryTotal,
		SystemMemoryUsed:  sample.SystemMemoryUsed,
		DiskTotalBytes:    sample.DiskTotalBytes,
		DiskUsedBytes:     sample.DiskUsedBytes,
		ProcessCpuLoad:    sample.ProcessCpuLoad,
		SystemCpuLoad:     sample.SystemCpuLoad,
	}
}
