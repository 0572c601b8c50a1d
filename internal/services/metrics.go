package services

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/internal/store"
)

// CaptureMetrics takes a point-in-time process/system sample and persists it.
// Samples are taken on demand when the dashboard asks for them; there is no
// background sampling loop.
func CaptureMetrics(ctx context.Context, s store.Store, diskPath string) (models.ServerMetricSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}

	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		if info, _ := proc.MemoryInfo(); info != nil {
			processRSS = int64(info.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPUValue := 0.0
	if sysCPU, _ := cpu.Percent(0, false); len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}

	sample := models.ServerMetricSample{
		ID:              uuid.NewString(),
		CapturedAt:      time.Now().UTC(),
		ProcessRSSBytes: processRSS,
		ProcessCpuLoad:  processCPU,
		SystemCpuLoad:   sysCPUValue,
	}
	if memStat != nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if diskStat != nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}

	if err := s.InsertMetricSample(ctx, sample); err != nil {
		return models.ServerMetricSample{}, err
	}
	return sample, nil
}
