package health

import (
	"context"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthChecker reports liveness of the service and its database. The
// database pool is nil when the server runs on the in-memory store.
type HealthChecker struct {
	db *pgxpool.Pool
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type DetailedStatus struct {
	HealthStatus
	Host HostStats `json:"host"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	Goroutines    int     `json:"goroutines"`
}

func NewHealthChecker(db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status == "unhealthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds host-level stats for the ops dashboard.
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	detail := DetailedStatus{
		HealthStatus: h.CheckBasic(),
		Host:         HostStats{Goroutines: runtime.NumGoroutine()},
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		detail.Host.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		detail.Host.MemoryPercent = vm.UsedPercent
		detail.Host.MemoryUsedMB = vm.Used / (1024 * 1024)
	}

	return detail
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	if h.db == nil {
		// In-memory mode: nothing to ping, the store is process-local.
		return DatabaseHealth{Status: "in-memory"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
