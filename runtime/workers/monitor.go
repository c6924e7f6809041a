package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"watchroom/observability"
)

// MonitorWorker samples the server's own process every interval and
// feeds the monitoring manager, which backs the debug stats endpoint.
type MonitorWorker struct {
	log            *slog.Logger
	monitoring     *observability.MonitoringManager
	roomCounter    func() (rooms int, clients int)
	metricInterval time.Duration
}

func NewMonitorWorker(
	log *slog.Logger,
	monitoring *observability.MonitoringManager,
	roomCounter func() (int, int),
	metricInterval time.Duration,
) *MonitorWorker {
	return &MonitorWorker{
		log:            log,
		monitoring:     monitoring,
		roomCounter:    roomCounter,
		metricInterval: metricInterval,
	}
}

// Run executes the main loop of the worker, sampling health metrics (CPU, RAM) on each tick.
func (w *MonitorWorker) Run(ctx context.Context) error {
	w.log.Info("Starting monitor worker")
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.monitoring.UpdateProcess(cpu, rss)
			if w.roomCounter != nil {
				rooms, clients := w.roomCounter()
				w.monitoring.UpdateRooms(rooms, clients)
			}
		}
	}
}

// getSelfStats retrieves technical metrics (Memory and CPU) for the given process.
func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
