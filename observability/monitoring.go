package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats aggregates the live metrics exposed by the debug server.
type MonitoringStats struct {
	ActiveRooms      int     `json:"active_rooms"`
	ConnectedClients int     `json:"connected_clients"`
	MessagesAppended uint64  `json:"messages_appended"`
	SharesStarted    uint64  `json:"shares_started"`
	SharesDenied     uint64  `json:"shares_denied"`
	CensoredHits     uint64  `json:"censored_hits"`
	CpuPercent       float64 `json:"cpu_percent"`
	RssMb            uint64  `json:"rss_mb"`
	AllocMemMb       uint64  `json:"alloc_mem_mb"`
	NumGC            uint32  `json:"num_gc"`
	UptimeSeconds    int64   `json:"uptime_seconds"`
}

// MonitoringManager keeps the real-time counters behind the stats
// endpoint. Hot-path increments are atomics; the composite snapshot is
// rebuilt on demand under the mutex.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	startedAt   time.Time

	messagesAppended uint64
	sharesStarted    uint64
	sharesDenied     uint64
	censoredHits     uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log:       log,
		startedAt: time.Now(),
	}
}

func (mm *MonitoringManager) IncrMessagesAppended() {
	atomic.AddUint64(&mm.messagesAppended, 1)
}

func (mm *MonitoringManager) IncrSharesStarted() {
	atomic.AddUint64(&mm.sharesStarted, 1)
}

func (mm *MonitoringManager) IncrSharesDenied() {
	atomic.AddUint64(&mm.sharesDenied, 1)
}

func (mm *MonitoringManager) IncrCensoredHits() {
	atomic.AddUint64(&mm.censoredHits, 1)
}

// UpdateRooms records the current room and connection counts.
func (mm *MonitoringManager) UpdateRooms(rooms, clients int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.ActiveRooms = rooms
	mm.latestStats.ConnectedClients = clients
}

// UpdateProcess records the self-stats sampled by the monitor worker.
func (mm *MonitoringManager) UpdateProcess(cpuPercent float64, rssBytes uint64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.CpuPercent = cpuPercent
	mm.latestStats.RssMb = rssBytes / 1024 / 1024
}

// GetLatest rebuilds the snapshot from the atomic counters and the Go
// runtime, then returns it by value.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.latestStats.MessagesAppended = atomic.LoadUint64(&mm.messagesAppended)
	mm.latestStats.SharesStarted = atomic.LoadUint64(&mm.sharesStarted)
	mm.latestStats.SharesDenied = atomic.LoadUint64(&mm.sharesDenied)
	mm.latestStats.CensoredHits = atomic.LoadUint64(&mm.censoredHits)
	mm.latestStats.UptimeSeconds = int64(time.Since(mm.startedAt).Seconds())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC

	mm.log.Debug("Stats snapshot",
		"messages", mm.latestStats.MessagesAppended,
		"rooms", mm.latestStats.ActiveRooms,
		"mem_mb", mm.latestStats.AllocMemMb,
	)
	return mm.latestStats
}
