package status

import (
	"github.com/asecurityteam/rolling"
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
	"sync"
	"sync/atomic"
	"time"
)

// SourceStatus is a snapshot of a single temperature source
type SourceStatus struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Samples   []float64 `json:"samples"`
	Average   float64   `json:"average"`
	Max       float64   `json:"max"`
	FetchedAt time.Time `json:"fetchedAt"`
	LastFetch time.Time `json:"lastFetch"`
	Stale     bool      `json:"stale"`
}

// ControllerStatus is a snapshot of the fan mode controller and the temperatures it acted on
type ControllerStatus struct {
	controller.Status
	Representative float64   `json:"representative"`
	Ambient        float64   `json:"ambient"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HistorySummary describes the recent representative temperatures
type HistorySummary struct {
	Size  int     `json:"size"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
}

// Board holds the latest snapshots published by the control loop.
// It is safe for concurrent use, readers never see partially updated values.
type Board struct {
	sources    cmap.ConcurrentMap[string, SourceStatus]
	controller atomic.Pointer[ControllerStatus]

	historyLock sync.RWMutex
	historySize int
	history     *rolling.PointPolicy
	historyInit bool
}

func NewBoard(historySize int) *Board {
	if historySize < 1 {
		historySize = 1
	}
	return &Board{
		sources:     cmap.New[SourceStatus](),
		historySize: historySize,
		history:     util.CreateRollingWindow(historySize),
	}
}

func (b *Board) PublishSource(status SourceStatus) {
	b.sources.Set(status.ID, status)
}

func (b *Board) PublishController(status ControllerStatus) {
	b.controller.Store(&status)
}

// AppendRepresentative adds a representative temperature to the history window
func (b *Board) AppendRepresentative(value float64) {
	b.historyLock.Lock()
	defer b.historyLock.Unlock()

	if !b.historyInit {
		// a fresh window holds zeros only
		util.FillWindow(b.history, b.historySize, value)
		b.historyInit = true
		return
	}
	b.history.Append(value)
}

// Sources returns all source snapshots by id
func (b *Board) Sources() map[string]SourceStatus {
	return b.sources.Items()
}

func (b *Board) Source(id string) (SourceStatus, bool) {
	return b.sources.Get(id)
}

// Controller returns the latest controller snapshot, false if nothing was published yet
func (b *Board) Controller() (ControllerStatus, bool) {
	status := b.controller.Load()
	if status == nil {
		return ControllerStatus{}, false
	}
	return *status, true
}

func (b *Board) History() HistorySummary {
	b.historyLock.RLock()
	defer b.historyLock.RUnlock()

	summary := HistorySummary{Size: b.historySize}
	if !b.historyInit {
		return summary
	}
	summary.Count = util.GetWindowCount(b.history)
	summary.Min = util.GetWindowMin(b.history)
	summary.Avg = util.GetWindowAvg(b.history)
	summary.Max = util.GetWindowMax(b.history)
	return summary
}
