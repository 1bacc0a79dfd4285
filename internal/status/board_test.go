package status

import (
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

func TestBoard_Sources(t *testing.T) {
	// GIVEN
	board := NewBoard(10)

	// WHEN
	board.PublishSource(SourceStatus{ID: "ambient", Role: "ambient", Samples: []float64{20}, Average: 20, Max: 20})
	board.PublishSource(SourceStatus{ID: "disk", Role: "disk", Samples: []float64{30, 40}, Average: 35, Max: 40})
	board.PublishSource(SourceStatus{ID: "ambient", Role: "ambient", Samples: []float64{21}, Average: 21, Max: 21})

	// THEN
	assert.Len(t, board.Sources(), 2)
	ambient, exists := board.Source("ambient")
	assert.True(t, exists)
	assert.Equal(t, 21.0, ambient.Average)
	_, exists = board.Source("unknown")
	assert.False(t, exists)
}

func TestBoard_Controller(t *testing.T) {
	// GIVEN
	board := NewBoard(10)

	// WHEN
	_, existsBefore := board.Controller()
	board.PublishController(ControllerStatus{
		Status:         controller.Status{Mode: controller.ModeManual.String(), LastFanSetting: 2},
		Representative: 30.5,
		Ambient:        20,
		UpdatedAt:      time.Unix(1000, 0),
	})
	status, existsAfter := board.Controller()

	// THEN
	assert.False(t, existsBefore)
	assert.True(t, existsAfter)
	assert.Equal(t, "set", status.Mode)
	assert.Equal(t, 2, status.LastFanSetting)
	assert.Equal(t, 30.5, status.Representative)
}

func TestBoard_HistoryEmpty(t *testing.T) {
	// GIVEN
	board := NewBoard(5)

	// WHEN
	history := board.History()

	// THEN
	assert.Equal(t, HistorySummary{Size: 5}, history)
}

func TestBoard_History(t *testing.T) {
	// GIVEN
	board := NewBoard(3)

	// WHEN
	board.AppendRepresentative(30)
	board.AppendRepresentative(40)
	board.AppendRepresentative(50)

	// THEN
	history := board.History()
	assert.Equal(t, 3, history.Size)
	assert.Equal(t, 3, history.Count)
	assert.Equal(t, 30.0, history.Min)
	assert.Equal(t, 40.0, history.Avg)
	assert.Equal(t, 50.0, history.Max)
}

func TestBoard_HistoryFirstValueFillsWindow(t *testing.T) {
	// GIVEN
	board := NewBoard(4)

	// WHEN
	board.AppendRepresentative(42)

	// THEN
	history := board.History()
	assert.Equal(t, 42.0, history.Min)
	assert.Equal(t, 42.0, history.Max)
	assert.Equal(t, 42.0, history.Avg)
}

func TestBoard_ConcurrentAccess(t *testing.T) {
	// GIVEN
	board := NewBoard(10)
	wg := sync.WaitGroup{}

	// WHEN
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			board.PublishSource(SourceStatus{ID: "core", Average: float64(i)})
			board.PublishController(ControllerStatus{Representative: float64(i)})
			board.AppendRepresentative(float64(i))
		}(i)
		go func() {
			defer wg.Done()
			board.Sources()
			board.Controller()
			board.History()
		}()
	}
	wg.Wait()

	// THEN
	assert.Len(t, board.Sources(), 1)
	_, exists := board.Controller()
	assert.True(t, exists)
}
