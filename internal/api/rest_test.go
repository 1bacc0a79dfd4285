package api

import (
	"encoding/json"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/curves"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"testing"
)

func createService(board *status.Board) *echo.Echo {
	curve := curves.NewDemandCurve(configuration.DefaultControllerConfig().Curve)
	return CreateRestService(board, curve, prometheus.NewRegistry())
}

func request(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	e := createService(status.NewBoard(5))

	// WHEN
	rec := request(e, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSensors(t *testing.T) {
	// GIVEN
	board := status.NewBoard(5)
	board.PublishSource(status.SourceStatus{ID: "core", Role: "core", Samples: []float64{35, 36}, Average: 35.5, Max: 36})
	e := createService(board)

	// WHEN
	rec := request(e, "/sensor/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result map[string]status.SourceStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 35.5, result["core"].Average)
}

func TestGetSensor(t *testing.T) {
	// GIVEN
	board := status.NewBoard(5)
	board.PublishSource(status.SourceStatus{ID: "disk", Role: "disk", Samples: []float64{20}, Average: 20, Max: 20})
	e := createService(board)

	// WHEN
	rec := request(e, "/sensor/disk")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result status.SourceStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "disk", result.ID)
	assert.Equal(t, []float64{20}, result.Samples)
}

func TestGetSensor_NotFound(t *testing.T) {
	// GIVEN
	e := createService(status.NewBoard(5))

	// WHEN
	rec := request(e, "/sensor/unknown/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var result Result
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "No item with id 'unknown' found", result.Message)
}

func TestGetController(t *testing.T) {
	// GIVEN
	board := status.NewBoard(5)
	board.PublishController(status.ControllerStatus{
		Status:         controller.Status{Mode: controller.ModeManual.String(), LastFanSetting: 2},
		Representative: 30.5,
	})
	e := createService(board)

	// WHEN
	rec := request(e, "/controller/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result status.ControllerStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "set", result.Mode)
	assert.Equal(t, 2, result.LastFanSetting)
	assert.Equal(t, 30.5, result.Representative)
}

func TestGetController_NoData(t *testing.T) {
	// GIVEN
	e := createService(status.NewBoard(5))

	// WHEN
	rec := request(e, "/controller/")

	// THEN
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetHistory(t *testing.T) {
	// GIVEN
	board := status.NewBoard(2)
	board.AppendRepresentative(30)
	board.AppendRepresentative(40)
	e := createService(board)

	// WHEN
	rec := request(e, "/history/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result status.HistorySummary
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 35.0, result.Avg)
	assert.Equal(t, 40.0, result.Max)
}

func TestGetCurve(t *testing.T) {
	// GIVEN
	e := createService(status.NewBoard(5))

	// WHEN
	rec := request(e, "/curve/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []curves.Point
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 51)
	assert.Equal(t, 0.0, result[0].Demand)
	assert.Equal(t, 40.0, result[25].Demand)
}

func TestRequestMetrics(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	curve := curves.NewDemandCurve(configuration.DefaultControllerConfig().Curve)
	e := CreateRestService(status.NewBoard(5), curve, registry)

	// WHEN
	request(e, "/alive/")
	families, err := registry.Gather()

	// THEN
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
