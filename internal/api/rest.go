package api

import (
	"github.com/ipmifan/ipmifan/internal/curves"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"net/http"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService creates the read-only REST API on top of the given status board.
// Request metrics are registered with registerer, if not nil.
func CreateRestService(board *status.Board, curve *curves.DemandCurve, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	if registerer != nil {
		echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "ipmifan",
			Subsystem:  "api",
			Registerer: registerer,
		}))
	}

	echoRest.GET("/alive/", isAlive)

	registerSensorEndpoints(echoRest, board)
	registerControllerEndpoints(echoRest, board)
	registerCurveEndpoints(echoRest, curve)
	registerStreamEndpoint(echoRest, board)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "no data" message
func returnNoData(c echo.Context, message string) (err error) {
	return c.JSONPretty(http.StatusServiceUnavailable, &Result{
		Name:    "No data",
		Message: message,
	}, indentationChar)
}
