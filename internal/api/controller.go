package api

import (
	"github.com/ipmifan/ipmifan/internal/curves"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/labstack/echo/v4"
	"net/http"
)

func registerControllerEndpoints(rest *echo.Echo, board *status.Board) {
	rest.GET("/controller/", func(c echo.Context) error {
		data, exists := board.Controller()
		if !exists {
			return returnNoData(c, "No control cycle has completed yet")
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	rest.GET("/history/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, board.History(), indentationChar)
	})
}

func registerCurveEndpoints(rest *echo.Echo, curve *curves.DemandCurve) {
	rest.GET("/curve/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, curve.Table(20, 70, 1), indentationChar)
	})
}
