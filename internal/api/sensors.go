package api

import (
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"net/http"
)

func registerSensorEndpoints(rest *echo.Echo, board *status.Board) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		data := reprint.This(board.Sources())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)

		data, exists := board.Source(id)
		if !exists {
			return returnNotFound(c, id)
		} else {
			return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
		}
	})
}
