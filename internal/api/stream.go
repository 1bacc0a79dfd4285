package api

import (
	"github.com/gorilla/websocket"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/labstack/echo/v4"
	"time"
)

const streamPollInterval = 500 * time.Millisecond

var upgrader = websocket.Upgrader{}

// registerStreamEndpoint pushes every new controller snapshot to connected websocket clients
func registerStreamEndpoint(rest *echo.Echo, board *status.Board) {
	rest.GET("/stream/", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		// clients only listen, reading is needed to notice a closed connection
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(streamPollInterval)
		defer ticker.Stop()

		var lastUpdate time.Time
		for {
			if current, exists := board.Controller(); exists && !current.UpdatedAt.Equal(lastUpdate) {
				if err := conn.WriteJSON(current); err != nil {
					ui.Debug("Closing status stream: %v", err)
					return nil
				}
				lastUpdate = current.UpdatedAt
			}

			select {
			case <-closed:
				return nil
			case <-c.Request().Context().Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}
