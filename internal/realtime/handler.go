package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP requests to websocket sessions.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(registry *Registry, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browsers connect from the storefront origin; membership is the
			// only access control on this channel.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve handles GET /ws. The session blocks the handler goroutine until the
// connection closes, which is how echo expects long-lived handlers to behave.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return err
	}

	NewSession(h.registry, conn, h.log).Run()
	return nil
}
