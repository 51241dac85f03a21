package ws

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub    *Hub
	logger *log.Logger
}

func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleStream upgrades the request and binds the connection to the
// authenticated user. The connection is the subscription handle: closing it
// releases the hub registration, so no listener outlives its consumer.
func (h *Handler) HandleStream(userIDKey string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if h == nil || h.hub == nil {
			return fiber.ErrServiceUnavailable
		}

		userID, ok := c.Locals(userIDKey).(uuid.UUID)
		if !ok || userID == uuid.Nil {
			return fiber.ErrUnauthorized
		}

		fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				if h.logger != nil {
					h.logger.Printf("WS upgrade error | error=%v", err)
				}
				return
			}

			client := NewClient(h.hub, conn, userID)
			h.hub.Register(client)
			go client.WritePump()
			go client.ReadPump()
		})

		return fiberHandler(c)
	}
}
