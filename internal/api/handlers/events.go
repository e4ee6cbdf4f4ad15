package handlers

import (
	"log"
	"net/http"

	"office-backend/internal/events"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventsHandler upgrades authenticated clients to a websocket carrying the
// live event feed (reservations and incidents).
type EventsHandler struct {
	manager *events.Manager
}

func NewEventsHandler(manager *events.Manager) *EventsHandler {
	return &EventsHandler{manager: manager}
}

func (h *EventsHandler) Subscribe(c *gin.Context) {
	conn, err := h.manager.Upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Echec de la connexion websocket", err)
		return
	}

	clientID := uuid.New().String()
	h.manager.RegisterClient(clientID, conn)

	// Drain the read side so close frames and pings are processed; the
	// feed is write-only from the client's point of view.
	go func() {
		defer h.manager.UnregisterClient(clientID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
