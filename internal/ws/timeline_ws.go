package ws

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tribune/internal/observability"
	"tribune/internal/repositories"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TimelineWebSocketHandler streams new-post events for the public
// timelines. Subscriptions are read-only, so like the timelines they
// mirror they need no authentication.
type TimelineWebSocketHandler struct {
	hub    *Hub
	groups repositories.GroupRepository
}

// NewTimelineWebSocketHandler constructs a TimelineWebSocketHandler.
func NewTimelineWebSocketHandler(hub *Hub, groups repositories.GroupRepository) *TimelineWebSocketHandler {
	return &TimelineWebSocketHandler{hub: hub, groups: groups}
}

// HandleGlobal upgrades the connection and subscribes it to the global
// timeline.
func (h *TimelineWebSocketHandler) HandleGlobal(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.AddGlobalClient(conn)
	observability.IncWSActive("global")

	go func() {
		defer func() {
			h.hub.RemoveGlobalClient(conn)
			observability.DecWSActive("global")
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleGroup upgrades the connection and subscribes it to one group's
// timeline.
func (h *TimelineWebSocketHandler) HandleGroup(c *gin.Context) {
	group, err := h.groups.GetGroupBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve group"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.AddGroupClient(group.ID, conn)
	observability.IncWSActive("group")

	go func() {
		defer func() {
			h.hub.RemoveGroupClient(group.ID, conn)
			observability.DecWSActive("group")
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
