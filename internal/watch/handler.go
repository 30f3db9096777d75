package watch

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"records-backend/internal/shared/server/respond"
	"records-backend/internal/shared/telemetry"
)

// SourceFunc produces the caller's current snapshot of a collection. The
// bootstrap wires one per collection so this package stays independent of
// the domain services.
type SourceFunc func(c *gin.Context) (any, error)

// Handler streams collection snapshots over SSE.
type Handler struct {
	Hub     *Hub
	Sources map[string]SourceFunc
}

// NewHandler constructs a Handler.
func NewHandler(hub *Hub, sources map[string]SourceFunc) *Handler {
	return &Handler{Hub: hub, Sources: sources}
}

// RegisterRoutes attaches the watch route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/watch/:collection", h.watch)
}

// watch holds the connection open and sends the subscriber's full snapshot
// on connect and after every change signal. Each payload is the whole
// collection as the subscriber is allowed to see it.
func (h *Handler) watch(c *gin.Context) {
	collection := c.Param("collection")
	source, ok := h.Sources[collection]
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown collection", nil)
		return
	}

	signal, cancel := h.Hub.Subscribe(collection)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	if !h.send(c, collection, source) {
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-signal:
			if !h.send(c, collection, source) {
				return
			}
		}
	}
}

// send writes one snapshot event; it reports false when the stream should
// close. A snapshot read failure becomes a terminal error event so clients
// can surface their error state and reconnect.
func (h *Handler) send(c *gin.Context, collection string, source SourceFunc) bool {
	snapshot, err := source(c)
	if err != nil {
		telemetry.Error("watch.snapshot_failed", map[string]any{
			"collection": collection,
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		writeEvent(c.Writer, "error", map[string]string{"message": "failed to load snapshot"})
		c.Writer.Flush()
		return false
	}
	writeEvent(c.Writer, "snapshot", snapshot)
	c.Writer.Flush()
	return true
}

func writeEvent(w io.Writer, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	io.WriteString(w, "event: "+event+"\n")
	io.WriteString(w, "data: ")
	w.Write(data)
	io.WriteString(w, "\n\n")
}
