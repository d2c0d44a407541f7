package handler

import (
	"net/http"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/middleware"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/response"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/realtime"
)

// EventsHandler upgrades clients to a workspace event stream
type EventsHandler struct {
	hub *realtime.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Subscribe upgrades the connection to a websocket carrying the
// workspace's real-time events. Membership has already been checked by
// the role middleware.
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.BadRequest(w, "missing workspace ID")
		return
	}

	h.hub.ServeWorkspace(w, r, workspaceID)
}
