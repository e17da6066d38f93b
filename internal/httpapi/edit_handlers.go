package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"jobsheet-engine/internal/events"
	"jobsheet-engine/internal/guard"
)

type EditHandler struct {
	Hub        *events.Hub
	Log        *slog.Logger
	HandleEdit func(ev guard.Edit) error
}

// Post accepts one edit notification. The event source is noisy by
// contract: an unreadable body or missing fields is treated as a no-op
// and still answered 202, never an error.
func (h EditHandler) Post(w http.ResponseWriter, r *http.Request) {
	var ev guard.Edit
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		if h.Log != nil {
			h.Log.Debug("edit event dropped",
				"request_id", RequestIDFrom(r.Context()),
				"err", err)
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"ok": true, "handled": false})
		return
	}

	if err := h.HandleEdit(ev); err != nil {
		writeError(w, r, http.StatusInternalServerError, "edit_failed", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeEdit, ev))
	writeJSON(w, http.StatusAccepted, map[string]any{"ok": true, "handled": true})
}
