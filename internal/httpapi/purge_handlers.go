package httpapi

import (
	"errors"
	"net/http"
	"sync/atomic"

	"jobsheet-engine/internal/events"
	"jobsheet-engine/internal/purge"
	"jobsheet-engine/internal/sheet"
	"jobsheet-engine/internal/transfer"
)

type PurgeHandler struct {
	Hub        *events.Hub
	LastReport *atomic.Value // stores purge.Report

	RunPurge    func(tab string, apply bool) (purge.Report, error)
	RunTransfer func() (transfer.Report, error)
}

// Run triggers one purge cycle: ?tab=jobs|today, ?apply=1 to flip the
// dry-run gate for this run only.
func (h PurgeHandler) Run(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != "jobs" && tab != "today" {
		writeError(w, r, http.StatusBadRequest, "bad_tab", "tab must be jobs or today")
		return
	}
	apply := r.URL.Query().Get("apply") == "1"

	rep, err := h.RunPurge(tab, apply)
	if err != nil {
		status := http.StatusInternalServerError
		code := "purge_failed"
		if errors.Is(err, sheet.ErrSheetNotFound) {
			status = http.StatusNotFound
			code = "tab_not_found"
		}
		writeError(w, r, status, code, err.Error())
		return
	}

	h.LastReport.Store(rep)
	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypePurge, rep))
	writeJSON(w, http.StatusOK, rep)
}

// Report returns the last purge report, if any run happened yet.
func (h PurgeHandler) Report(w http.ResponseWriter, r *http.Request) {
	v := h.LastReport.Load()
	if v == nil {
		writeError(w, r, http.StatusNotFound, "no_report", "no purge has run yet")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Transfer moves the today tab into the primary tab.
func (h PurgeHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	rep, err := h.RunTransfer()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "transfer_failed", err.Error())
		return
	}
	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeTransfer, rep))
	writeJSON(w, http.StatusOK, rep)
}
