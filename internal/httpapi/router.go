package httpapi

import "net/http"

// NewMux wires the HTTP surface: the edit-event webhook (the abstract
// event source made concrete), purge/transfer triggers, config, SSE.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	eh := EditHandler{Hub: d.Hub, Log: d.Log, HandleEdit: d.HandleEdit}
	mux.HandleFunc("/events/edit", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: eh.Post,
	}))

	ph := PurgeHandler{
		Hub:         d.Hub,
		LastReport:  d.LastReport,
		RunPurge:    d.RunPurge,
		RunTransfer: d.RunTransfer,
	}
	mux.HandleFunc("/purge/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Run,
	}))
	mux.HandleFunc("/purge/report", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Report,
	}))
	mux.HandleFunc("/transfer/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Transfer,
	}))

	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	evh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: evh.ServeSSE,
	}))

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
