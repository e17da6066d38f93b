package httpapi

import (
	"log/slog"
	"sync/atomic"

	"jobsheet-engine/internal/config"
	"jobsheet-engine/internal/events"
	"jobsheet-engine/internal/guard"
	"jobsheet-engine/internal/purge"
	"jobsheet-engine/internal/transfer"
)

// Deps wires the handlers. Entry points are injected as funcs so handler
// tests can run without a workbook on disk.
type Deps struct {
	Hub *events.Hub
	Log *slog.Logger

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	LastReport *atomic.Value // stores purge.Report

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Engine entry points
	HandleEdit  func(ev guard.Edit) error
	RunPurge    func(tab string, apply bool) (purge.Report, error)
	RunTransfer func() (transfer.Report, error)
}
