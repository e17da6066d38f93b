package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jobsheet-engine/internal/config"
	"jobsheet-engine/internal/events"
	"jobsheet-engine/internal/guard"
	"jobsheet-engine/internal/httpapi"
	"jobsheet-engine/internal/purge"
	"jobsheet-engine/internal/scheduler"
	"jobsheet-engine/internal/transfer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP event source (edit webhook, purge triggers, SSE)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := openWorkbook()
		if err != nil {
			return err
		}
		defer wb.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		hub := events.NewHub()

		var cfgVal atomic.Value
		cfgVal.Store(cfg)
		var lastReport atomic.Value

		g := guard.New(wb, cfg.Tabs.Jobs.Spec(), nil, logger)

		deps := httpapi.Deps{
			Hub:         hub,
			Log:         logger,
			CfgVal:      &cfgVal,
			LastReport:  &lastReport,
			UserCfgPath: cfgPath,
			LoadCfg: func() (config.Config, error) {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return loaded, err
				}
				normalized, vr := config.NormalizeAndValidate(loaded)
				if !vr.OK() {
					return normalized, fmt.Errorf("config invalid: %s", vr.Errors[0])
				}
				return normalized, nil
			},
			HandleEdit: g.HandleEdit,
			RunPurge: func(tab string, apply bool) (purge.Report, error) {
				cur := cfgVal.Load().(config.Config)
				return runPurge(wb, cur, tab, apply)
			},
			RunTransfer: func() (transfer.Report, error) {
				cur := cfgVal.Load().(config.Config)
				tr := transfer.New(wb, cur.Tabs.Today.Spec(), cur.Tabs.Jobs.Spec(), logger)
				return tr.Run()
			},
		}

		limiter := httpapi.NewHostLimiter(cfg.Serve.EditEventsPerSec, cfg.Serve.EditBurst)
		handler := httpapi.Chain(httpapi.NewMux(deps),
			httpapi.RequestID,
			httpapi.Recover(logger),
			httpapi.AccessLog(logger),
			httpapi.RateLimit(limiter),
		)

		srv := &http.Server{
			Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.App.Port),
			Handler: handler,
		}

		grp, ctx := errgroup.WithContext(ctx)

		grp.Go(func() error {
			logger.Info("api listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		grp.Go(func() error {
			<-ctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutCtx)
		})

		if cfg.Serve.TransferEveryMin > 0 {
			grp.Go(func() error {
				scheduler.Every(ctx, time.Duration(cfg.Serve.TransferEveryMin)*time.Minute, "transfer", logger,
					func(context.Context) error {
						_, err := deps.RunTransfer()
						return err
					})
				return nil
			})
		}

		// Periodic dry-run sweep: publishes what a purge would do without
		// touching the sheet. Apply stays a human action.
		if cfg.Serve.SweepEveryMin > 0 {
			grp.Go(func() error {
				scheduler.Every(ctx, time.Duration(cfg.Serve.SweepEveryMin)*time.Minute, "purge-sweep", logger,
					func(context.Context) error {
						rep, err := deps.RunPurge("jobs", false)
						if err != nil {
							return err
						}
						lastReport.Store(rep)
						hub.Publish(events.MakeEvent("", events.TypePurge, rep))
						return nil
					})
				return nil
			})
		}

		return grp.Wait()
	},
}
