// Package cli provides the jobsheet command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jobsheet-engine/internal/config"
	"jobsheet-engine/internal/sheet"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	flagConfig  string
	flagDataDir string
	verbose     bool

	// Loaded in PersistentPreRunE
	cfg        config.Config
	cfgPath    string
	logger     *slog.Logger
	logCleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   "jobsheet",
	Short: "Rule-based cleanup for a job-tracking sheet",
	Long: `Jobsheet keeps a job-tracking workbook tidy: it enforces the decision
vocabulary, stamps decision_at when a row is marked APPLIED, flags
overly-senior postings, and purges posting categories outright.

Purge runs are dry by default; pass --apply to mutate.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		dataDir := flagDataDir
		if dataDir == "" {
			dataDir = os.Getenv("JOBSHEET_DATA_DIR")
		}
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}

		var err error
		if flagConfig != "" {
			cfgPath = flagConfig
		} else {
			cfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
			if err != nil {
				return fmt.Errorf("config bootstrap: %w", err)
			}
		}

		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config load (%s): %w", cfgPath, err)
		}
		if loaded.App.DataDir == "." {
			loaded.App.DataDir = dataDir
		}
		if err := config.OverlayPatterns(&loaded, filepath.Join(dataDir, "patterns.yml")); err != nil {
			return fmt.Errorf("patterns overlay: %w", err)
		}

		normalized, vr := config.NormalizeAndValidate(loaded)
		if !vr.OK() {
			return fmt.Errorf("config invalid:\n- %s", vr.Errors[0])
		}
		cfg = normalized

		level := config.ParseLogLevel(cfg.Logging.Level)
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(resolvePath(cfg.Logging.File), level)
		slog.SetDefault(logger)

		for _, wmsg := range vr.Warnings {
			logger.Warn(wmsg)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// resolvePath anchors relative paths at the data dir.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.App.DataDir, p)
}

func openWorkbook() (*sheet.SQLiteWorkbook, error) {
	path := cfg.Workbook.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.App.DataDir, path)
	}
	return sheet.Open(path)
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default <data-dir>/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default $JOBSHEET_DATA_DIR or .)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(serveCmd)
}
