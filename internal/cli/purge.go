package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jobsheet-engine/internal/config"
	"jobsheet-engine/internal/domain"
	"jobsheet-engine/internal/purge"
	"jobsheet-engine/internal/sheet"
)

var purgeApply bool

var purgeCmd = &cobra.Command{
	Use:   "purge {jobs|today}",
	Short: "Scan titles, mark too-senior rows, purge delete-list rows",
	Long: `Scan every data row of a tab. Titles matching the too-senior list get
decision=OVERSENIOR (only over empty/NEW); titles matching the delete
list get their row removed, bottom-up. Dry run by default: nothing is
written until --apply is given (and the config keeps dry_run on).`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"jobs", "today"},
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := openWorkbook()
		if err != nil {
			return err
		}
		defer wb.Close()

		rep, err := runPurge(wb, cfg, args[0], purgeApply)
		if err != nil {
			return err
		}
		printReport(rep)
		return nil
	},
}

// runPurge builds the matchers from the configured lists and runs one
// cycle. apply only wins over the config gate when the gate allows it:
// dry_run stays authoritative unless the caller flips it here.
func runPurge(wb sheet.Workbook, cfg config.Config, tab string, apply bool) (purge.Report, error) {
	var spec domain.TabSpec
	switch tab {
	case "jobs":
		spec = cfg.Tabs.Jobs.Spec()
	case "today":
		spec = cfg.Tabs.Today.Spec()
	default:
		return purge.Report{}, fmt.Errorf("unknown tab %q (want jobs or today)", tab)
	}

	senior, err := purge.Compile(cfg.Purge.TooSenior)
	if err != nil {
		return purge.Report{}, fmt.Errorf("too_senior list: %w", err)
	}
	del, err := purge.Compile(cfg.Purge.Delete)
	if err != nil {
		return purge.Report{}, fmt.Errorf("delete list: %w", err)
	}

	eng := purge.NewEngine(wb, spec, senior, del, purge.Options{
		DryRun:       cfg.Purge.DryRun && !apply,
		PreviewLimit: cfg.Purge.PreviewLimit,
	}, logger)
	return eng.Run(context.Background())
}

func printReport(rep purge.Report) {
	mode := "apply"
	if rep.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("%s [%s]: scanned=%d senior=%d delete=%d marked=%d deleted=%d\n",
		rep.Tab, mode, rep.Scanned, rep.SeniorMatched, rep.DeleteMatched, rep.Marked, rep.Deleted)

	for _, m := range rep.SeniorPreview {
		fmt.Printf("  SENIOR row %d: %s\n", m.Row, m.Title)
	}
	for _, m := range rep.DeletePreview {
		fmt.Printf("  DELETE row %d: %s\n", m.Row, m.Title)
	}
	if rep.SeniorMatched > len(rep.SeniorPreview) {
		fmt.Printf("  ... %d more senior matches\n", rep.SeniorMatched-len(rep.SeniorPreview))
	}
	if rep.DeleteMatched > len(rep.DeletePreview) {
		fmt.Printf("  ... %d more delete matches\n", rep.DeleteMatched-len(rep.DeletePreview))
	}
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeApply, "apply", false, "disable the dry-run gate and mutate the sheet")
}
