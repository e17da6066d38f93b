package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobsheet-engine/internal/transfer"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move today-tab rows into the primary tab",
	Long: `Append every staged row from the today tab to the primary tab (column
order remapped, decision_at left empty), skipping rows whose canonical
URL is already tracked, then clear the today tab.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := openWorkbook()
		if err != nil {
			return err
		}
		defer wb.Close()

		tr := transfer.New(wb, cfg.Tabs.Today.Spec(), cfg.Tabs.Jobs.Spec(), logger)
		rep, err := tr.Run()
		if err != nil {
			return err
		}
		fmt.Printf("moved=%d skipped=%d\n", rep.Moved, rep.Skipped)
		return nil
	},
}
