package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobsheet-engine/internal/setup"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the tabs and the decision dropdown rule (idempotent)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := openWorkbook()
		if err != nil {
			return err
		}
		defer wb.Close()

		if err := setup.Init(wb, cfg.Tabs.Jobs.Spec(), cfg.Tabs.Today.Spec()); err != nil {
			return err
		}
		fmt.Printf("initialized %q and %q\n", cfg.Tabs.Jobs.Name, cfg.Tabs.Today.Name)
		return nil
	},
}
