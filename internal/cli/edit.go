package cli

import (
	"github.com/spf13/cobra"

	"jobsheet-engine/internal/guard"
)

var (
	editTab   string
	editRow   int
	editCol   int
	editValue string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Handle one edit notification (decision_at bookkeeping)",
	Long: `Feed one cell-edit notification through the field guard. Only edits to
the decision column do anything: APPLIED stamps decision_at (first
applied wins), anything else clears it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := openWorkbook()
		if err != nil {
			return err
		}
		defer wb.Close()

		tab := editTab
		if tab == "" {
			tab = cfg.Tabs.Jobs.Name
		}
		g := guard.New(wb, cfg.Tabs.Jobs.Spec(), nil, logger)
		return g.HandleEdit(guard.Edit{
			Sheet: tab,
			Row:   editRow,
			Col:   editCol,
			Value: editValue,
		})
	},
}

func init() {
	editCmd.Flags().StringVar(&editTab, "tab", "", "tab name (default the primary tab)")
	editCmd.Flags().IntVar(&editRow, "row", 0, "edited row (1-indexed)")
	editCmd.Flags().IntVar(&editCol, "col", 0, "edited column (1-indexed)")
	editCmd.Flags().StringVar(&editValue, "value", "", "new cell value")
}
