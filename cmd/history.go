package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fincalc/cli"
	"fincalc/service"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent calculations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCalculation(func(svc *service.CalculatorService) error {
			records, err := svc.History(cmd.Context(), flagHistoryLimit)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\n  No calculations yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					string(r.Kind),
					r.ID.String()[:8],
				})
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
				Title:   "Recent calculations",
				Headers: []string{"When", "Kind", "ID"},
				Rows:    rows,
			}))
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of calculations to show")
	rootCmd.AddCommand(historyCmd)
}
