package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	var tripFlag string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show a trip's budget summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID("trip", tripFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := c.Budget(cmd.Context(), tripID)
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderBudget(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&tripFlag, "trip", "", "Trip ID")
	_ = cmd.MarkFlagRequired("trip")
	return cmd
}
