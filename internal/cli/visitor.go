package cli

import (
	"github.com/spf13/cobra"
)

func newVisitorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visitors",
		Short: "Record a visit and show the visitor count",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result VisitorResult

			if err := client.Get("/api/visitor-count", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
