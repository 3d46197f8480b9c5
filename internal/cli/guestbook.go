package cli

import (
	"github.com/spf13/cobra"
)

func newEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List guestbook entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Entry

			if err := client.Get("/api/guestbook-entries", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(Entries(result))
			return nil
		},
	}
}

func newSignCmd() *cobra.Command {
	var user, message, code string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign the guestbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"message":  message,
			}
			if code != "" {
				req["validationCode"] = code
			}
			var result MessageResult

			if err := client.Post("/api/sign-guestbook", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&message, "message", "", "Message (required)")
	cmd.Flags().StringVar(&code, "code", "", "Validation code")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
