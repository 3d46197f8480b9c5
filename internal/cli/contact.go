package cli

import (
	"github.com/spf13/cobra"
)

func newContactCmd() *cobra.Command {
	var email, subject, message string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the site owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":   email,
				"subject": subject,
				"message": message,
			}
			var result MessageResult

			if err := client.Post("/api/send-email", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Your email address, used as reply-to (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject (required)")
	cmd.Flags().StringVar(&message, "message", "", "Message (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
