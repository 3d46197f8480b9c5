package cli

import (
	"github.com/spf13/cobra"
)

func newRequestCodeCmd() *cobra.Command {
	var user, email string

	cmd := &cobra.Command{
		Use:   "request-code",
		Short: "Email a validation code",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"email":    email,
			}
			var result MessageResult

			if err := client.Post("/api/send-validation-code-to-email", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Redeem a validation code",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"validationCode": code}
			var result ValidateResult

			if err := client.Post("/api/validate-user", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Validation code (required)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}
