package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// NewAccountCommand creates the account command
func NewAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the account of the configured user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				account, err := client.Account().Get(ctx)
				if err != nil {
					return err
				}

				return printEntity(cmd, account.Entity)
			})
		},
	}
}
