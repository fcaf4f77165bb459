package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fin-tools/revenue-pulse/pkg/services/account"
)

func NewProvidersCmd(accounts account.Explorer) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the registered billing providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, err := accounts.ListProviders(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to list providers: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, p := range providers {
				timezone := p.Timezone
				if timezone == "" {
					timezone = "UTC"
				}
				unit := p.Unit
				if unit == "" {
					unit = "-"
				}
				fmt.Fprintf(out, "Name: `%s`, Timezone: `%s`, Unit: `%s`\n", p.Slug, timezone, unit)
			}
			return nil
		},
	}
}
