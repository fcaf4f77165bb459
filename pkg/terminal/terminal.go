package terminal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fin-tools/revenue-pulse/pkg/services/account"
	"github.com/fin-tools/revenue-pulse/pkg/services/report"
	"github.com/fin-tools/revenue-pulse/pkg/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	controller *report.Controller
	accounts   account.Explorer
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Controller *report.Controller
	Accounts   account.Explorer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	cli := &CLI{
		controller: opts.Controller,
		accounts:   opts.Accounts,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue-pulse",
		Short: "Revenue reporting tool",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.controller))
	cmd.AddCommand(commands.NewProvidersCmd(cli.accounts))

	return cmd
}
