package terminal

import (
	"io"
	"os"

	"github.com/de-tools/risk-flags/pkg/runtime/terminal/commands"
	"github.com/de-tools/risk-flags/pkg/runtime/terminal/export"

	"github.com/de-tools/risk-flags/pkg/services/rules"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry rules.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry rules.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = rules.NewDefaultRegistry()
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides the arguments read from os.Args.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "riskflags",
		Short:         "Financial statement risk flags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewEvaluateCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewRulesCmd(cli.registry))
	cmd.AddCommand(commands.NewServeCmd())

	return cmd
}
