package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/risk-flags/pkg/models/domain"
	"github.com/de-tools/risk-flags/pkg/services/rules"
	"github.com/spf13/cobra"
)

type RulesCmd struct {
	registry rules.Registry
}

func NewRulesCmd(registry rules.Registry) *cobra.Command {
	rc := &RulesCmd{registry: registry}
	return &cobra.Command{
		Use:   "rules",
		Short: "List supported indicators and the flag legend",
		RunE:  rc.run,
	}
}

func (rc *RulesCmd) run(cmd *cobra.Command, args []string) error {
	names := rc.registry.ListRules()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No indicators registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Supported indicators:\n%s\n\nFlags:\n",
		strings.Join(names, "\n"))

	for _, f := range domain.Flags() {
		fmt.Fprintf(cmd.OutOrStdout(), "%d  %-12s %s\n", int(f), f.String(), f.Description())
	}

	return nil
}
