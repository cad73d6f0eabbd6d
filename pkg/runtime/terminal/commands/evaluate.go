package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/risk-flags/pkg/runtime/terminal/export"
	"github.com/de-tools/risk-flags/pkg/services/config"
	"github.com/de-tools/risk-flags/pkg/services/document"
	"github.com/de-tools/risk-flags/pkg/services/rules"

	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type EvaluateCmd struct {
	filePath   string
	format     string
	output     string
	configPath string
	ruleNames  []string
	registry   rules.Registry
	reporter   *export.Reporter
}

func NewEvaluateCmd(registry rules.Registry, reporter *export.Reporter) *cobra.Command {
	ec := &EvaluateCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the risk flags of a financial statements document",
		RunE:  ec.run,
	}

	cmd.Flags().StringVarP(&ec.filePath, "file", "f", "", "Path to the statements document (- for stdin)")
	cmd.Flags().StringVar(&ec.format, "format", "", "Document format: json, hjson or yaml (default: from file extension)")
	cmd.Flags().StringVarP(&ec.output, "output", "o", outputTable, "Output format: table or json")
	cmd.Flags().StringVarP(&ec.configPath, "config", "c", "", "Path to a config file with rule thresholds")
	cmd.Flags().StringSliceVar(&ec.ruleNames, "rules", nil, "Indicators to evaluate (default: all)")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ec *EvaluateCmd) run(cmd *cobra.Command, args []string) error {
	if ec.output != outputTable && ec.output != outputJSON {
		return fmt.Errorf("unsupported output %q, expected %q or %q", ec.output, outputTable, outputJSON)
	}

	cfg, err := config.LoadConfig(ec.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	evaluator, err := rules.NewEvaluatorFromRegistry(ec.registry, cfg.Rules.Settings(), ec.ruleNames...)
	if err != nil {
		return fmt.Errorf("failed to build evaluator: %w", err)
	}

	format := document.FormatFromFilename(ec.filePath)
	if ec.format != "" {
		format, err = document.ParseFormat(ec.format)
		if err != nil {
			return err
		}
	}

	in, closeFn, err := ec.open(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	doc, err := document.Decode(in, format)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", ec.filePath, err)
	}

	eval := evaluator.Explain(doc)
	if ec.output == outputJSON {
		return ec.reporter.HandleJSON(&eval)
	}
	return ec.reporter.Handle(&eval)
}

func (ec *EvaluateCmd) open(cmd *cobra.Command) (io.Reader, func(), error) {
	if ec.filePath == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(ec.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
