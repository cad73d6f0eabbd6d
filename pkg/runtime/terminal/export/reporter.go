package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/risk-flags/pkg/adapters"
	"github.com/de-tools/risk-flags/pkg/models/domain"
)

type TableConfig struct {
	NameWidth      int
	FlagWidth      int
	ValueWidth     int
	ThresholdWidth int
	NoteWidth      int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:      28,
		FlagWidth:      12,
		ValueWidth:     18,
		ThresholdWidth: 14,
		NoteWidth:      48,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle prints the evaluation as a table.
func (c *Reporter) Handle(eval *domain.Evaluation) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, flag, value, threshold, note string) string {
			return fmt.Sprintf("| %-*s | %-*s | %*s | %*s | %-*s |",
				c.config.NameWidth, name,
				c.config.FlagWidth, flag,
				c.config.ValueWidth, value,
				c.config.ThresholdWidth, threshold,
				c.config.NoteWidth, note)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.FlagWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ThresholdWidth+2),
				strings.Repeat("-", c.config.NoteWidth+2))
		},
		"number": func(v float64) string {
			return fmt.Sprintf("%.4g", v)
		},
		"amount": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}

	tmpl := `
Statement #{{.StatementIndex}}{{if .Nature}} ({{.Nature}}){{end}}

Net Revenue:     {{amount .Figures.TotalRevenue}}
Total Borrowing: {{amount .Figures.TotalBorrowing}}
ISCR:            {{if .Figures.ISCRComplete}}{{number .Figures.ISCR}}{{else}}n/a{{end}}

{{separator}}
{{formatRow "Indicator" "Flag" "Value" "Threshold" "Note"}}
{{separator}}
{{range .Indicators}}{{formatRow .Name .Flag.String (number .Value) (number .Threshold) .Note}}
{{end}}{{separator}}
`

	t, err := template.New("evaluation").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, eval)
}

// HandleJSON prints the indicator name to flag mapping.
func (c *Reporter) HandleJSON(eval *domain.Evaluation) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapters.MapFlagsDomainToApi(eval.FlagMap())); err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}
	return nil
}
