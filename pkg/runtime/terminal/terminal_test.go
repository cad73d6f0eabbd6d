package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementsYAML = `data:
  financials:
    - nature: STANDALONE
      pnl:
        lineItems:
          - name: Net Revenue
            value: 60000000
          - name: Profit Before Interest and Tax
            value: 20
          - name: Depreciation
            value: 5
          - name: Interest Expenses
            value: 5
      bs:
        lineItems:
          - name: Long Term Borrowings
            value: 1000000
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_EvaluateJSONOutput(t *testing.T) {
	path := writeFile(t, "statements.yaml", statementsYAML)

	out, err := run(t, "evaluate", "--file", path, "--output", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"iscr_flag": 1,
		"total_revenue_5cr_flag": 1,
		"borrowing_to_revenue_flag": 1
	}`, out)
}

func TestCLI_EvaluateTableOutput(t *testing.T) {
	path := writeFile(t, "statements.yaml", statementsYAML)

	out, err := run(t, "evaluate", "-f", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Statement #0 (STANDALONE)")
	assert.Contains(t, out, "borrowing_to_revenue_flag")
	assert.Contains(t, out, "GREEN")
	assert.Contains(t, out, "ISCR:            4.333")
}

func TestCLI_EvaluateRuleSubsetAndThresholds(t *testing.T) {
	path := writeFile(t, "statements.yaml", statementsYAML)
	cfgPath := writeFile(t, "riskflags.yaml", "rules:\n  revenue_min: 100000000\n")

	out, err := run(t, "evaluate", "-f", path, "-o", "json", "--rules", "total_revenue_5cr_flag", "--config", cfgPath)

	require.NoError(t, err)
	assert.JSONEq(t, `{"total_revenue_5cr_flag": 0}`, out)
}

func TestCLI_EvaluateErrors(t *testing.T) {
	path := writeFile(t, "statements.yaml", statementsYAML)
	broken := writeFile(t, "broken.json", `{"company": "acme"}`)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file flag", args: []string{"evaluate"}},
		{name: "file not found", args: []string{"evaluate", "-f", filepath.Join(t.TempDir(), "absent.json")}},
		{name: "no financials", args: []string{"evaluate", "-f", broken}},
		{name: "unknown rule", args: []string{"evaluate", "-f", path, "--rules", "debt_flag"}},
		{name: "unknown output", args: []string{"evaluate", "-f", path, "-o", "xml"}},
		{name: "unknown format", args: []string{"evaluate", "-f", path, "--format", "csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCLI_Rules(t *testing.T) {
	out, err := run(t, "rules")

	require.NoError(t, err)
	assert.Contains(t, out, "Supported indicators:\nborrowing_to_revenue_flag\niscr_flag\ntotal_revenue_5cr_flag\n")
	assert.Contains(t, out, "4  WHITE")
	assert.Contains(t, out, "3  MEDIUM_RISK")
}
