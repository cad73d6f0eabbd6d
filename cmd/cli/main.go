package main

import (
	"fmt"
	"os"

	"github.com/de-tools/risk-flags/pkg/runtime/terminal"
	"github.com/de-tools/risk-flags/pkg/services/rules"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: rules.NewDefaultRegistry(),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
