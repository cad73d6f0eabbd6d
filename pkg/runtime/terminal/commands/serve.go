package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/risk-flags/pkg/server"
	"github.com/de-tools/risk-flags/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type ServeCmd struct {
	configPath string
}

func NewServeCmd() *cobra.Command {
	sc := &ServeCmd{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload web server",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.configPath, "config", "c", "", "Path to the config file")

	return cmd
}

func (sc *ServeCmd) run(cmd *cobra.Command, args []string) error {
	// .env is optional for the CLI
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	return server.NewWebAPIFromConfig(cfg, logger).Start()
}
