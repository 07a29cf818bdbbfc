package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lumastory/lumastory/internal/interfaces/cli/migrate"
	"github.com/lumastory/lumastory/internal/interfaces/cli/server"
	"github.com/lumastory/lumastory/internal/interfaces/cli/token"
)

// @title LumaStory API
// @version 1.0
// @description Usage limits, trial gating, stories and admin workflows for LumaStory.
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:          "lumastory",
		Short:        "LumaStory API server and tools",
		Long:         `LumaStory serves the story API and ships the migration and token tools used to operate it.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
