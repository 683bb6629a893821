package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "habilitados-cli",
	Short: "habilitados-cli scrapes resource portals and publishes the unified dashboard.",
}

var configPath *string
var dbPath *string

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "systems.json5", "The portal registry to scrape.")
	dbPath = rootCmd.PersistentFlags().String("db", "habilitados.db", "The run-history database.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
