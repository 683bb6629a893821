package commands

import (
	"fmt"
	"os"
	"strings"

	"habilitados-backend/lib/serviceutil"
	"habilitados-backend/services/habilitados"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Validates the portal registry and shows the last run's report without scraping.",
	Run: func(cmd *cobra.Command, args []string) {
		configs, err := habilitados.LoadRegistry(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to load portal registry", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"System", "Login URL", "Filters", "Paginated"})
		for _, cfg := range configs {
			paginated := "no"
			if cfg.Selectors.NextPage != "" {
				paginated = "yes"
			}
			t.AppendRow(table.Row{
				cfg.Name,
				cfg.LoginUrl,
				strings.Join(cfg.RequiredFilters, ", "),
				paginated,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		database, err := habilitados.OpenDB(*dbPath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		report, err := habilitados.NewStore(database).LastReport(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to read last report", err)
		}
		if report == nil {
			fmt.Println("no runs recorded yet")
			return
		}
		printReport(report)
	},
}
