package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"habilitados-backend/lib/driver/webdriver"
	"habilitados-backend/lib/serviceutil"
	"habilitados-backend/services/dashboard"
	"habilitados-backend/services/habilitados"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var headless *bool
var timeout *time.Duration
var snapshotPath *string
var outputDir *string

func init() {
	headless = scrapeCmd.Flags().Bool("headless", true, "Run the browser driver headless.")
	timeout = scrapeCmd.Flags().Duration("timeout", time.Second*30, "Per-operation timeout.")
	snapshotPath = scrapeCmd.Flags().String("snapshot", "recursos_data.json", "Where to write the dataset snapshot.")
	outputDir = scrapeCmd.Flags().String("out", "web_output", "The directory to render the dashboard into.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Runs one full scrape over every configured system and republishes the dashboard.",
	Run: func(cmd *cobra.Command, args []string) {
		report := runFullScrape(cmd.Context())
		printReport(report)
	},
}

func runFullScrape(ctx context.Context) *habilitados.RunReport {
	configs, err := habilitados.LoadRegistry(*configPath)
	if err != nil {
		serviceutil.Fatal("failed to load portal registry", err)
	}

	t1 := time.Now()
	report, dataset, err := habilitados.RunFullScrape(ctx, webdriver.New(), configs, habilitados.Options{
		Headless: *headless,
		Timeout:  *timeout,
	})
	if err != nil {
		serviceutil.Fatal("scrape aborted", err)
	}
	slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

	database, err := habilitados.OpenDB(*dbPath)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	defer database.Close()

	store := habilitados.NewStore(database)
	err = store.SaveRun(ctx, report, dataset)
	if err != nil {
		serviceutil.Fatal("failed to persist run", err)
	}
	err = store.PruneRuns(ctx, time.Hour*24*90)
	if err != nil {
		slog.Warn("failed to prune old runs", "err", err)
	}

	snapshot := habilitados.BuildSnapshot(dataset, report)
	err = habilitados.WriteSnapshot(*snapshotPath, snapshot)
	if err != nil {
		serviceutil.Fatal("failed to write snapshot", err)
	}

	err = dashboard.Generate(ctx, *outputDir, snapshot, report)
	if err != nil {
		serviceutil.Fatal("failed to render dashboard", err)
	}

	return report
}

func printReport(report *habilitados.RunReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"System", "Outcome", "Records", "Detail"})

	for _, result := range report.PerSystem {
		t.AppendRow(table.Row{
			result.SystemName,
			result.Outcome,
			result.RecordCount,
			result.ErrorDetail,
		})
	}
	t.AppendFooter(table.Row{"total", "", report.TotalRecords, ""})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
