package commands

import (
	"log/slog"
	"net/http"

	"habilitados-backend/lib/serviceutil"
	"habilitados-backend/lib/timezone"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var servePort *int
var cronSpec *string

func init() {
	servePort = serveCmd.Flags().Int("port", 8080, "The port to serve the dashboard on.")
	cronSpec = serveCmd.Flags().String("cron", "0 6 * * *", "The rescrape schedule.")
	serveCmd.Flags().AddFlagSet(scrapeCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Scrapes on a schedule and serves the rendered dashboard.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		report := runFullScrape(ctx)
		printReport(report)

		cronner := cron.New(cron.WithLocation(timezone.Location))
		_, err := cronner.AddFunc(*cronSpec, func() {
			slog.Info("scheduled rescrape starting", "cron", *cronSpec)
			report := runFullScrape(ctx)
			printReport(report)
		})
		if err != nil {
			serviceutil.Fatal("invalid cron spec", err)
		}
		cronner.Start()
		defer cronner.Stop()

		go serviceutil.StartHttpServer(*servePort, http.FileServer(http.Dir(*outputDir)))

		<-ctx.Done()
		slog.Info("shutting down")
	},
}
