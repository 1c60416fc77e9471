package cli

import (
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/output"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/refresh"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously refresh and display your portfolios",
	Long: `Fetches the portfolio list on a schedule and reprints it after every
refresh. The schedule comes from TRACKER_WATCH_SCHEDULE (default
"@every 30s") and accepts cron syntax. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Show the initial state before the first scheduled tick.
	if err := app.store.Fetch(ctx); err != nil {
		return err
	}
	printWatchSnapshot(app)

	watcher := refresh.NewWatcher(app.store, cfg.Watch.Schedule)
	watcher.OnRefresh = func(err error) {
		if err != nil {
			printer.Warning("Refresh failed: %v", err)
			return
		}
		printWatchSnapshot(app)
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	printer.Print("%s", printer.Dim("Watching ("+cfg.Watch.Schedule+"), Ctrl-C to stop"))
	<-ctx.Done()
	return nil
}

func printWatchSnapshot(app *app) {
	portfolios := app.store.Portfolios()
	if len(portfolios) == 0 {
		printer.Print("No portfolios")
		return
	}

	var total float64
	table := output.NewTable(printer.Out(), "ID", "NAME", "ASSETS", "TOTAL VALUE")
	for _, p := range portfolios {
		total += p.TotalValue
		table.AddRow(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.Itoa(len(p.Assets)),
			output.Money(p.TotalValue),
		)
	}
	table.Render()
	printer.Print("Combined value: %s", printer.Bold(output.Money(total)))
}
