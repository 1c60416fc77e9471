package cli

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/output"
)

var insightsCmd = &cobra.Command{
	Use:   "insights [portfolio-id]",
	Short: "Analyze portfolio diversification and risk",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)

	insightsCmd.Flags().Bool("all", false, "analyze every portfolio")
}

func runInsights(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	if all {
		return runInsightsAll(cmd, app)
	}
	if len(args) != 1 {
		return fmt.Errorf("a portfolio id is required unless --all is given")
	}

	id, err := parsePortfolioID(args[0])
	if err != nil {
		return err
	}

	insights, err := app.client.PortfolioInsights(cmd.Context(), id)
	if err != nil {
		return err
	}
	printInsights(fmt.Sprintf("Portfolio %d", id), insights)
	return nil
}

// runInsightsAll fans the per-portfolio insight requests out concurrently
// and prints the results in portfolio order.
func runInsightsAll(cmd *cobra.Command, app *app) error {
	if err := app.store.Fetch(cmd.Context()); err != nil {
		return err
	}
	portfolios := app.store.Portfolios()
	if len(portfolios) == 0 {
		printer.Print("No portfolios to analyze")
		return nil
	}

	var mu sync.Mutex
	results := make(map[int64]model.Insights, len(portfolios))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	for _, p := range portfolios {
		g.Go(func() error {
			insights, err := app.client.PortfolioInsights(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("portfolio %d: %w", p.ID, err)
			}
			mu.Lock()
			results[p.ID] = insights
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(portfolios, func(i, j int) bool { return portfolios[i].ID < portfolios[j].ID })
	for _, p := range portfolios {
		printInsights(fmt.Sprintf("%s (id %d)", p.Name, p.ID), results[p.ID])
		printer.Print("")
	}
	return nil
}

func printInsights(title string, in model.Insights) {
	printer.Print("%s", printer.Bold(title))

	table := output.NewTable(printer.Out(), "METRIC", "VALUE")
	table.AddRow("Diversification", fmt.Sprintf("%.0f / 100", in.DiversificationScore))
	table.AddRow("Risk level", printer.RiskBadge(in.RiskLevel))
	table.AddRow("Total value", output.Money(in.TotalValue))
	table.AddRow("Assets", fmt.Sprintf("%d", in.AssetCount))
	table.Render()

	printer.Print("%s", in.Analysis.Summary)
	if len(in.Analysis.Strengths) > 0 {
		printer.Print("Strengths:  %s", strings.Join(in.Analysis.Strengths, "; "))
	}
	if len(in.Analysis.Weaknesses) > 0 {
		printer.Print("Weaknesses: %s", strings.Join(in.Analysis.Weaknesses, "; "))
	}

	for _, rec := range in.Recommendations {
		printer.Print("  • %s", rec)
	}
	if len(in.SuggestedAssets) > 0 {
		printer.Print("Consider adding:")
		for _, s := range in.SuggestedAssets {
			printer.Print("  • %s", s)
		}
	}
}
