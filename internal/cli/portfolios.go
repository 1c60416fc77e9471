package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your portfolios",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

var showCmd = &cobra.Command{
	Use:   "show <portfolio-id>",
	Short: "Show a portfolio's holdings",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var addCmd = &cobra.Command{
	Use:   "add <portfolio-id> <ticker> <quantity>",
	Short: "Add shares of an asset to a portfolio",
	Args:  cobra.ExactArgs(3),
	RunE:  runAdd,
}

var removeCmd = &cobra.Command{
	Use:     "remove <portfolio-id> <ticker>",
	Aliases: []string{"rm"},
	Short:   "Remove an asset from a portfolio",
	Args:    cobra.ExactArgs(2),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(listCmd, createCmd, showCmd, addCmd, removeCmd)

	listCmd.Flags().Bool("json", false, "output as JSON")
	showCmd.Flags().Bool("json", false, "output as JSON")
}

func parsePortfolioID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid portfolio id %q", arg)
	}
	return id, nil
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}
	if err := app.store.Fetch(cmd.Context()); err != nil {
		return err
	}

	portfolios := app.store.Portfolios()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(portfolios)
	}

	if len(portfolios) == 0 {
		printer.Print("No portfolios yet. Create one with: tracker create <name>")
		return nil
	}

	table := output.NewTable(printer.Out(), "ID", "NAME", "ASSETS", "TOTAL VALUE", "CREATED")
	for _, p := range portfolios {
		table.AddRow(
			strconv.FormatInt(p.ID, 10),
			printer.Bold(p.Name),
			strconv.Itoa(len(p.Assets)),
			output.Money(p.TotalValue),
			p.CreatedAt.Format("2006-01-02"),
		)
	}
	table.Render()
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	created, err := app.store.Create(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printer.Success("Created portfolio %q with id %d", created.Name, created.ID)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}
	id, err := parsePortfolioID(args[0])
	if err != nil {
		return err
	}

	portfolio, err := app.client.GetPortfolio(cmd.Context(), id)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(portfolio)
	}

	printPortfolio(portfolio)
	return nil
}

func printPortfolio(p model.Portfolio) {
	printer.Print("%s (id %d)", printer.Bold(p.Name), p.ID)
	printer.Print("Total value: %s", output.Money(p.TotalValue))

	if len(p.Assets) == 0 {
		printer.Print("No assets. Add one with: tracker add %d <ticker> <quantity>", p.ID)
		return
	}

	table := output.NewTable(printer.Out(), "TICKER", "QUANTITY", "PRICE", "VALUE", "ADDED")
	for _, a := range p.Assets {
		table.AddRow(
			printer.Bold(a.Ticker),
			output.Quantity(a.Quantity),
			output.Money(a.CurrentPrice),
			output.Money(a.TotalValue),
			a.AddedAt.Format("2006-01-02"),
		)
	}
	table.Render()
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}
	id, err := parsePortfolioID(args[0])
	if err != nil {
		return err
	}
	quantity, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[2])
	}

	if err := app.store.AddAsset(cmd.Context(), id, args[1], quantity); err != nil {
		return err
	}
	if staleErr := app.store.Err(); staleErr != nil {
		printer.Warning("Asset added, but refreshing the portfolio list failed: %v", staleErr)
		return nil
	}

	printer.Success("Added %s x%s to portfolio %d", args[1], args[2], id)
	if p, ok := app.store.PortfolioByID(id); ok {
		printer.Print("New total value: %s", output.Money(p.TotalValue))
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}
	id, err := parsePortfolioID(args[0])
	if err != nil {
		return err
	}

	if err := app.store.RemoveAsset(cmd.Context(), id, args[1]); err != nil {
		return err
	}
	if staleErr := app.store.Err(); staleErr != nil {
		printer.Warning("Asset removed, but refreshing the portfolio list failed: %v", staleErr)
		return nil
	}

	printer.Success("Removed %s from portfolio %d", args[1], id)
	return nil
}
