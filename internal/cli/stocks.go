package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/output"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/validation"
)

var priceCmd = &cobra.Command{
	Use:   "price <ticker>",
	Short: "Look up the current price of a stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().Bool("info", false, "include company details")
}

func runPrice(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}
	if err := validation.ValidateTicker(args[0]); err != nil {
		return err
	}
	ticker := validation.NormalizeTicker(args[0])

	withInfo, _ := cmd.Flags().GetBool("info")

	if withInfo {
		info, err := app.client.StockInfo(cmd.Context(), ticker)
		if err != nil {
			return err
		}
		printer.Print("%s  %s", printer.Bold(info.Ticker), output.Money(info.CurrentPrice))
		if info.Name != "" {
			printer.Print("%s", info.Name)
			printer.Print("%s / %s", info.Sector, info.Industry)
		}
		printer.Print("%s", printer.Dim("as of "+formatTimestamp(info.Timestamp)))
		return nil
	}

	price, err := app.client.StockPrice(cmd.Context(), ticker)
	if err != nil {
		return err
	}
	printer.Print("%s  %s", printer.Bold(price.Ticker), output.Money(price.CurrentPrice))
	return nil
}

func formatTimestamp(unixMilli int64) string {
	return time.UnixMilli(unixMilli).Local().Format("2006-01-02 15:04:05")
}
