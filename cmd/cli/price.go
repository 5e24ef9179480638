package main

import (
	"context"
	"fmt"
	"time"

	"btc-ltv-planner/internal/cli"
	"btc-ltv-planner/internal/config"
	"btc-ltv-planner/internal/pricefeed"

	"github.com/spf13/cobra"
)

var (
	priceURL     string
	priceTimeout time.Duration
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Fetch the current BTC spot price",
	RunE:  runPrice,
}

func init() {
	priceCmd.Flags().StringVar(&priceURL, "url", config.DefaultPriceFeedURL, "CoinGecko-compatible base URL")
	priceCmd.Flags().DurationVar(&priceTimeout, "timeout", config.DefaultPriceTimeout, "Request timeout")
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, _ []string) error {
	client := pricefeed.NewClient(pricefeed.Options{
		BaseURL: priceURL,
		Timeout: priceTimeout,
		Retries: config.DefaultPriceRetries,
		Logger:  logger,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), priceTimeout*time.Duration(config.DefaultPriceRetries+1))
	defer cancel()

	// A one-shot command has no previous fetch.
	q, err := client.Spot(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("fetch price: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n", cli.FormatMoney(q.Price), q.Currency, q.Source, q.FetchedAt.Format(time.RFC3339))
	return nil
}
