package cmd

import (
	"fmt"

	"dsc/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "price feed operations",
}

var priceSetCmd = &cobra.Command{
	Use:   "set",
	Short: "record a price for a feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		feedID, _ := cmd.Flags().GetString("feed")
		value, _ := cmd.Flags().GetString("price")

		price, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", value, err)
		}

		if !price.IsPositive() {
			return fmt.Errorf("price must be positive")
		}

		known := false
		for _, id := range feedIDs() {
			known = known || id == feedID
		}

		if !known {
			return fmt.Errorf("unknown feed %q", feedID)
		}

		s := provideStores()
		defer s.close()

		if err := s.prices.Create(ctx, &core.Price{
			FeedID:   feedID,
			Price:    price.Truncate(core.FeedDecimals),
			Provider: "cli",
		}); err != nil {
			return err
		}

		cmd.Println(feedID, price.Truncate(core.FeedDecimals))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.AddCommand(priceSetCmd)

	priceSetCmd.Flags().String("feed", "", "feed id")
	priceSetCmd.Flags().String("price", "", "usd price")
}
