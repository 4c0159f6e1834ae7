package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var wishlistToggle string

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Show and toggle wishlist items",
	Long: `Show saved products or toggle one by id.

Logged-in toggles sync to the backend and roll back on failure. Guest
toggles are local; they are also queued and replayed into the account
wishlist on the next login.`,
	RunE: runWishlist,
}

func init() {
	rootCmd.AddCommand(wishlistCmd)

	wishlistCmd.Flags().StringVar(&wishlistToggle, "toggle", "", "Toggle a product by id")
}

func runWishlist(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if wishlistToggle != "" {
		product, err := a.Catalog.ProductWithMeta(ctx, wishlistToggle)
		if err != nil {
			return fmt.Errorf("failed to fetch product: %w", err)
		}
		wasSaved := a.Wishlist.InWishlist(product.ID)
		if !a.Session.IsAuthenticated() && !wasSaved {
			a.Wishlist.QueuePending(*product)
		}
		if err := a.Wishlist.Toggle(ctx, *product); err != nil {
			return fmt.Errorf("wishlist sync failed: %w", err)
		}
		if wasSaved {
			fmt.Printf("💔 Removed %s\n", product.Name)
		} else {
			fmt.Printf("❤️  Saved %s\n", product.Name)
		}
		return nil
	}

	items := a.Wishlist.Items()
	if len(items) == 0 {
		fmt.Println("📭 Wishlist is empty")
		return nil
	}
	fmt.Printf("❤️  %d saved products:\n", len(items))
	for _, item := range items {
		fmt.Printf("   %-8s %-32s %12s\n", item.ID, item.Name, a.Format.Price(item.Price))
	}
	return nil
}
