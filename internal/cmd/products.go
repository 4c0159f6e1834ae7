package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var productID string

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	Long: `List products with client-side availability: server stock minus
quantities reserved in the local cart, plus discount and rating labels.`,
	RunE: listProducts,
}

func init() {
	rootCmd.AddCommand(productsCmd)

	productsCmd.Flags().StringVar(&productID, "id", "", "Show a single product by id")
}

func listProducts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if productID != "" {
		product, err := a.Catalog.ProductWithMeta(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to fetch product: %w", err)
		}
		fmt.Printf("📦 %s (%s)\n", product.Name, product.ID)
		fmt.Printf("   💰 %s", a.Format.Price(product.Price))
		if product.HasDiscount {
			fmt.Printf("  (%s, was %s)", product.DiscountLabel, a.Format.Price(product.OriginalPrice))
		}
		fmt.Println()
		fmt.Printf("   📊 %.1f ⭐ | stock available: %d\n", product.AverageRating, product.AvailableStock)
		if product.Description != "" {
			fmt.Printf("   📝 %s\n", product.Description)
		}
		return nil
	}

	products, err := a.Catalog.ProductsWithMeta(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}
	if len(products) == 0 {
		fmt.Println("📭 No products found")
		return nil
	}

	fmt.Printf("📋 Found %d products:\n", len(products))
	for _, p := range products {
		marker := "  "
		if a.Wishlist.InWishlist(p.ID) {
			marker = "❤️ "
		}
		label := ""
		if p.HasDiscount {
			label = "  " + p.DiscountLabel
		}
		fmt.Printf("%s %-8s %-32s %12s%s  (stock: %d)\n",
			marker, p.ID, p.Name, a.Format.Price(p.Price), label, p.AvailableStock)
	}
	return nil
}
