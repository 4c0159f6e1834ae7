package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suhome/storefront/internal/orders"
)

var (
	cartAdd      string
	cartQty      int
	cartRemove   string
	cartCheckout bool
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and mutate the cart",
	Long: `Show the cart, add or remove products, or check out.

The cart is persisted per identity: a guest cart is adopted by the
account on first login. Checkout decrements backend stock per line and
records the order locally; lines the backend rejects are absorbed by
the local inventory ledger so displayed availability stays coherent.`,
	RunE: runCart,
}

func init() {
	rootCmd.AddCommand(cartCmd)

	cartCmd.Flags().StringVar(&cartAdd, "add", "", "Add a product by id")
	cartCmd.Flags().IntVar(&cartQty, "qty", 1, "Quantity for --add")
	cartCmd.Flags().StringVar(&cartRemove, "remove", "", "Remove a product by id")
	cartCmd.Flags().BoolVar(&cartCheckout, "checkout", false, "Check out the cart")
}

func runCart(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if cartAdd != "" {
		product, err := a.Catalog.ProductWithMeta(ctx, cartAdd)
		if err != nil {
			return fmt.Errorf("failed to fetch product: %w", err)
		}
		if product.AvailableStock < cartQty {
			fmt.Printf("⚠️  Only %d in stock\n", product.AvailableStock)
		}
		a.Cart.AddItem(*product, cartQty)
		fmt.Printf("🛒 Added %dx %s\n", cartQty, product.Name)
	}

	if cartRemove != "" {
		a.Cart.RemoveItem(cartRemove)
		fmt.Printf("🗑️  Removed %s\n", cartRemove)
	}

	if cartCheckout {
		var contact *orders.Contact
		if user := a.Session.Current(); user != nil && user.Address != "" {
			contact = &orders.Contact{Address: user.Address}
		}
		order, err := a.Checkout(ctx, contact, 0, "Standard")
		if err != nil {
			return fmt.Errorf("checkout failed: %w", err)
		}
		fmt.Printf("✅ Order %s placed, total %s\n", order.FormattedID, a.Format.Price(order.Total))
		fmt.Printf("   🚚 %s, estimated %s\n", order.ShippingCompany, order.Estimate)
		return nil
	}

	items := a.Cart.Items()
	if len(items) == 0 {
		fmt.Println("🛒 Cart is empty")
		return nil
	}
	fmt.Printf("🛒 %d items:\n", a.Cart.ItemCount())
	for _, item := range items {
		fmt.Printf("   %dx %-32s %12s\n", item.Quantity, item.Name, a.Format.Price(item.Price*float64(item.Quantity)))
	}
	fmt.Printf("   Subtotal: %s\n", a.Format.Price(a.Cart.Subtotal()))
	return nil
}
