package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	allOrders    bool
	advanceOrder string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List and manage orders",
	Long: `List the logged-in user's orders, or every order for staff roles.

With --advance, move an order one step along its delivery timeline
(sales manager only).`,
	RunE: runOrders,
}

func init() {
	rootCmd.AddCommand(ordersCmd)

	ordersCmd.Flags().BoolVar(&allOrders, "all", false, "List every order (staff)")
	ordersCmd.Flags().StringVar(&advanceOrder, "advance", "", "Advance an order's status by id")
}

func runOrders(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if advanceOrder != "" {
		order, err := a.Orders.AdvanceOrderStatus(ctx, advanceOrder, a.Session.Current())
		if err != nil {
			return err
		}
		fmt.Printf("✅ %s is now %s\n", order.FormattedID, order.Status)
		return nil
	}

	if allOrders {
		orders, err := a.Orders.AllOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch orders: %w", err)
		}
		fmt.Printf("📋 %d orders in total:\n", len(orders))
		for _, o := range orders {
			fmt.Printf("   %s  %-16s %12s  %s <%s>\n",
				o.FormattedID, o.Status, a.Format.Price(o.Total), o.CustomerName, o.CustomerEmail)
		}
		return nil
	}

	user := a.Session.Current()
	if user == nil {
		fmt.Println("🔒 Not logged in; showing locally recorded orders")
		for _, o := range a.Orders.CachedOrders() {
			fmt.Printf("   %s  %-16s %12s  %s\n", o.FormattedID, o.Status, a.Format.Price(o.Total), o.Date)
		}
		return nil
	}

	orders, err := a.Orders.UserOrders(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}
	if len(orders) == 0 {
		fmt.Println("📭 No orders yet")
		return nil
	}

	fmt.Printf("📋 %d orders for %s:\n", len(orders), user.Email)
	for _, o := range orders {
		fmt.Printf("   %s  %-16s %12s  via %s\n", o.FormattedID, o.Status, a.Format.Price(o.Total), o.ShippingCompany)
		for _, item := range o.Items {
			fmt.Printf("      • %dx %s\n", item.Quantity, item.Name)
		}
	}
	return nil
}
