package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suhome/storefront/internal/api"
)

var checkBackendCmd = &cobra.Command{
	Use:   "check-backend",
	Short: "Check backend connectivity",
	Long: `Probe the configured backend: the product listing and the support
conversation endpoint. Useful before blaming the sync layer.`,
	RunE: runCheckBackend,
}

func init() {
	rootCmd.AddCommand(checkBackendCmd)
}

func runCheckBackend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	fmt.Printf("🔍 Checking backend at %s...\n", a.Config.API.BaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := a.Client.Products(ctx)
	if err != nil {
		if api.IsNetwork(err) {
			fmt.Println("❌ Backend unreachable (network error)")
			fmt.Println("💡 Try: storefront mock-api")
		} else {
			fmt.Printf("❌ Backend error: %v\n", err)
		}
		return err
	}
	fmt.Printf("✅ Catalog reachable (%d products)\n", len(products))

	if _, err := a.Client.Conversation(ctx, api.ConversationQuery{UserID: "healthcheck"}); err != nil {
		fmt.Printf("⚠️  Support endpoint failed: %v\n", err)
		return err
	}
	fmt.Println("✅ Support endpoint reachable")
	return nil
}
