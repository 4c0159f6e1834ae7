package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/suhome/storefront/internal/config"
	"github.com/suhome/storefront/internal/mockapi"
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Start the in-memory mock backend",
	Long: `Start an in-memory storefront backend for local development.

It serves the full REST surface the client talks to, seeded with demo
products, a demo customer (demo@example.com / password), and a sales
manager account (sales@example.com / password).`,
	RunE: runMockAPI,
}

func init() {
	rootCmd.AddCommand(mockAPICmd)
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	srv := mockapi.NewServer(logrus.NewEntry(log).WithField("component", "mockapi"))

	fmt.Printf("🌐 Mock backend listening on %s...\n", cfg.MockAPI.Addr)
	if err := srv.Start(cfg.MockAPI.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
