package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/suhome/storefront/internal/app"
	"github.com/suhome/storefront/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - local-first e-commerce client",
	Long: `Storefront is a local-first client for the storefront backend.

It keeps the cart, wishlist, orders, and the support conversation in
sync across sessions: state is persisted locally, mirrored to the
backend when it is reachable, and reconciled on login.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newApp loads configuration and wires the full service graph.
func newApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return app.New(cfg, log)
}
