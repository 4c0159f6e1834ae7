package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long: `Authenticate and persist the session locally. The guest cart is
carried over to the account, and queued guest wishlist picks are
replayed into the account wishlist.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and return to the guest scope",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	user, err := a.Login(context.Background(), loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("✅ Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if !a.Session.IsAuthenticated() {
		fmt.Println("👋 Already logged out")
		return nil
	}
	a.Logout()
	fmt.Println("👋 Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	user := a.Session.Current()
	if user == nil {
		fmt.Println("👤 Guest (not logged in)")
		return nil
	}
	fmt.Printf("👤 %s <%s>\n", user.Name, user.Email)
	fmt.Printf("   🏷️  Role: %s\n", user.Role)
	if user.Address != "" {
		fmt.Printf("   🏠 Address: %s\n", user.Address)
	}
	return nil
}
