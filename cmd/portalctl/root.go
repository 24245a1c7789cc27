package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	outputFmt string
	userID    string
	userName  string
	userRole  string
)

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "CLI for the level crossing closure portal",
	Long: `portalctl is a CLI for interacting with the closure portal server.

It covers the crossing registry, the closure request lifecycle (create,
sign, submit, approve, reject), comments, documents, and the approved
closures export feed.

Identity is passed as trusted headers; set --user and --role to act as a
specific portal user.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Portal server URL")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Acting user ID (default: from PORTAL_USER env)")
	rootCmd.PersistentFlags().StringVar(&userName, "username", "", "Acting user display name")
	rootCmd.PersistentFlags().StringVar(&userRole, "role", "", "Acting user role: railway_operator, administration, traffic_police (default: from PORTAL_ROLE env)")

	rootCmd.AddCommand(crossingsCmd)
	rootCmd.AddCommand(closuresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
}

// resolvedUser returns the effective user ID.
// Priority: --user flag > PORTAL_USER env var.
func resolvedUser() string {
	if userID != "" {
		return userID
	}
	return os.Getenv("PORTAL_USER")
}

// resolvedRole returns the effective role.
// Priority: --role flag > PORTAL_ROLE env var.
func resolvedRole() string {
	if userRole != "" {
		return userRole
	}
	return os.Getenv("PORTAL_ROLE")
}
