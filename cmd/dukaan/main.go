package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dukaan",
	Short: "dukaan e-commerce backend CLI",
	Long:  "dukaan serves the shop API and static frontend, and manages its MongoDB collections.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(dbPingCmd)
	rootCmd.AddCommand(dbIndexCmd)
	rootCmd.AddCommand(seedCmd)
}
