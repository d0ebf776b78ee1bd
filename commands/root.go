// Package commands is the command line of the API server.
package commands

import (
	"fmt"
	"os"

	"github.com/shopping-mall/mall-api/initializers"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "mall-api",
	Short: "Shopping mall storefront API",
	Long: `mall-api serves the storefront REST API: accounts, the product
catalog, carts, checkout with PortOne payment verification and order
management.

Run "mall-api serve" to start the HTTP server. The other commands manage
the database schema and its initial data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "read environment variables from this file instead of .env")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration, sets up logging and opens the stores.
func bootstrap() (*initializers.Config, *initializers.Stores, error) {
	if envFile != "" {
		initializers.LoadEnv(envFile)
	} else {
		initializers.LoadEnv()
	}

	cfg, err := initializers.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	initializers.SetupLogger(cfg.LogLevel)

	stores, err := initializers.OpenStores(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, stores, nil
}
