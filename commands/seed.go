package commands

import (
	"fmt"
	"os"

	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products from a YAML catalog file",
	Long: `Load products from a YAML catalog file. Products whose SKU already
exists are skipped, so the command can be re-run safely.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "catalog.yaml", "catalog file to load")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	inputs, err := utils.ParseCatalog(f)
	if err != nil {
		return err
	}

	_, stores, err := bootstrap()
	if err != nil {
		return err
	}
	defer stores.Close()
	if err := stores.Migrate(); err != nil {
		return err
	}

	products := services.NewProductService(stores.Products, nil)
	result, err := products.Seed(cmd.Context(), inputs)
	if err != nil {
		return fmt.Errorf("seeding stopped after %d products: %w", result.Created, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d products created, %d skipped\n", result.Created, result.Skipped)
	return nil
}
