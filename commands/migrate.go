package commands

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, stores, err := bootstrap()
		if err != nil {
			return err
		}
		defer stores.Close()
		return stores.Migrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
