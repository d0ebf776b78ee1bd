package commands

import (
	"fmt"

	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/spf13/cobra"
)

var adminInput models.SignupData

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, stores, err := bootstrap()
		if err != nil {
			return err
		}
		defer stores.Close()
		if err := stores.Migrate(); err != nil {
			return err
		}

		input := adminInput
		input.Role = models.RoleAdmin
		user, err := services.NewUserService(stores.Users).Create(cmd.Context(), input, true)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminInput.Email, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminInput.Name, "name", "Admin", "display name")
	createAdminCmd.Flags().StringVar(&adminInput.Password, "password", "", "password (min 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
