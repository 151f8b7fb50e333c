package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/repositories"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// catalog admin:create — register an admin account.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create an admin account for the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		mongo, adminDB, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer mongo.Disconnect(context.Background())

		auth := services.NewAuthService(repositories.NewAdminUserRepository(adminDB))
		if err := auth.CreateAdmin(adminName, adminEmail, adminPassword); err != nil {
			return err
		}

		fmt.Printf("Admin account created: %s\n", adminEmail)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "login email (required)")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "login password (required)")
	adminCreateCmd.MarkFlagRequired("email")
	adminCreateCmd.MarkFlagRequired("password")
}
