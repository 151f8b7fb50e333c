package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/config"
	"github.com/tintandorange-gh/tno-catalog-distributor/database/seeders"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/database"
)

// bootDB loads config and opens both database handles.
func bootDB(ctx context.Context) (*database.Mongo, *gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}

	mongo, err := database.ConnectMongo(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}

	adminDB, err := database.ConnectAdmin()
	if err != nil {
		return nil, nil, err
	}
	if err := adminDB.AutoMigrate(&models.AdminUser{}); err != nil {
		return nil, nil, err
	}

	return mongo, adminDB, nil
}

// catalog db:seed — load sample catalog data and the bootstrap admin.
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		mongo, adminDB, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer mongo.Disconnect(context.Background())

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, seeders.Deps{Mongo: mongo, AdminDB: adminDB})
	},
}
