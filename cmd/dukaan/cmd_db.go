package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dukaan/config"
	"github.com/shashiranjanraj/dukaan/database/seeders"
	"github.com/shashiranjanraj/dukaan/pkg/database"
)

// withStore loads config, opens the store, runs fn, and disconnects.
func withStore(fn func(ctx context.Context, db *database.Mongo) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return err
	}
	defer db.Close(context.Background()) //nolint:errcheck

	return fn(ctx, db)
}

// dukaan db:ping
var dbPingCmd = &cobra.Command{
	Use:   "db:ping",
	Short: "Verify the MongoDB connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *database.Mongo) error {
			if err := db.Ping(ctx); err != nil {
				return err
			}
			fmt.Println("MongoDB reachable.")
			return nil
		})
	},
}

// dukaan db:index — create the unique indexes signup depends on.
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the collection indexes (unique username/email)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *database.Mongo) error {
			fmt.Println("Creating indexes…")
			if err := db.EnsureIndexes(ctx); err != nil {
				return err
			}
			fmt.Println("Indexes ready.")
			return nil
		})
	},
}

// dukaan seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, db *database.Mongo) error {
			fmt.Println("Running seeders…")
			return seeders.RunAll(ctx, db)
		})
	},
}
