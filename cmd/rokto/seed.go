package main

import (
	"context"
	"fmt"

	"rokto/internal/db"
	"rokto/internal/seed"
	"rokto/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		locationRepo := store.NewLocationRepository(pool)
		userRepo := store.NewUserRepository(pool)

		logrus.Info("Seeding districts and upazilas...")
		if err := seed.SeedLocations(ctx, locationRepo); err != nil {
			return fmt.Errorf("failed to seed locations: %w", err)
		}

		logrus.Info("Seeding bootstrap admin...")
		if err := seed.SeedAdmin(ctx, userRepo, cfg); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
