package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hostelfood/internal/auth"
	"hostelfood/internal/config"
	"hostelfood/internal/db"
	"hostelfood/internal/logging"
	"hostelfood/internal/repository"
	"hostelfood/internal/seed"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	driver string
	reset  bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo users, menu items and today's menus",
	Long: "Creates admin@hostel.com / admin123 and student@hostel.com / student123, " +
		"the 14-item catalog and published menus for today and tomorrow. Existing records are left alone.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logging.Setup(cfg.LogLevel, cfg.LogFormat)
		if driver != "" {
			cfg.StoreDriver = driver
		}
		if reset {
			cfg.ResetDB = true
		}

		ctx := context.Background()
		store, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close(ctx)

		repos := repository.New(store, cfg.DBTimeout)
		report, err := seed.New(repos, auth.NewPasswordHasher(cfg.BcryptCost), nil).Run(ctx)
		if err != nil {
			return err
		}

		logrus.WithField("driver", cfg.StoreDriver).Info("database seeded")
		fmt.Fprintf(cmd.OutOrStdout(), "users: %d, menu items: %d, menus: %d created\n",
			report.Users, report.MenuItems, report.Menus)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&driver, "driver", "", "override STORE_DRIVER (mongo, mysql, postgres, sqlite, sqlserver)")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "drop all data before seeding")
}
