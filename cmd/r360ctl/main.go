// Command r360ctl runs operator tasks against the configured database.
package main

import (
	"context"
	"fmt"
	"os"

	"restaurante360/config"
	"restaurante360/services"
	"restaurante360/services/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "r360ctl",
	Short:         "Restaurante360 operator tools",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := connect()
		if err != nil {
			return err
		}
		defer closeDB(db)
		if err := config.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema migrated (%s)", cfg.DB.Driver)
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, activity templates and processes from a TOML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := LoadSeed(seedFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cfg, log, db, err := connect()
		if err != nil {
			return err
		}
		defer closeDB(db)
		if err := config.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		identity, err := identityProvider(ctx, cfg, log)
		if err != nil {
			return err
		}
		svc := services.New(services.Options{DB: db, Logger: log, Location: cfg.Location()}, identity, nil)

		result, err := ApplySeed(ctx, svc, seed)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "users: %d created, %d existing; activities: %d; processes: %d\n",
			result.UsersCreated, result.UsersExisting, result.Activities, result.Processes)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.toml", "seed file")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func connect() (*config.Config, *logger.ZeroLogger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(cfg.Env, logger.LevelFromEnv(cfg.Env))
	db, err := config.ConnectDB(cfg.DB, cfg.Env, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func identityProvider(ctx context.Context, cfg *config.Config, log logger.Logger) (services.IdentityProvider, error) {
	if cfg.Auth.Provider != config.ProviderFirebase {
		return services.NewLocalProvider(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, nil), nil
	}
	app, err := config.ConnectFirebase(ctx, cfg.Auth.FirebaseCredentials, log)
	if err != nil {
		return nil, err
	}
	return services.NewFirebaseProvider(ctx, app)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
