package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skill-registry.backend/internal/config"
	"skill-registry.backend/internal/infrastructure/datasources/postgres"
	"skill-registry.backend/internal/infrastructure/migrations"
	"skill-registry.backend/pkg/logger"
)

var (
	loadCfg = config.Load
	openSQL = postgres.NewConnection
)

var errSQLiteStore = errors.New("goose migrations target postgres; sqlite stores get their schema at server start")

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the skill registry schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		gooseCmd("up", "Apply all pending migrations"),
		gooseCmd("down", "Roll back the latest migration"),
		gooseCmd("status", "Print the migration status"),
		versionCmd(),
		validateCmd(),
	)
	return root
}

func gooseCmd(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), command, func(ctx context.Context, db *sql.DB) error {
				return migrations.Run(ctx, db, command)
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version <YYYYMMDDHHMMSS>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), "version", func(ctx context.Context, db *sql.DB) error {
				return migrations.MigrateToVersion(ctx, db, args[0])
			})
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check migration filenames and goose annotations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrations.Validate(); err != nil {
				return fmt.Errorf("migration validation failed: %w", err)
			}
			versions, err := migrations.Versions()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migration validation passed (%d migrations)\n", len(versions))
			return nil
		},
	}
}

func withDB(ctx context.Context, command string, fn func(context.Context, *sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadCfg()
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	if cfg.Database.IsSQLite() {
		return errSQLiteStore
	}

	db, err := openSQL(cfg.Database)
	if err != nil {
		logger.Error(ctx, "resource not working: database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info(ctx, "migrate ready", zap.String("cmd", command), zap.String("db", cfg.Database.DBName))
	if err := fn(ctx, db); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}
