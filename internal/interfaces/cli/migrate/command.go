// Package migrate implements the `boaz migrate` command group.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"boaz/internal/infrastructure/config"
	"boaz/internal/infrastructure/database"
	"boaz/internal/infrastructure/migration"
	"boaz/internal/shared/logger"
)

var (
	env      string
	steps    int
	strategy string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run or roll back the versioned SQL migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}

	cmd.Flags().StringVar(&strategy, "strategy", "golang-migrate", "Migration strategy (golang-migrate, goose)")

	return cmd
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func setup() error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func scriptsPath() string {
	path, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
	return path
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	var s migration.Strategy
	switch strategy {
	case "goose":
		s = migration.NewGooseStrategy(scriptsPath())
	default:
		s = migration.NewGolangMigrateStrategy(scriptsPath())
	}

	manager := migration.NewManagerWithStrategy(s)
	if err := manager.Migrate(database.Get()); err != nil {
		return err
	}

	logger.Info("migrations applied")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	strategy, ok := migration.NewGolangMigrateStrategy(scriptsPath()).(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("strategy does not support down migrations")
	}

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return err
	}

	logger.Info("migrations rolled back", "steps", steps)
	return nil
}
