// Package sweep implements the `boaz sweep` command: a one-shot run of the
// expired subscription closure, for cron setups that do not want the
// in-process scheduler.
package sweep

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	subscriptionUsecases "boaz/internal/application/subscription/usecases"
	"boaz/internal/infrastructure/config"
	"boaz/internal/infrastructure/database"
	"boaz/internal/infrastructure/repository"
	"boaz/internal/shared/biztime"
	"boaz/internal/shared/db"
	"boaz/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close expired subscriptions once and exit",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := biztime.Init(cfg.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()
	gormDB := database.Get()

	uc := subscriptionUsecases.NewCloseExpiredSubscriptionsUseCase(
		repository.NewSubscriptionRepository(gormDB, log),
		repository.NewHousingUnitRepository(gormDB, log),
		db.NewTransactionManager(gormDB),
		log,
	)

	result, err := uc.Execute(context.Background())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	logger.Info("sweep completed",
		"closed", result.Closed,
		"freed_units", result.FreedUnits,
		"failed", result.Failed)
	return nil
}
