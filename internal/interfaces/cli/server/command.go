// Package server implements the `boaz server` command: it wires the whole
// application together and runs the HTTP API plus the closure scheduler.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	housingUsecases "boaz/internal/application/housing/usecases"
	subscriptionUsecases "boaz/internal/application/subscription/usecases"
	userUsecases "boaz/internal/application/user/usecases"
	vo "boaz/internal/domain/user/valueobjects"
	"boaz/internal/infrastructure/auth"
	"boaz/internal/infrastructure/catalog"
	"boaz/internal/infrastructure/config"
	"boaz/internal/infrastructure/database"
	"boaz/internal/infrastructure/email"
	"boaz/internal/infrastructure/migration"
	"boaz/internal/infrastructure/pdf"
	"boaz/internal/infrastructure/permission"
	"boaz/internal/infrastructure/repository"
	"boaz/internal/infrastructure/scheduler"
	httpRouter "boaz/internal/interfaces/http"
	"boaz/internal/interfaces/http/handlers"
	"boaz/internal/shared/biztime"
	"boaz/internal/shared/db"
	"boaz/internal/shared/id"
	"boaz/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Boaz HTTP API with the configured database, catalog and scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

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

	logger.Info("starting server", "environment", env)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	migrationManager := migration.NewManager(env)
	if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	log := logger.NewLogger()
	gormDB := database.Get()

	// Infrastructure services.
	txMgr := db.NewTransactionManager(gormDB)
	unitRepo := repository.NewHousingUnitRepository(gormDB, log)
	subRepo := repository.NewSubscriptionRepository(gormDB, log)
	userRepo := repository.NewUserRepository(gormDB, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	enforcer, err := permission.NewEnforcer(gormDB, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permissions: %w", err)
	}

	svcCatalog := catalog.NewJSONCatalog(&cfg.Catalog, log)

	pdfGenerator, err := pdf.NewGenerator(&cfg.Document, log)
	if err != nil {
		return fmt.Errorf("failed to initialize document generator: %w", err)
	}

	var notifier email.Sender
	if cfg.Email.Enabled {
		notifier = email.NewSMTPEmailService(cfg.Email)
	} else {
		notifier = email.NoopSender{}
		log.Infow("email delivery disabled")
	}

	refGen := subscriptionUsecases.ReferenceGeneratorFunc(id.NewReference)

	// Use cases.
	createUnitUC := housingUsecases.NewCreateHousingUnitUseCase(unitRepo, log)
	getUnitUC := housingUsecases.NewGetHousingUnitUseCase(unitRepo, log)
	listUnitsUC := housingUsecases.NewListHousingUnitsUseCase(unitRepo, log)
	updateUnitUC := housingUsecases.NewUpdateHousingUnitUseCase(unitRepo, log)
	deleteUnitUC := housingUsecases.NewDeleteHousingUnitUseCase(unitRepo, subRepo, log)
	setUnitStatusUC := housingUsecases.NewSetHousingUnitStatusUseCase(unitRepo, log)

	createSubUC := subscriptionUsecases.NewCreateSubscriptionUseCase(subRepo, unitRepo, refGen, log)
	getSubUC := subscriptionUsecases.NewGetSubscriptionUseCase(subRepo, log)
	listSubsUC := subscriptionUsecases.NewListSubscriptionsUseCase(subRepo, log)
	updateSubUC := subscriptionUsecases.NewUpdateSubscriptionUseCase(subRepo, unitRepo, log)
	deleteSubUC := subscriptionUsecases.NewDeleteSubscriptionUseCase(subRepo, log)
	markPaidUC := subscriptionUsecases.NewMarkPaidUseCase(subRepo, notifier, log)
	deliverUC := subscriptionUsecases.NewMarkDeliveredUseCase(
		subRepo, unitRepo, svcCatalog, txMgr, pdfGenerator, notifier, log)
	overrideUC := subscriptionUsecases.NewOverrideStatusUseCase(subRepo, unitRepo, txMgr, log)
	closeExpiredUC := subscriptionUsecases.NewCloseExpiredSubscriptionsUseCase(subRepo, unitRepo, txMgr, log)
	proformaUC := subscriptionUsecases.NewGenerateProformaUseCase(subRepo, svcCatalog, pdfGenerator, log)

	registerUC := userUsecases.NewRegisterUserUseCase(userRepo, hasher, log)
	loginUC := userUsecases.NewLoginUseCase(userRepo, hasher, tokenIssuer{jwtService}, log)

	// HTTP surface.
	router := httpRouter.NewRouter(httpRouter.RouterParams{
		Config:      cfg,
		JWTService:  jwtService,
		Enforcer:    enforcer,
		Logger:      log,
		AuthHandler: handlers.NewAuthHandler(registerUC, loginUC, log),
		HousingUnitHandler: handlers.NewHousingUnitHandler(
			createUnitUC, getUnitUC, listUnitsUC, updateUnitUC, deleteUnitUC, setUnitStatusUC, log),
		SubscriptionHandler: handlers.NewSubscriptionHandler(
			createSubUC, getSubUC, listSubsUC, updateSubUC, deleteSubUC,
			markPaidUC, deliverUC, overrideUC, closeExpiredUC, proformaUC, log),
		CatalogHandler: handlers.NewCatalogHandler(svcCatalog),
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closureScheduler *scheduler.ClosureScheduler
	if cfg.Sweep.Enabled {
		closureScheduler = scheduler.NewClosureScheduler(closeExpiredUC, cfg.Sweep.IntervalHours, log)
		closureScheduler.Start(ctx)
	}

	go func() {
		logger.Info("server listening",
			"address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped unexpectedly", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	if closureScheduler != nil {
		closureScheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// tokenIssuer adapts the JWT service to the login use case's port.
type tokenIssuer struct {
	jwt *auth.JWTService
}

func (t tokenIssuer) Generate(userID uint, email string, role vo.Role) (*userUsecases.TokenPair, error) {
	pair, err := t.jwt.Generate(userID, email, role)
	if err != nil {
		return nil, err
	}
	return &userUsecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
