// Package user implements the `boaz user` command group. The create
// subcommand bootstraps the first administrator account, since the HTTP
// registration endpoint itself requires an authenticated admin.
package user

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	userUsecases "boaz/internal/application/user/usecases"
	"boaz/internal/infrastructure/auth"
	"boaz/internal/infrastructure/config"
	"boaz/internal/infrastructure/database"
	"boaz/internal/infrastructure/repository"
	"boaz/internal/shared/logger"
)

var (
	env      string
	email    string
	name     string
	password string
	role     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User administration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE:  runCreate,
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&role, "role", "admin", "Role (admin, manager, viewer)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("password")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
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
	defer database.Close()

	log := logger.NewLogger()

	uc := userUsecases.NewRegisterUserUseCase(
		repository.NewUserRepository(database.Get(), log),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		log,
	)

	account, err := uc.Execute(context.Background(), userUsecases.RegisterUserCommand{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		"id", account.ID(), "email", account.Email(), "role", account.Role())
	return nil
}
