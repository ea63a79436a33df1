package usecases

import (
	"context"
	"errors"

	"boaz/internal/domain/user"
	vo "boaz/internal/domain/user/valueobjects"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type RegisterUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	role, ok := vo.ParseRole(cmd.Role)
	if !ok {
		return nil, appErrors.NewValidationError("unknown role: " + cmd.Role)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, appErrors.NewInternalError("failed to register user")
	}
	if exists {
		return nil, appErrors.NewConflictError("email already registered")
	}

	account, err := user.NewUser(cmd.Email, cmd.Name, cmd.Password, role, uc.hasher)
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, account); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return nil, appErrors.NewConflictError("email already registered")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, appErrors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered", "id", account.ID(), "email", account.Email(), "role", role)
	return account, nil
}
