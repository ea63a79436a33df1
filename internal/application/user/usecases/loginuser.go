package usecases

import (
	"context"

	"boaz/internal/domain/user"
	vo "boaz/internal/domain/user/valueobjects"
	"boaz/internal/shared/biztime"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

// TokenIssuer mints the token pair returned on successful authentication.
type TokenIssuer interface {
	Generate(userID uint, email string, role vo.Role) (*TokenPair, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginResult struct {
	User   *user.User
	Tokens *TokenPair
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	issuer   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	issuer TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	account, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, appErrors.NewInternalError("login failed")
	}
	if account == nil {
		// Same answer as a wrong password so existing emails cannot be probed.
		return nil, appErrors.NewUnauthorizedError("invalid email or password")
	}

	if err := account.Authenticate(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("failed login attempt", "email", cmd.Email)
		return nil, appErrors.NewUnauthorizedError("invalid email or password")
	}

	tokens, err := uc.issuer.Generate(account.ID(), account.Email(), account.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", account.ID(), "error", err)
		return nil, appErrors.NewInternalError("login failed")
	}

	account.RecordLogin(biztime.NowUTC())
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Warnw("failed to record login time", "user_id", account.ID(), "error", err)
	}

	uc.logger.Infow("user logged in", "id", account.ID(), "email", account.Email())
	return &LoginResult{User: account, Tokens: tokens}, nil
}
