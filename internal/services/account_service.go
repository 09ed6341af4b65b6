package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wanderwise/internal/models/db_models"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/internal/repositories"
	mem "wanderwise/pkg/memcache"
	"wanderwise/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
}

type AccountService struct {
	accountRepo   repositories.AccountRepository
	jwt           *utils.JWTManager
	resetTokens   mem.ResetTokenStore
	resetTokenTTL time.Duration
	mail          IMailService
	adminEmails   []string
	logger        *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	resetTokens mem.ResetTokenStore,
	resetTokenTTL time.Duration,
	mail IMailService,
	adminEmails []string,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:   accountRepo,
		jwt:           jwt,
		resetTokens:   resetTokens,
		resetTokenTTL: resetTokenTTL,
		mail:          mail,
		adminEmails:   lo.Map(adminEmails, func(e string, _ int) string { return normalizeEmail(e) }),
		logger:        logger.Named("account"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.logger.Error("find account by email", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("sign token", zap.Error(err))
		return nil, err
	}

	a.logger.Debug("login ok", zap.String("account_id", account.ID.String()), zap.Duration("took", time.Since(startTime)))
	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(a.jwt.TTL()).Unix(),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("find account by email", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return err
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
	}
	if lo.Contains(a.adminEmails, email) {
		newAccount.Role = db_models.RoleAdmin
	}

	if err := a.accountRepo.InsertTx(ctx, newAccount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrEmailAlreadyExists
		}
		a.logger.Error("insert account", zap.Error(err))
		return utils.ErrDatabaseError
	}

	a.logger.Info("account created", zap.String("account_id", newAccount.ID.String()))
	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, accountID string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	if err := a.accountRepo.UpdateName(ctx, accountID, strings.TrimSpace(request.DisplayName)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrAccountNotFound
		}
		return nil, utils.ErrDatabaseError
	}
	return a.GetAccount(ctx, accountID)
}

// ForgotPassword never reveals whether the email is registered.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		a.logger.Debug("password reset for unknown email")
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	a.resetTokens.Set(token, email, a.resetTokenTTL)

	if err := a.mail.SendMailToResetPassword(ctx, email, token); err != nil {
		a.logger.Warn("reset mail not delivered", zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}

	if err := a.accountRepo.UpdatePasswordHash(ctx, email, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrAccountNotFound
		}
		return utils.ErrDatabaseError
	}
	return nil
}

func toAccountResponse(account *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}
}
