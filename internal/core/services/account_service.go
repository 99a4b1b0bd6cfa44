package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/cache"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	accounts ports.AccountRepository
	regions  ports.RegionService
	ledger   ports.LedgerService
	codes    *cache.CodeStore
	logger   *logger.Logger
}

type AccountServiceConfig struct {
	AccountRepo ports.AccountRepository
	Regions     ports.RegionService
	Ledger      ports.LedgerService
	Codes       *cache.CodeStore
	Logger      *logger.Logger
}

func NewAccountService(cfg AccountServiceConfig) ports.AccountService {
	return &accountService{
		accounts: cfg.AccountRepo,
		regions:  cfg.Regions,
		ledger:   cfg.Ledger,
		codes:    cfg.Codes,
		logger:   cfg.Logger,
	}
}

func (s *accountService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", domain.ErrAccountInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrAccountInvalidInput)
	}
	if input.Role != domain.RoleCustomer && input.Role != domain.RoleExecutor {
		return nil, fmt.Errorf("%w: role must be customer or executor", domain.ErrAccountInvalidInput)
	}
	if input.RegionID == 0 {
		return nil, fmt.Errorf("%w: region is required", domain.ErrAccountInvalidInput)
	}

	if input.SubregionID != nil {
		if err := s.regions.ValidateSubregion(ctx, input.RegionID, *input.SubregionID); err != nil {
			return nil, err
		}
	}

	if existing, _ := s.accounts.GetByEmail(ctx, email); existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		Role:         input.Role,
		RegionID:     input.RegionID,
		SubregionID:  input.SubregionID,
		Token:        uuid.New().String(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Infow("account_registered", "id", account.ID, "role", account.Role, "region_id", account.RegionID)
	return &ports.AuthResult{Account: account, Token: account.Token}, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.logger.Warnw("login_failed", "email", email)
		return nil, domain.ErrInvalidCredentials
	}

	// Token rotates on every login; older sessions are invalidated.
	account.Token = uuid.New().String()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return &ports.AuthResult{Account: account, Token: account.Token}, nil
}

func (s *accountService) ChangePassword(ctx context.Context, principal domain.Principal, oldPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, principal.AccountID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrWrongPassword
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrAccountInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	account.Token = uuid.New().String()
	return s.accounts.Update(ctx, account)
}

// RequestPasswordReset issues a one-time code. Delivery is out of scope;
// the code is returned to the caller (the notification collaborator).
// Unknown emails get a success-shaped answer to avoid account probing.
func (s *accountService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.accounts.GetByEmail(ctx, email); err != nil {
		s.logger.Warnw("reset_requested_for_unknown_email", "email", email)
		return "", nil
	}

	code := uuid.New().String()[:8]
	s.codes.Put(email, code)
	s.logger.Infow("reset_code_issued", "email", email)
	return code, nil
}

func (s *accountService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.codes.Consume(email, code) {
		return domain.ErrInvalidResetCode
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrAccountInvalidInput)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	account.Token = uuid.New().String()
	return s.accounts.Update(ctx, account)
}

func (s *accountService) Profile(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, principal.AccountID)
}

func (s *accountService) UpdateProfile(ctx context.Context, principal domain.Principal, input ports.UpdateProfileInput) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, principal.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		account.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.SubregionID != nil {
		if err := s.regions.ValidateSubregion(ctx, account.RegionID, *input.SubregionID); err != nil {
			return nil, err
		}
		account.SubregionID = input.SubregionID
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// TopUp credits an executor wallet. The handler gates it behind the admin
// token; the core only enforces the amount and account constraints.
func (s *accountService) TopUp(ctx context.Context, accountID uint, amount int64) (int64, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return 0, err
	}
	return s.ledger.Credit(ctx, accountID, amount)
}

// Verify flips the verification flag after the out-of-band document check.
func (s *accountService) Verify(ctx context.Context, accountID uint) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.Verified {
		return nil
	}
	account.Verified = true
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}
	s.logger.Infow("account_verified", "id", accountID)
	return nil
}

func (s *accountService) Delete(ctx context.Context, principal domain.Principal) error {
	return s.accounts.Delete(ctx, principal.AccountID)
}
