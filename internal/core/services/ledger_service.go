package services

import (
	"context"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
)

type ledgerService struct {
	accounts ports.AccountRepository
	entries  ports.LedgerEntryRepository
	logger   *logger.Logger
}

type LedgerServiceConfig struct {
	AccountRepo ports.AccountRepository
	EntryRepo   ports.LedgerEntryRepository
	Logger      *logger.Logger
}

func NewLedgerService(cfg LedgerServiceConfig) ports.LedgerService {
	return &ledgerService{
		accounts: cfg.AccountRepo,
		entries:  cfg.EntryRepo,
		logger:   cfg.Logger,
	}
}

// Debit charges the account through the repository's compare-and-decrement
// and journals the result. The journal write is best-effort with respect to
// the debit: a failed append is logged, never unwound, because the balance
// row is the source of truth and the journal is the audit trail.
func (s *ledgerService) Debit(ctx context.Context, accountID uint, amount int64, taskID *uint) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	newBalance, err := s.accounts.DebitBalance(ctx, accountID, amount)
	if err != nil {
		return 0, err
	}

	entry := &domain.LedgerEntry{
		AccountID:    accountID,
		TaskID:       taskID,
		EntryType:    domain.LedgerEntryListingFee,
		Amount:       -amount,
		BalanceAfter: newBalance,
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		s.logger.Errorw("ledger_journal_append_failed", "account_id", accountID, "amount", amount, "error", err)
	}

	return newBalance, nil
}

func (s *ledgerService) Credit(ctx context.Context, accountID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	newBalance, err := s.accounts.CreditBalance(ctx, accountID, amount)
	if err != nil {
		return 0, err
	}

	entry := &domain.LedgerEntry{
		AccountID:    accountID,
		EntryType:    domain.LedgerEntryTopUp,
		Amount:       amount,
		BalanceAfter: newBalance,
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		s.logger.Errorw("ledger_journal_append_failed", "account_id", accountID, "amount", amount, "error", err)
	}

	return newBalance, nil
}

func (s *ledgerService) History(ctx context.Context, accountID uint) ([]domain.LedgerEntry, error) {
	return s.entries.ListByAccount(ctx, accountID)
}
