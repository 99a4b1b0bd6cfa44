package db

import (
	"context"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type ledgerEntryRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLedgerEntryRepository(db *gorm.DB, log *logger.Logger) ports.LedgerEntryRepository {
	return &ledgerEntryRepository{db: db, log: log}
}

func (r *ledgerEntryRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		r.log.Errorw("ledger_repo_append_failed", "account_id", entry.AccountID, "error", err)
		return err
	}
	return nil
}

func (r *ledgerEntryRepository) ListByAccount(ctx context.Context, accountID uint) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		r.log.Errorw("ledger_repo_list_failed", "account_id", accountID, "error", err)
		return nil, err
	}
	return entries, nil
}
