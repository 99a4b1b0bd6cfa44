package db

import (
	"context"
	"errors"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type accountRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepository(db *gorm.DB, log *logger.Logger) ports.AccountRepository {
	return &accountRepository{db: db, log: log}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		r.log.Errorw("account_repo_create_failed", "email", account.Email, "error", err)
		return err
	}
	r.log.Infow("account_repo_create_ok", "id", account.ID, "role", account.Role)
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		r.log.Errorw("account_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByToken(ctx context.Context, token string) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Update writes every column except balance. The balance moves only
// through the atomic debit/credit primitives; a copy read before a
// concurrent debit committed must never write the old value back.
func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Omit("balance").Save(account).Error; err != nil {
		r.log.Errorw("account_repo_update_failed", "id", account.ID, "error", err)
		return err
	}
	return nil
}

// DebitBalance is the ledger primitive: a single compare-and-decrement
// statement, serialized per account by the row write lock. The balance
// check and the subtraction are one atomic step, so concurrent debits can
// never drive the balance negative or double-spend it.
func (r *accountRepository) DebitBalance(ctx context.Context, id uint, amount int64) (int64, error) {
	var remaining []int64
	res := r.db.WithContext(ctx).
		Raw(`UPDATE accounts SET balance = balance - ?, updated_at = NOW()
		     WHERE id = ? AND deleted_at IS NULL AND balance >= ?
		     RETURNING balance`, amount, id, amount).
		Scan(&remaining)
	if res.Error != nil {
		r.log.Errorw("account_repo_debit_failed", "id", id, "amount", amount, "error", res.Error)
		return 0, res.Error
	}
	if len(remaining) == 0 {
		account, err := r.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		r.log.Warnw("account_repo_debit_insufficient", "id", id, "required", amount, "available", account.Balance)
		return 0, &domain.InsufficientFundsError{Required: amount, Available: account.Balance}
	}
	r.log.Infow("account_repo_debit_ok", "id", id, "amount", amount, "balance", remaining[0])
	return remaining[0], nil
}

// CreditBalance backs top-ups. Kept separate from DebitBalance so the debit
// path stays a pure compare-and-decrement.
func (r *accountRepository) CreditBalance(ctx context.Context, id uint, amount int64) (int64, error) {
	var balance []int64
	res := r.db.WithContext(ctx).
		Raw(`UPDATE accounts SET balance = balance + ?, updated_at = NOW()
		     WHERE id = ? AND deleted_at IS NULL
		     RETURNING balance`, amount, id).
		Scan(&balance)
	if res.Error != nil {
		r.log.Errorw("account_repo_credit_failed", "id", id, "amount", amount, "error", res.Error)
		return 0, res.Error
	}
	if len(balance) == 0 {
		return 0, domain.ErrAccountNotFound
	}
	r.log.Infow("account_repo_credit_ok", "id", id, "amount", amount, "balance", balance[0])
	return balance[0], nil
}

// Delete applies the ownership policy: a customer takes their tasks with
// them, an executor's claimed tasks survive with the reference cleared.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account domain.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		switch account.Role {
		case domain.RoleCustomer:
			if err := tx.Where("customer_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
				return err
			}
		case domain.RoleExecutor:
			if err := tx.Model(&domain.Task{}).
				Where("executor_id = ?", id).
				Update("executor_id", nil).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&domain.Account{}, id).Error
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			r.log.Errorw("account_repo_delete_failed", "id", id, "error", err)
		}
		return err
	}
	r.log.Infow("account_repo_delete_ok", "id", id)
	return nil
}
