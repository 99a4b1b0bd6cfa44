package ports

import (
	"context"

	"github.com/jumush/backend/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uint) (*domain.Task, error)
	// ListOpenByRegion re-evaluates current state on every call; it is a
	// live view, not a snapshot.
	ListOpenByRegion(ctx context.Context, regionID uint) ([]domain.Task, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]domain.Task, error)
	// MarkPaid performs the conditional open->paid flip and reports whether
	// this call transitioned the row.
	MarkPaid(ctx context.Context, id uint) (bool, error)
	// ClaimExclusive runs the paid->claimed check-and-set inside one
	// transaction holding the task's row lock. Typed failures:
	// ErrTaskNotFound, ErrTaskNotPaid, ErrTaskAlreadyClaimed.
	ClaimExclusive(ctx context.Context, id uint, executorID uint) (*domain.Task, error)
}

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uint) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByToken(ctx context.Context, token string) (*domain.Account, error)
	// Update persists profile and credential fields. It never writes the
	// balance column: balance moves only through DebitBalance and
	// CreditBalance, so a stale in-memory copy cannot revert a committed
	// debit.
	Update(ctx context.Context, account *domain.Account) error
	// DebitBalance is an atomic compare-and-decrement on the account's
	// balance; it never leaves the balance negative. Returns the new
	// balance, or InsufficientFundsError.
	DebitBalance(ctx context.Context, id uint, amount int64) (int64, error)
	// CreditBalance is the guarded increment backing top-ups. It exists so
	// a refund path can be added without touching DebitBalance's invariant.
	CreditBalance(ctx context.Context, id uint, amount int64) (int64, error)
	// Delete applies the ownership policy: a customer's tasks are removed
	// with the account, an executor's claimed tasks keep living with the
	// executor reference cleared.
	Delete(ctx context.Context, id uint) error
}

type LedgerEntryRepository interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID uint) ([]domain.LedgerEntry, error)
}

type RegionRepository interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	GetRegion(ctx context.Context, id uint) (*domain.Region, error)
	SubregionsOf(ctx context.Context, regionID uint) ([]domain.Subregion, error)
	GetSubregion(ctx context.Context, id uint) (*domain.Subregion, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id uint) (*domain.Category, error)
}
