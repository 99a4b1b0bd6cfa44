package services

import (
	"context"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
	"github.com/jumush/backend/internal/infrastructure/logger"
)

// claimService drives the task state machine: open -> paid -> claimed,
// forward-only, each transition exactly once. Pay charges the listing fee
// and unlocks claiming without binding an executor; Claim binds exactly one
// executor under the task's row lock.
type claimService struct {
	tasks  ports.TaskRepository
	ledger ports.LedgerService
	policy ports.AccessPolicy
	logger *logger.Logger
}

type ClaimServiceConfig struct {
	TaskRepo ports.TaskRepository
	Ledger   ports.LedgerService
	Policy   ports.AccessPolicy
	Logger   *logger.Logger
}

func NewClaimService(cfg ClaimServiceConfig) ports.ClaimService {
	return &claimService{
		tasks:  cfg.TaskRepo,
		ledger: cfg.Ledger,
		policy: cfg.Policy,
		logger: cfg.Logger,
	}
}

// Pay debits the listing fee and flips the task open->paid.
//
// The debit commits in its own short transaction before the task row is
// touched, so the two lock domains (account row, task row) are never held
// together. If the conditional flip then reports no transition, a
// concurrent payer won after our debit committed; the task is consistent
// (paid exactly once) and the orphaned debit stays visible in the ledger
// journal for the external reconciler.
func (s *claimService) Pay(ctx context.Context, principal domain.Principal, taskID uint) (*ports.PayResult, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanPay(principal, task) {
		return nil, domain.ErrForbidden
	}

	if task.State != domain.TaskStateOpen {
		return nil, domain.ErrTaskAlreadyPaid
	}

	newBalance, err := s.ledger.Debit(ctx, principal.AccountID, task.PriceForExecutor, &task.ID)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.tasks.MarkPaid(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		s.logger.Warnw("pay_lost_race_after_debit",
			"task_id", taskID,
			"account_id", principal.AccountID,
			"amount", task.PriceForExecutor,
		)
		return nil, domain.ErrTaskAlreadyPaid
	}

	s.logger.Infow("pay_ok", "task_id", taskID, "account_id", principal.AccountID, "amount", task.PriceForExecutor)
	return &ports.PayResult{
		TaskID:     taskID,
		AmountPaid: task.PriceForExecutor,
		NewBalance: newBalance,
	}, nil
}

// Claim runs the paid->claimed check-and-set under the task's row lock.
// Racing claimers are totally ordered by lock acquisition; exactly one
// observes an unbound executor and wins, the rest get ErrTaskAlreadyClaimed.
// The success payload includes the customer's contact channel.
func (s *claimService) Claim(ctx context.Context, principal domain.Principal, taskID uint) (*ports.ClaimResult, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanClaim(principal, task) {
		return nil, domain.ErrForbidden
	}

	claimed, err := s.tasks.ClaimExclusive(ctx, taskID, principal.AccountID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("claim_ok", "task_id", taskID, "executor_id", principal.AccountID)
	return &ports.ClaimResult{
		Task:    claimed,
		Contact: claimed.Contact,
	}, nil
}
