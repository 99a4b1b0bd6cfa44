package services

import (
	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
)

// accessPolicy gates coordinator operations by role and verification.
// Customers post tasks; verified executors browse, pay and claim.
type accessPolicy struct{}

func NewAccessPolicy() ports.AccessPolicy {
	return &accessPolicy{}
}

func (p *accessPolicy) CanCreateTask(principal domain.Principal) bool {
	return principal.Role == domain.RoleCustomer
}

func (p *accessPolicy) CanBrowseTasks(principal domain.Principal) bool {
	return principal.Role == domain.RoleExecutor && principal.Verified
}

func (p *accessPolicy) CanPay(principal domain.Principal, task *domain.Task) bool {
	return principal.Role == domain.RoleExecutor && principal.Verified
}

// CanClaim does not require the claimer to be the payer: payment unlocks
// the task, it does not reserve it.
func (p *accessPolicy) CanClaim(principal domain.Principal, task *domain.Task) bool {
	return principal.Role == domain.RoleExecutor && principal.Verified
}
