package ports

import (
	"context"
	"time"

	"github.com/jumush/backend/internal/domain"
)

// ==================== INPUTS ====================

type CreateTaskInput struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PriceForExecutor int64      `json:"price_for_executor"`
	Budget           int64      `json:"budget"`
	Deadline         *time.Time `json:"deadline"`
	Contact          string     `json:"contact"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Media            []string   `json:"media"`
	CategoryID       *uint      `json:"category_id"`
}

type RegisterInput struct {
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
	RegionID    uint        `json:"region_id"`
	SubregionID *uint       `json:"subregion_id"`
}

type UpdateProfileInput struct {
	Phone       *string `json:"phone"`
	SubregionID *uint   `json:"subregion_id"`
}

// ==================== RESULTS ====================

// ClaimResult is the success payload of a claim: the bound task plus the
// contact channel the executor uses to reach the customer.
type ClaimResult struct {
	Task    *domain.Task `json:"task"`
	Contact string       `json:"contact"`
}

type PayResult struct {
	TaskID     uint  `json:"task_id"`
	AmountPaid int64 `json:"amount_paid"`
	NewBalance int64 `json:"new_balance"`
}

type AuthResult struct {
	Account *domain.Account `json:"account"`
	Token   string          `json:"token"`
}

// ==================== SERVICES ====================

type TaskService interface {
	CreateTask(ctx context.Context, principal domain.Principal, input CreateTaskInput) (*domain.Task, error)
	ListOpenTasks(ctx context.Context, principal domain.Principal) ([]domain.Task, error)
	ListOwnTasks(ctx context.Context, principal domain.Principal) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint) (*domain.Task, error)
}

// ClaimService is the claim-and-payment coordinator. Pay unlocks claiming
// by charging the listing fee; Claim binds exactly one executor.
type ClaimService interface {
	Pay(ctx context.Context, principal domain.Principal, taskID uint) (*PayResult, error)
	Claim(ctx context.Context, principal domain.Principal, taskID uint) (*ClaimResult, error)
}

type LedgerService interface {
	// Debit atomically charges amount against the account and journals the
	// entry. taskID annotates the journal row when the debit is a listing fee.
	Debit(ctx context.Context, accountID uint, amount int64, taskID *uint) (int64, error)
	Credit(ctx context.Context, accountID uint, amount int64) (int64, error)
	History(ctx context.Context, accountID uint) ([]domain.LedgerEntry, error)
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, principal domain.Principal, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
	Profile(ctx context.Context, principal domain.Principal) (*domain.Account, error)
	UpdateProfile(ctx context.Context, principal domain.Principal, input UpdateProfileInput) (*domain.Account, error)
	TopUp(ctx context.Context, accountID uint, amount int64) (int64, error)
	Verify(ctx context.Context, accountID uint) error
	Delete(ctx context.Context, principal domain.Principal) error
}

type RegionService interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	SubregionsOf(ctx context.Context, regionID uint) ([]domain.Subregion, error)
	RegionOf(ctx context.Context, subregionID uint) (*domain.Region, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// ValidateSubregion checks that the subregion belongs to the stated
	// region; registration consults this before creating an account.
	ValidateSubregion(ctx context.Context, regionID uint, subregionID uint) error
}

// AccessPolicy is the stateless authorization gate consulted before every
// coordinator operation. A denial is ErrForbidden, distinct from the
// state-machine conflicts.
type AccessPolicy interface {
	CanCreateTask(principal domain.Principal) bool
	CanBrowseTasks(principal domain.Principal) bool
	CanPay(principal domain.Principal, task *domain.Task) bool
	CanClaim(principal domain.Principal, task *domain.Task) bool
}
