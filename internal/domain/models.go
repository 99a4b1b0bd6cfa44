package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ==================== ENUMS ====================

type Role string

const (
	RoleCustomer Role = "customer"
	RoleExecutor Role = "executor"
)

// TaskState is monotonic: open -> paid -> claimed. No backward transitions.
type TaskState string

const (
	TaskStateOpen    TaskState = "open"
	TaskStatePaid    TaskState = "paid"
	TaskStateClaimed TaskState = "claimed"
)

type LedgerEntryType string

const (
	LedgerEntryListingFee LedgerEntryType = "listing_fee"
	LedgerEntryTopUp      LedgerEntryType = "top_up"
)

// ==================== JSONB TYPES ====================

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan JSONB: invalid type")
	}
	return json.Unmarshal(bytes, j)
}

// StringList stores a jsonb array of strings (task media references).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList: invalid type")
	}
	return json.Unmarshal(bytes, l)
}

// ==================== ENTITIES ====================

type Region struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title      string      `gorm:"size:155;uniqueIndex;not null" json:"title"`
	Subregions []Subregion `gorm:"foreignKey:RegionID" json:"subregions,omitempty"`
}

type Subregion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title    string  `gorm:"size:155;not null" json:"title"`
	RegionID uint    `gorm:"not null;index" json:"region_id"`
	Region   *Region `gorm:"constraint:OnDelete:CASCADE" json:"region,omitempty"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title string `gorm:"size:155;uniqueIndex;not null" json:"title"`
}

type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:155" json:"phone"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null;index" json:"role"`
	Verified     bool   `gorm:"default:false" json:"verified"`

	// Balance is the executor's prepaid listing-fee wallet, in whole som.
	// Mutated only through the atomic repository primitives; never negative.
	Balance int64 `gorm:"not null;default:0;check:balance >= 0" json:"balance"`

	Token string `gorm:"size:64;uniqueIndex" json:"-"`

	RegionID    uint       `gorm:"not null;index" json:"region_id"`
	Region      *Region    `json:"region,omitempty"`
	SubregionID *uint      `gorm:"index" json:"subregion_id,omitempty"`
	Subregion   *Subregion `gorm:"constraint:OnDelete:SET NULL" json:"subregion,omitempty"`
}

type Task struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Title       string `gorm:"size:155;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// PriceForExecutor is the fixed listing fee an executor pays to unlock
	// claiming; Budget is what the customer offers for the work itself.
	PriceForExecutor int64 `gorm:"not null" json:"price_for_executor"`
	Budget           int64 `gorm:"not null" json:"budget"`

	Deadline *time.Time `json:"deadline,omitempty"`
	Contact  string     `gorm:"size:255;not null" json:"contact"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Media StringList `gorm:"type:jsonb" json:"media,omitempty"`

	State TaskState `gorm:"size:20;not null;default:'open';index:idx_tasks_region_state,priority:2" json:"state"`

	// Region is denormalized from the creating customer so the open-task
	// listing stays a single indexed predicate.
	RegionID uint    `gorm:"not null;index:idx_tasks_region_state,priority:1" json:"region_id"`
	Region   *Region `json:"region,omitempty"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `json:"category,omitempty"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   *Account `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`

	// ExecutorID stays nil until a successful claim; set exactly once.
	ExecutorID *uint    `gorm:"index" json:"executor_id,omitempty"`
	Executor   *Account `gorm:"foreignKey:ExecutorID;constraint:OnDelete:SET NULL" json:"executor,omitempty"`
}

// LedgerEntry is an append-only journal row written for every balance
// mutation. Paid-but-unclaimed tasks are reconciled from these rows.
type LedgerEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	AccountID    uint            `gorm:"not null;index" json:"account_id"`
	TaskID       *uint           `gorm:"index" json:"task_id,omitempty"`
	EntryType    LedgerEntryType `gorm:"size:30;not null" json:"entry_type"`
	Amount       int64           `gorm:"not null" json:"amount"`
	BalanceAfter int64           `gorm:"not null" json:"balance_after"`
}

// ==================== PRINCIPAL ====================

// Principal is the resolved identity attached to a request by the auth
// middleware: everything the policy layer needs, nothing more.
type Principal struct {
	AccountID uint `json:"account_id"`
	Role      Role `json:"role"`
	RegionID  uint `json:"region_id"`
	Verified  bool `json:"verified"`
}

func (t *Task) Open() bool {
	return t.State == TaskStateOpen
}

func (t *Task) Claimed() bool {
	return t.State == TaskStateClaimed
}
