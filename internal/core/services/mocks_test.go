package services

import (
	"context"
	"sync"

	"github.com/jumush/backend/internal/domain"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTaskRepo implements ports.TaskRepository. ClaimExclusive holds the
// repo mutex across the whole check-and-set, mirroring the row-lock
// transaction of the real store.
type mockTaskRepo struct {
	mu        sync.Mutex
	seq       uint
	tasks     map[uint]*domain.Task
	createErr error
	markErr   error
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[uint]*domain.Task)}
}

func (m *mockTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task.ID = m.seq
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskRepo) ListOpenByRegion(ctx context.Context, regionID uint) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.tasks {
		if t.State == domain.TaskStateOpen && t.RegionID == regionID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.tasks {
		if t.CustomerID == customerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) MarkPaid(ctx context.Context, id uint) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return false, nil
	}
	if task.State != domain.TaskStateOpen {
		return false, nil
	}
	task.State = domain.TaskStatePaid
	return true, nil
}

func (m *mockTaskRepo) ClaimExclusive(ctx context.Context, id uint, executorID uint) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if task.State == domain.TaskStateOpen {
		return nil, domain.ErrTaskNotPaid
	}
	if task.ExecutorID != nil || task.State == domain.TaskStateClaimed {
		return nil, domain.ErrTaskAlreadyClaimed
	}
	eid := executorID
	task.ExecutorID = &eid
	task.State = domain.TaskStateClaimed
	copied := *task
	return &copied, nil
}

// seed inserts a task directly, bypassing Create's id assignment rules.
func (m *mockTaskRepo) seed(task *domain.Task) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task.ID = m.seq
	m.tasks[task.ID] = task
	return task
}

// mockAccountRepo implements ports.AccountRepository. DebitBalance holds
// the mutex for the whole compare-and-decrement, matching the atomicity
// of the single-statement SQL primitive.
type mockAccountRepo struct {
	mu       sync.Mutex
	seq      uint
	accounts map[uint]*domain.Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[uint]*domain.Account)}
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return domain.ErrEmailTaken
		}
	}
	m.seq++
	account.ID = m.seq
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id uint) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAccountRepo) GetByToken(ctx context.Context, token string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Token == token {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// Update keeps the stored balance, mirroring the real repository's column
// policy: balance belongs to DebitBalance/CreditBalance alone.
func (m *mockAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	copied := *account
	copied.Balance = stored.Balance
	m.accounts[account.ID] = &copied
	return nil
}

func (m *mockAccountRepo) DebitBalance(ctx context.Context, id uint, amount int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if account.Balance < amount {
		return 0, &domain.InsufficientFundsError{Required: amount, Available: account.Balance}
	}
	account.Balance -= amount
	return account.Balance, nil
}

func (m *mockAccountRepo) CreditBalance(ctx context.Context, id uint, amount int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	account.Balance += amount
	return account.Balance, nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *mockAccountRepo) seed(account *domain.Account) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	account.ID = m.seq
	m.accounts[account.ID] = account
	return account
}

func (m *mockAccountRepo) balance(id uint) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[id].Balance
}

// mockLedgerRepo records journal entries.
type mockLedgerRepo struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{}
}

func (m *mockLedgerRepo) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockLedgerRepo) ListByAccount(ctx context.Context, accountID uint) ([]domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockLedgerRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// mockRegionRepo serves a fixed two-region catalog:
// region 1 owns subregions 1 and 2, region 2 owns subregion 3.
type mockRegionRepo struct{}

func (m *mockRegionRepo) ListRegions(ctx context.Context) ([]domain.Region, error) {
	return []domain.Region{{ID: 1, Title: "Bishkek"}, {ID: 2, Title: "Osh"}}, nil
}

func (m *mockRegionRepo) GetRegion(ctx context.Context, id uint) (*domain.Region, error) {
	switch id {
	case 1:
		return &domain.Region{ID: 1, Title: "Bishkek"}, nil
	case 2:
		return &domain.Region{ID: 2, Title: "Osh"}, nil
	}
	return nil, domain.ErrRegionNotFound
}

func (m *mockRegionRepo) SubregionsOf(ctx context.Context, regionID uint) ([]domain.Subregion, error) {
	switch regionID {
	case 1:
		return []domain.Subregion{
			{ID: 1, Title: "Lenin district", RegionID: 1},
			{ID: 2, Title: "Oktyabr district", RegionID: 1},
		}, nil
	case 2:
		return []domain.Subregion{{ID: 3, Title: "Kara-Suu", RegionID: 2}}, nil
	}
	return nil, nil
}

func (m *mockRegionRepo) GetSubregion(ctx context.Context, id uint) (*domain.Subregion, error) {
	switch id {
	case 1:
		return &domain.Subregion{ID: 1, Title: "Lenin district", RegionID: 1}, nil
	case 2:
		return &domain.Subregion{ID: 2, Title: "Oktyabr district", RegionID: 1}, nil
	case 3:
		return &domain.Subregion{ID: 3, Title: "Kara-Suu", RegionID: 2}, nil
	}
	return nil, domain.ErrSubregionNotFound
}

func (m *mockRegionRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Title: "Repair"}, {ID: 2, Title: "Delivery"}}, nil
}

func (m *mockRegionRepo) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	if id == 1 || id == 2 {
		return &domain.Category{ID: id}, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// ============================================================================
// Shared helpers
// ============================================================================

func executorPrincipal(id uint, regionID uint) domain.Principal {
	return domain.Principal{AccountID: id, Role: domain.RoleExecutor, RegionID: regionID, Verified: true}
}

func customerPrincipal(id uint, regionID uint) domain.Principal {
	return domain.Principal{AccountID: id, Role: domain.RoleCustomer, RegionID: regionID}
}
