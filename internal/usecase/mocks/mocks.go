package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// MockFundRepository is a mock implementation of FundRepository.
type MockFundRepository struct {
	mu    sync.RWMutex
	funds map[string]*domain.Fund

	CreateFunc            func(ctx context.Context, fund *domain.Fund) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Fund, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Fund, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SoftDeleteFunc        func(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Fund, error)
	TotalBalanceFunc      func(ctx context.Context) (decimal.Decimal, error)
}

func NewMockFundRepository() *MockFundRepository {
	return &MockFundRepository{funds: make(map[string]*domain.Fund)}
}

// Put seeds the mock with a fund.
func (m *MockFundRepository) Put(fund *domain.Fund) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funds[fund.ID] = fund
}

func (m *MockFundRepository) Create(ctx context.Context, fund *domain.Fund) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, fund)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funds[fund.ID] = fund
	return nil
}

func (m *MockFundRepository) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.funds[id]; ok {
		return f, nil
	}
	return nil, domain.ErrFundNotFound
}

func (m *MockFundRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockFundRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Fund, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var funds []*domain.Fund
	for _, id := range ids {
		if f, ok := m.funds[id]; ok {
			funds = append(funds, f)
		}
	}
	return funds, nil
}

func (m *MockFundRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.funds[id]; ok {
		f.Balance = balance
		f.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrFundNotFound
}

func (m *MockFundRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, id, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.funds[id]; ok {
		f.Deleted = true
		f.UpdatedAt = deletedAt
		return nil
	}
	return domain.ErrFundNotFound
}

func (m *MockFundRepository) List(ctx context.Context, limit, offset int) ([]*domain.Fund, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var funds []*domain.Fund
	for _, f := range m.funds {
		if !f.Deleted {
			funds = append(funds, f)
		}
	}
	return funds, nil
}

func (m *MockFundRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	if m.TotalBalanceFunc != nil {
		return m.TotalBalanceFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, f := range m.funds {
		if !f.Deleted {
			total = total.Add(f.Balance)
		}
	}
	return total, nil
}

// MockPolicyRepository is a mock implementation of PolicyRepository
// backed by an in-memory policy set.
type MockPolicyRepository struct {
	mu       sync.RWMutex
	policies map[string]*domain.DepositPolicy

	CreateFunc                     func(ctx context.Context, tx usecase.Transaction, policy *domain.DepositPolicy) error
	GetByIDFunc                    func(ctx context.Context, id string) (*domain.DepositPolicy, error)
	GetByIDForUpdateFunc           func(ctx context.Context, tx usecase.Transaction, id string) (*domain.DepositPolicy, error)
	GetOpenEndedForUpdateFunc      func(ctx context.Context, tx usecase.Transaction) (*domain.DepositPolicy, error)
	GetByTerminatedAtForUpdateFunc func(ctx context.Context, tx usecase.Transaction, m domain.Month) (*domain.DepositPolicy, error)
	SetTerminatedAtFunc            func(ctx context.Context, tx usecase.Transaction, id string, terminatedAt *domain.Month) error
	DeleteFunc                     func(ctx context.Context, tx usecase.Transaction, id string) error
	ResolveEffectiveFunc           func(ctx context.Context, m domain.Month) (*domain.DepositPolicy, error)
	ListFunc                       func(ctx context.Context, limit, offset int) ([]*domain.DepositPolicy, error)
}

func NewMockPolicyRepository() *MockPolicyRepository {
	return &MockPolicyRepository{policies: make(map[string]*domain.DepositPolicy)}
}

// Put seeds the mock with a policy.
func (m *MockPolicyRepository) Put(p *domain.DepositPolicy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[p.ID] = p
}

// All returns all stored policies.
func (m *MockPolicyRepository) All() []*domain.DepositPolicy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.DepositPolicy
	for _, p := range m.policies {
		out = append(out, p)
	}
	return out
}

func (m *MockPolicyRepository) Create(ctx context.Context, tx usecase.Transaction, policy *domain.DepositPolicy) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, policy)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[policy.ID] = policy
	return nil
}

func (m *MockPolicyRepository) GetByID(ctx context.Context, id string) (*domain.DepositPolicy, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.policies[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPolicyNotFound
}

func (m *MockPolicyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.DepositPolicy, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPolicyRepository) GetOpenEndedForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.DepositPolicy, error) {
	if m.GetOpenEndedForUpdateFunc != nil {
		return m.GetOpenEndedForUpdateFunc(ctx, tx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.policies {
		if p.TerminatedAt == nil {
			return p, nil
		}
	}
	return nil, domain.ErrPolicyNotFound
}

func (m *MockPolicyRepository) GetByTerminatedAtForUpdate(ctx context.Context, tx usecase.Transaction, month domain.Month) (*domain.DepositPolicy, error) {
	if m.GetByTerminatedAtForUpdateFunc != nil {
		return m.GetByTerminatedAtForUpdateFunc(ctx, tx, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *domain.DepositPolicy
	for _, p := range m.policies {
		if p.TerminatedAt == nil || !p.TerminatedAt.Equal(month) {
			continue
		}
		if best == nil || p.EffectiveMonth.After(best.EffectiveMonth) {
			best = p
		}
	}
	if best == nil {
		return nil, domain.ErrPolicyNotFound
	}
	return best, nil
}

func (m *MockPolicyRepository) SetTerminatedAt(ctx context.Context, tx usecase.Transaction, id string, terminatedAt *domain.Month) error {
	if m.SetTerminatedAtFunc != nil {
		return m.SetTerminatedAtFunc(ctx, tx, id, terminatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.policies[id]; ok {
		p.TerminatedAt = terminatedAt
		return nil
	}
	return domain.ErrPolicyNotFound
}

func (m *MockPolicyRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.policies[id]; !ok {
		return domain.ErrPolicyNotFound
	}
	delete(m.policies, id)
	return nil
}

func (m *MockPolicyRepository) ResolveEffective(ctx context.Context, month domain.Month) (*domain.DepositPolicy, error) {
	if m.ResolveEffectiveFunc != nil {
		return m.ResolveEffectiveFunc(ctx, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *domain.DepositPolicy
	for _, p := range m.policies {
		if !p.Covers(month) {
			continue
		}
		if best == nil || p.EffectiveMonth.After(best.EffectiveMonth) {
			best = p
		}
	}
	if best == nil {
		return nil, domain.ErrNoEffectivePolicy
	}
	return best, nil
}

func (m *MockPolicyRepository) List(ctx context.Context, limit, offset int) ([]*domain.DepositPolicy, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return m.All(), nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.FundTransaction

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, txn *domain.FundTransaction) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.FundTransaction, error)
	ListByFundFunc func(ctx context.Context, fundID string, limit, offset int) ([]*domain.FundTransaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{txns: make(map[string]*domain.FundTransaction)}
}

// All returns all stored transactions.
func (m *MockTransactionRepository) All() []*domain.FundTransaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.FundTransaction
	for _, t := range m.txns {
		out = append(out, t)
	}
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.FundTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.FundTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txns[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByFund(ctx context.Context, fundID string, limit, offset int) ([]*domain.FundTransaction, error) {
	if m.ListByFundFunc != nil {
		return m.ListByFundFunc(ctx, fundID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.FundTransaction
	for _, t := range m.txns {
		if t.FromFundID == fundID || t.ToFundID == fundID {
			out = append(out, t)
		}
	}
	return out, nil
}

// MockDepositRepository is a mock implementation of DepositRepository.
type MockDepositRepository struct {
	mu       sync.RWMutex
	deposits map[string]*domain.Deposit

	CreateFunc                  func(ctx context.Context, deposit *domain.Deposit) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.Deposit, error)
	GetByIDForUpdateFunc        func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Deposit, error)
	MarkVerifiedFunc            func(ctx context.Context, tx usecase.Transaction, id, fundID, verifiedBy string, verifiedAt time.Time) error
	MarkRejectedFunc            func(ctx context.Context, tx usecase.Transaction, id, reason string) error
	CountActiveInMonthFunc      func(ctx context.Context, tx usecase.Transaction, m domain.Month) (int, error)
	ExistsActiveForMemberFunc   func(ctx context.Context, memberID string, m domain.Month) (bool, error)
	ListMemberIDsWithActiveFunc func(ctx context.Context, m domain.Month) ([]string, error)
	ListByMemberFunc            func(ctx context.Context, memberID string, limit, offset int) ([]*domain.Deposit, error)
	ListByStatusFunc            func(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.Deposit, error)
	TotalVerifiedFunc           func(ctx context.Context) (decimal.Decimal, error)
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{deposits: make(map[string]*domain.Deposit)}
}

// Put seeds the mock with a deposit.
func (m *MockDepositRepository) Put(d *domain.Deposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[d.ID] = d
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[deposit.ID] = deposit
	return nil
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.Deposit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deposits[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Deposit, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDepositRepository) MarkVerified(ctx context.Context, tx usecase.Transaction, id, fundID, verifiedBy string, verifiedAt time.Time) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, tx, id, fundID, verifiedBy, verifiedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.Status = domain.DepositVerified
	d.FundID = &fundID
	d.VerifiedBy = &verifiedBy
	d.VerifiedAt = &verifiedAt
	return nil
}

func (m *MockDepositRepository) MarkRejected(ctx context.Context, tx usecase.Transaction, id, reason string) error {
	if m.MarkRejectedFunc != nil {
		return m.MarkRejectedFunc(ctx, tx, id, reason)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.Status = domain.DepositRejected
	d.RejectReason = reason
	return nil
}

func (m *MockDepositRepository) CountActiveInMonth(ctx context.Context, tx usecase.Transaction, month domain.Month) (int, error) {
	if m.CountActiveInMonthFunc != nil {
		return m.CountActiveInMonthFunc(ctx, tx, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, d := range m.deposits {
		if d.Month.Equal(month) && d.Status != domain.DepositRejected {
			count++
		}
	}
	return count, nil
}

func (m *MockDepositRepository) ExistsActiveForMember(ctx context.Context, memberID string, month domain.Month) (bool, error) {
	if m.ExistsActiveForMemberFunc != nil {
		return m.ExistsActiveForMemberFunc(ctx, memberID, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.deposits {
		if d.MemberID == memberID && d.Month.Equal(month) && d.Status != domain.DepositRejected {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockDepositRepository) ListMemberIDsWithActive(ctx context.Context, month domain.Month) ([]string, error) {
	if m.ListMemberIDsWithActiveFunc != nil {
		return m.ListMemberIDsWithActiveFunc(ctx, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var ids []string
	for _, d := range m.deposits {
		if d.Month.Equal(month) && d.Status != domain.DepositRejected && !seen[d.MemberID] {
			seen[d.MemberID] = true
			ids = append(ids, d.MemberID)
		}
	}
	return ids, nil
}

func (m *MockDepositRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Deposit, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Deposit
	for _, d := range m.deposits {
		if d.MemberID == memberID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDepositRepository) ListByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.Deposit, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Deposit
	for _, d := range m.deposits {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDepositRepository) TotalVerified(ctx context.Context) (decimal.Decimal, error) {
	if m.TotalVerifiedFunc != nil {
		return m.TotalVerifiedFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, d := range m.deposits {
		if d.Status == domain.DepositVerified {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

// MockNotificationRepository is a mock implementation of
// NotificationRepository.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification

	CreateFunc       func(ctx context.Context, n *domain.Notification) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Notification, error)
	ListByMemberFunc func(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	MarkReadFunc     func(ctx context.Context, id, memberID string) error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{notifications: make(map[string]*domain.Notification)}
}

// All returns all stored notifications.
func (m *MockNotificationRepository) All() []*domain.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Notification
	for _, n := range m.notifications {
		out = append(out, n)
	}
	return out
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = n
	return nil
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, domain.ErrNotificationNotFound
}

func (m *MockNotificationRepository) ListByMember(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, unreadOnly, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Notification
	for _, n := range m.notifications {
		if n.MemberID != memberID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, memberID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, memberID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.MemberID != memberID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

// MockActivityRepository is a mock implementation of
// ActivityRepository.
type MockActivityRepository struct {
	mu      sync.RWMutex
	entries []*domain.ActivityLog

	CreateFunc   func(ctx context.Context, entry *domain.ActivityLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.ActivityLog) error
	ListFunc     func(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

// Entries returns the recorded activity entries.
func (m *MockActivityRepository) Entries() []*domain.ActivityLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.ActivityLog(nil), m.entries...)
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockActivityRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.ActivityLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, entry)
	}
	return m.Create(ctx, entry)
}

func (m *MockActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return m.Entries(), nil
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mu      sync.RWMutex
	members map[string]*domain.Member

	CreateFunc     func(ctx context.Context, member *domain.Member) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Member, error)
	ListActiveFunc func(ctx context.Context) ([]*domain.Member, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.Member, error)
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{members: make(map[string]*domain.Member)}
}

// Put seeds the mock with a member.
func (m *MockMemberRepository) Put(member *domain.Member) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.ID] = member
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[member.ID]; ok {
		return domain.ErrMemberExists
	}
	m.members[member.ID] = member
	return nil
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberRepository) ListActive(ctx context.Context) ([]*domain.Member, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Member
	for _, member := range m.members {
		if member.Active {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *MockMemberRepository) List(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Member
	for _, member := range m.members {
		out = append(out, member)
	}
	return out, nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock transaction manager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Begun []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockRetrier is a mock retrier. The default runs the operation once.
type MockRetrier struct {
	DoFunc func(ctx context.Context, op func(context.Context) error) error
}

func (m *MockRetrier) Do(ctx context.Context, op func(context.Context) error) error {
	if m.DoFunc != nil {
		return m.DoFunc(ctx, op)
	}
	return op(ctx)
}

// MockIDGenerator is a mock ID generator producing sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// MockClock is a mock clock pinned to a fixed time.
type MockClock struct {
	NowFunc func() time.Time

	Time time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Time: t}
}

func (m *MockClock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return m.Time
}
