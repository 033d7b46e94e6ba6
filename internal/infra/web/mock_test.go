//go:build !integration

package web

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/adapter"
	"internship-marketplace/internal/domain/ports/repository"
)

// --- Mock Repositories (Ports) ---

type mockPlanRepo struct {
	repository.PlanRepository // Embed interface for forward compatibility
	mu                        sync.Mutex
	plans                     map[string]*model.Plan
	ListAllError              error
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: map[string]*model.Plan{}}
}

func (m *mockPlanRepo) Save(ctx context.Context, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.plans[p.ID] = &cp
	return nil
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plans[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPlanNotFound
}

func (m *mockPlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	if m.ListAllError != nil {
		return nil, m.ListAllError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Plan, 0, len(m.plans))
	for _, p := range m.plans {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockPlanRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[id]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(m.plans, id)
	return nil
}

type mockUserRepo struct {
	repository.UserRepository
	mu    sync.Mutex
	users map[string]*model.User
	// grants counts SetSubscriptionPlan calls
	grants int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*model.User{}}
}

func (m *mockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) SetSubscriptionPlan(ctx context.Context, tx repository.Tx, userID, planID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	m.grants++
	u.SubscriptionPlan = &planID
	return nil
}

func (m *mockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	mu      sync.Mutex
	data    map[string]*model.Payment
	byTxRef map[string]string
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{data: map[string]*model.Payment{}, byTxRef: map[string]string{}}
}

func (m *mockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.data[p.ID] = &cp
	m.byTxRef[p.TxRef] = p.ID
	return nil
}

func (m *mockPaymentRepo) FindByTxRef(ctx context.Context, tx repository.Tx, txRef string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byTxRef[txRef]; ok {
		cp := *m.data[id]
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *mockPaymentRepo) UpdateStatusIfPending(ctx context.Context, tx repository.Tx, id string, status model.PaymentStatus, paidAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[id]
	if !ok {
		return false, domain.ErrPaymentNotFound
	}
	if p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = status
	if paidAt != nil {
		t := *paidAt
		p.PaidAt = &t
	}
	return true, nil
}

func (m *mockPaymentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Payment, error) {
	return nil, nil
}

func (m *mockPaymentRepo) SumCompletedSince(ctx context.Context, tx repository.Tx, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, p := range m.data {
		if p.Status == model.PaymentStatusCompleted && p.PaidAt != nil && !p.PaidAt.Before(since) {
			sum += p.Amount
		}
	}
	return sum, nil
}

type mockInternshipRepo struct {
	repository.InternshipRepository
	mu   sync.Mutex
	data map[string]*model.Internship
}

func newMockInternshipRepo() *mockInternshipRepo {
	return &mockInternshipRepo{data: map[string]*model.Internship{}}
}

func (m *mockInternshipRepo) Save(ctx context.Context, tx repository.Tx, in *model.Internship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *in
	m.data[in.ID] = &cp
	return nil
}

func (m *mockInternshipRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in, ok := m.data[id]; ok {
		cp := *in
		return &cp, nil
	}
	return nil, domain.ErrInternshipNotFound
}

func (m *mockInternshipRepo) List(ctx context.Context, tx repository.Tx, filter model.InternshipFilter) ([]*model.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match := func(want, got string) bool { return want == "" || want == got }
	var out []*model.Internship
	for _, in := range m.data {
		if match(filter.Location, in.Location) && match(filter.Industry, in.Industry) &&
			match(filter.Type, in.Type) && match(filter.Payment, in.Payment) &&
			match(filter.CompanyID, in.CompanyID) {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

type mockApplicationRepo struct {
	repository.ApplicationRepository
	mu   sync.Mutex
	data []*model.Application
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{}
}

func (m *mockApplicationRepo) Save(ctx context.Context, tx repository.Tx, a *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.data = append(m.data, &cp)
	return nil
}

func (m *mockApplicationRepo) ListByStudent(ctx context.Context, tx repository.Tx, studentID string) ([]*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Application
	for _, a := range m.data {
		if a.StudentID == studentID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type mockCompanyApplicationRepo struct {
	repository.CompanyApplicationRepository
	mu   sync.Mutex
	data map[string]*model.CompanyApplication
}

func newMockCompanyApplicationRepo() *mockCompanyApplicationRepo {
	return &mockCompanyApplicationRepo{data: map[string]*model.CompanyApplication{}}
}

func (m *mockCompanyApplicationRepo) Save(ctx context.Context, tx repository.Tx, ca *model.CompanyApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ca
	m.data[ca.ID] = &cp
	return nil
}

func (m *mockCompanyApplicationRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.CompanyApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ca, ok := m.data[id]; ok {
		cp := *ca
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCompanyApplicationRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.CompanyApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.CompanyApplication
	for _, ca := range m.data {
		if ca.Status == model.CompanyApplicationPending {
			cp := *ca
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockCompanyApplicationRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.CompanyApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ca, ok := m.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	ca.Status = status
	return nil
}

// --- Mock Adapters / Infra ---

type mockGateway struct {
	InitializeTransactionFunc func(ctx context.Context, req adapter.TransactionRequest) (string, error)
}

func (m *mockGateway) Name() string { return "mockpay" }

func (m *mockGateway) InitializeTransaction(ctx context.Context, req adapter.TransactionRequest) (string, error) {
	if m.InitializeTransactionFunc != nil {
		return m.InitializeTransactionFunc(ctx, req)
	}
	return "https://checkout.example/" + req.TxRef, nil
}

type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func newTestToken(t interface{ Fatalf(string, ...interface{}) }, auth *AuthManager, userID string, role model.UserRole) string {
	tok, err := auth.Mint(Identity{UserID: userID, Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}
