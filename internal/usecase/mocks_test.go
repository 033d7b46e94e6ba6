//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/adapter"
	"internship-marketplace/internal/domain/ports/repository"
)

// =============================
// Adapters
// =============================

// ---- Mock PaymentGateway ----

type MockPaymentGateway struct {
	mu      sync.Mutex
	NameVal string
	// Requests captures every initialize call in order.
	Requests []adapter.TransactionRequest

	InitializeTransactionFunc func(ctx context.Context, req adapter.TransactionRequest) (string, error)
}

var _ adapter.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) Name() string {
	if m.NameVal == "" {
		return "mockpay"
	}
	return m.NameVal
}

func (m *MockPaymentGateway) InitializeTransaction(ctx context.Context, req adapter.TransactionRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.InitializeTransactionFunc != nil {
		return m.InitializeTransactionFunc(ctx, req)
	}
	return "https://checkout.example/" + req.TxRef, nil
}

// =============================
// Repositories
// =============================

// ---- Mock PaymentRepository ----

type MockPaymentRepo struct {
	mu      sync.Mutex
	data    map[string]*model.Payment // by id
	byTxRef map[string]string         // tx_ref -> id

	SaveFunc                  func(ctx context.Context, tx repository.Tx, p *model.Payment) error
	FindByIDFunc              func(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error)
	FindByTxRefFunc           func(ctx context.Context, tx repository.Tx, txRef string) (*model.Payment, error)
	UpdateStatusIfPendingFunc func(ctx context.Context, tx repository.Tx, id string, status model.PaymentStatus, paidAt *time.Time) (bool, error)
	ListPendingOlderThanFunc  func(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Payment, error)
	SumCompletedSinceFunc     func(ctx context.Context, tx repository.Tx, since time.Time) (int64, error)
}

var _ repository.PaymentRepository = (*MockPaymentRepo)(nil)

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{data: map[string]*model.Payment{}, byTxRef: map[string]string{}}
}

func (r *MockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.data[p.ID] = &cp
	if p.TxRef != "" {
		r.byTxRef[p.TxRef] = p.ID
	}
	return nil
}

func (r *MockPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.data[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *MockPaymentRepo) FindByTxRef(ctx context.Context, tx repository.Tx, txRef string) (*model.Payment, error) {
	if r.FindByTxRefFunc != nil {
		return r.FindByTxRefFunc(ctx, tx, txRef)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byTxRef[txRef]; ok {
		cp := *r.data[id]
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

// UpdateStatusIfPending is a locked compare-and-set so concurrent callers
// behave like the SQL conditional UPDATE: exactly one of them transitions.
func (r *MockPaymentRepo) UpdateStatusIfPending(ctx context.Context, tx repository.Tx, id string, status model.PaymentStatus, paidAt *time.Time) (bool, error) {
	if r.UpdateStatusIfPendingFunc != nil {
		return r.UpdateStatusIfPendingFunc(ctx, tx, id, status, paidAt)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return false, domain.ErrPaymentNotFound
	}
	if p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	if paidAt != nil {
		t := *paidAt
		p.PaidAt = &t
	}
	return true, nil
}

func (r *MockPaymentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Payment, error) {
	if r.ListPendingOlderThanFunc != nil {
		return r.ListPendingOlderThanFunc(ctx, tx, olderThan, limit)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Payment
	for _, p := range r.data {
		if p.Status == model.PaymentStatusPending && p.CreatedAt.Before(olderThan) {
			cp := *p
			out = append(out, &cp)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (r *MockPaymentRepo) SumCompletedSince(ctx context.Context, tx repository.Tx, since time.Time) (int64, error) {
	if r.SumCompletedSinceFunc != nil {
		return r.SumCompletedSinceFunc(ctx, tx, since)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, p := range r.data {
		if p.Status == model.PaymentStatusCompleted && p.PaidAt != nil && !p.PaidAt.Before(since) {
			sum += p.Amount
		}
	}
	return sum, nil
}

// Get returns the stored payment by id for assertions.
func (r *MockPaymentRepo) Get(id string) *model.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.data[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

// Count reports how many payment rows exist.
func (r *MockPaymentRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// ---- Mock PlanRepository ----

type MockPlanRepo struct {
	mu   sync.Mutex
	data map[string]*model.Plan

	SaveFunc     func(ctx context.Context, p *model.Plan) error
	FindByIDFunc func(ctx context.Context, id string) (*model.Plan, error)
	ListAllFunc  func(ctx context.Context) ([]*model.Plan, error)
	DeleteFunc   func(ctx context.Context, id string) error
}

var _ repository.PlanRepository = (*MockPlanRepo)(nil)

func NewMockPlanRepo() *MockPlanRepo {
	return &MockPlanRepo{data: map[string]*model.Plan{}}
}

func (r *MockPlanRepo) Save(ctx context.Context, p *model.Plan) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.data[p.ID] = &cp
	return nil
}

func (r *MockPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.data[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPlanNotFound
}

func (r *MockPlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	if r.ListAllFunc != nil {
		return r.ListAllFunc(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Plan, 0, len(r.data))
	for _, p := range r.data {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *MockPlanRepo) Delete(ctx context.Context, id string) error {
	if r.DeleteFunc != nil {
		return r.DeleteFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(r.data, id)
	return nil
}

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu   sync.Mutex
	data map[string]*model.User
	// GrantCalls counts SetSubscriptionPlan invocations.
	GrantCalls int

	SaveFunc                func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindByIDFunc            func(ctx context.Context, tx repository.Tx, id string) (*model.User, error)
	SetSubscriptionPlanFunc func(ctx context.Context, tx repository.Tx, userID, planID string) error
	CountUsersFunc          func(ctx context.Context, tx repository.Tx) (int, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{data: map[string]*model.User{}}
}

func (r *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	r.data[u.ID] = &cp
	return nil
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.data[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *MockUserRepo) SetSubscriptionPlan(ctx context.Context, tx repository.Tx, userID, planID string) error {
	if r.SetSubscriptionPlanFunc != nil {
		return r.SetSubscriptionPlanFunc(ctx, tx, userID, planID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.GrantCalls++
	u.SubscriptionPlan = &planID
	return nil
}

func (r *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	if r.CountUsersFunc != nil {
		return r.CountUsersFunc(ctx, tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data), nil
}

// Get returns the stored user by id for assertions.
func (r *MockUserRepo) Get(id string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.data[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

// ---- Mock InternshipRepository ----

type MockInternshipRepo struct {
	mu   sync.Mutex
	data map[string]*model.Internship

	SaveFunc     func(ctx context.Context, tx repository.Tx, in *model.Internship) error
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Internship, error)
	ListFunc     func(ctx context.Context, tx repository.Tx, filter model.InternshipFilter) ([]*model.Internship, error)
}

var _ repository.InternshipRepository = (*MockInternshipRepo)(nil)

func NewMockInternshipRepo() *MockInternshipRepo {
	return &MockInternshipRepo{data: map[string]*model.Internship{}}
}

func (r *MockInternshipRepo) Save(ctx context.Context, tx repository.Tx, in *model.Internship) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, in)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	cp := *in
	r.data[in.ID] = &cp
	return nil
}

func (r *MockInternshipRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Internship, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.data[id]; ok {
		cp := *in
		return &cp, nil
	}
	return nil, domain.ErrInternshipNotFound
}

func (r *MockInternshipRepo) List(ctx context.Context, tx repository.Tx, filter model.InternshipFilter) ([]*model.Internship, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx, tx, filter)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	match := func(want, got string) bool { return want == "" || want == got }
	var out []*model.Internship
	for _, in := range r.data {
		if match(filter.Location, in.Location) &&
			match(filter.Industry, in.Industry) &&
			match(filter.Type, in.Type) &&
			match(filter.Payment, in.Payment) &&
			match(filter.CompanyID, in.CompanyID) {
			cp := *in
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ---- Mock ApplicationRepository ----

type MockApplicationRepo struct {
	mu   sync.Mutex
	data map[string]*model.Application

	SaveFunc             func(ctx context.Context, tx repository.Tx, a *model.Application) error
	ListByStudentFunc    func(ctx context.Context, tx repository.Tx, studentID string) ([]*model.Application, error)
	ListByInternshipFunc func(ctx context.Context, tx repository.Tx, internshipID string) ([]*model.Application, error)
}

var _ repository.ApplicationRepository = (*MockApplicationRepo)(nil)

func NewMockApplicationRepo() *MockApplicationRepo {
	return &MockApplicationRepo{data: map[string]*model.Application{}}
}

func (r *MockApplicationRepo) Save(ctx context.Context, tx repository.Tx, a *model.Application) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, a)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	cp := *a
	r.data[a.ID] = &cp
	return nil
}

func (r *MockApplicationRepo) ListByStudent(ctx context.Context, tx repository.Tx, studentID string) ([]*model.Application, error) {
	if r.ListByStudentFunc != nil {
		return r.ListByStudentFunc(ctx, tx, studentID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Application
	for _, a := range r.data {
		if a.StudentID == studentID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockApplicationRepo) ListByInternship(ctx context.Context, tx repository.Tx, internshipID string) ([]*model.Application, error) {
	if r.ListByInternshipFunc != nil {
		return r.ListByInternshipFunc(ctx, tx, internshipID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Application
	for _, a := range r.data {
		if a.InternshipID == internshipID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock CompanyApplicationRepository ----

type MockCompanyApplicationRepo struct {
	mu   sync.Mutex
	data map[string]*model.CompanyApplication

	SaveFunc         func(ctx context.Context, tx repository.Tx, ca *model.CompanyApplication) error
	FindByIDFunc     func(ctx context.Context, tx repository.Tx, id string) (*model.CompanyApplication, error)
	ListPendingFunc  func(ctx context.Context, tx repository.Tx) ([]*model.CompanyApplication, error)
	UpdateStatusFunc func(ctx context.Context, tx repository.Tx, id string, status model.CompanyApplicationStatus) error
}

var _ repository.CompanyApplicationRepository = (*MockCompanyApplicationRepo)(nil)

func NewMockCompanyApplicationRepo() *MockCompanyApplicationRepo {
	return &MockCompanyApplicationRepo{data: map[string]*model.CompanyApplication{}}
}

func (r *MockCompanyApplicationRepo) Save(ctx context.Context, tx repository.Tx, ca *model.CompanyApplication) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, ca)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ca.ID == "" {
		ca.ID = uuid.NewString()
	}
	cp := *ca
	r.data[ca.ID] = &cp
	return nil
}

func (r *MockCompanyApplicationRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.CompanyApplication, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ca, ok := r.data[id]; ok {
		cp := *ca
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockCompanyApplicationRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.CompanyApplication, error) {
	if r.ListPendingFunc != nil {
		return r.ListPendingFunc(ctx, tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.CompanyApplication
	for _, ca := range r.data {
		if ca.Status == model.CompanyApplicationPending {
			cp := *ca
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockCompanyApplicationRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.CompanyApplicationStatus) error {
	if r.UpdateStatusFunc != nil {
		return r.UpdateStatusFunc(ctx, tx, id, status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ca, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	ca.Status = status
	return nil
}

// =============================
// Infra helpers for tests
// =============================

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs the function immediately with NoTX unless a test overrides it.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// ---- In-memory Locker ----

type MockLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func NewMockLocker() *MockLocker {
	return &MockLocker{held: map[string]string{}}
}

func (l *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tok, ok := l.held[key]; ok && tok != "" {
		return "", errors.New("locked")
	}
	tok := uuid.NewString()
	l.held[key] = tok
	return tok, nil
}

func (l *MockLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
		return nil
	}
	return errors.New("unlock token mismatch")
}

// newTestLogger returns a silent zerolog.Logger so test output stays clean.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
