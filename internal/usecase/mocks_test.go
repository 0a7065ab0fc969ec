package usecase_test

import (
	"context"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/cashfree"
	"chefdhundo-backend/pkg/email"

	"github.com/stretchr/testify/mock"
)

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, id string, patch domain.CandidatePatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockCandidateRepo) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockGateway struct {
	mock.Mock
	env        cashfree.Environment
	configured bool
}

func (m *MockGateway) CreateOrder(ctx context.Context, order *cashfree.OrderRequest) (*cashfree.OrderResponse, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashfree.OrderResponse), args.Error(1)
}

func (m *MockGateway) Environment() cashfree.Environment { return m.env }
func (m *MockGateway) Configured() bool                  { return m.configured }

type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) Save(ctx context.Context, receipt *domain.PaymentReceipt) error {
	return m.Called(ctx, receipt).Error(0)
}

type MockSender struct {
	mock.Mock
	configured bool
}

func (m *MockSender) SendContactEmail(data email.ContactEmailData) error {
	return m.Called(data).Error(0)
}

func (m *MockSender) IsConfigured() bool { return m.configured }
