package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFirstUnassigned(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAssignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByPartner(ctx context.Context, partnerID kernel.UUID) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) GetAllEligible(ctx context.Context, ratingThreshold float64) ([]*partner.Partner, error) {
	args := m.Called(ctx, ratingThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Partner), args.Error(1)
}

type MockPolicyRepository struct{ mock.Mock }

func (m *MockPolicyRepository) GetOrCreate(ctx context.Context) (*policy.DispatchPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.DispatchPolicy), args.Error(1)
}

func (m *MockPolicyRepository) Save(ctx context.Context, p *policy.DispatchPolicy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

func (m *MockUoW) PolicyRepository() ports.PolicyRepository {
	args := m.Called()
	return args.Get(0).(ports.PolicyRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockPolicyUoWFactory struct{ mock.Mock }

func (m *MockPolicyUoWFactory) Create() commands.PolicyUoW {
	args := m.Called()
	return args.Get(0).(commands.PolicyUoW)
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() func() time.Time {
	return func() time.Time { return fixedNow }
}

func testMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func newPoolOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), testMoney(t, 500), testMoney(t, 50), testMoney(t, 20))
	require.NoError(t, err)
	return o
}

func newAssignedOrder(t *testing.T, partnerID kernel.UUID) *order.Order {
	t.Helper()
	o := newPoolOrder(t)
	require.NoError(t, o.Assign(partnerID, "Ravi Kumar", fixedNow.Add(-time.Minute)))
	return o
}

func newEligiblePartner(t *testing.T, name string, rating float64) *partner.Partner {
	t.Helper()
	p, err := partner.RestorePartner(partner.RestorePartnerParams{
		ID:          kernel.NewUUID(),
		UserID:      kernel.NewUUID(),
		Name:        name,
		IsAvailable: true,
		IsActive:    true,
		Rating:      rating,
	})
	require.NoError(t, err)
	return p
}

func defaultPolicy(t *testing.T) *policy.DispatchPolicy {
	t.Helper()
	p, err := policy.NewDefaultDispatchPolicy(kernel.NewUUID())
	require.NoError(t, err)
	return p
}

func policyParamsOf(t *testing.T, p *policy.DispatchPolicy) policy.Params {
	t.Helper()
	return policy.Params{
		AutoAssignmentEnabled:    p.AutoAssignmentEnabled(),
		AssignmentTimeoutMinutes: p.AssignmentTimeoutMinutes(),
		PartnerRatingThreshold:   p.PartnerRatingThreshold(),
		PaymentType:              p.PaymentType(),
		PaymentValue:             p.PaymentValue(),
		TipEnabled:               p.TipEnabled(),
		MaxTipAmount:             p.MaxTipAmount(),
		DeliveryFee:              p.DeliveryFee(),
		MaxDeliveryRadiusKm:      p.MaxDeliveryRadiusKm(),
	}
}
