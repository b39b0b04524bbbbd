package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newPoolOrder(t)
	busy := newEligiblePartner(t, "Busy", 5.0)
	idle := newEligiblePartner(t, "Idle", 4.0)
	partners := []*partner.Partner{busy, idle}

	cmd, err := commands.NewAssignPartnerCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		policyRepo.On("GetOrCreate", ctx).Return(defaultPolicy(t), nil).Once(),
		partnerRepo.On("GetAllEligible", ctx, 3.5).Return(partners, nil).Once(),
		orderRepo.On("CountActiveByPartner", ctx, busy.ID()).Return(3, nil).Once(),
		orderRepo.On("CountActiveByPartner", ctx, idle.ID()).Return(0, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, testOrder.DeliveryStatus())
	require.NotNil(t, testOrder.Partner())
	assert.True(t, testOrder.Partner().IsEqual(idle.ID()))
	require.NotNil(t, testOrder.AssignedAt())
	assert.Equal(t, fixedNow, *testOrder.AssignedAt())

	orderRepo.AssertExpectations(t)
	partnerRepo.AssertExpectations(t)
	policyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignPartnerCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignPartnerCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignPartnerCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignPartnerCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAssignPartnerCommand(orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PartnerRepository").Return(new(MockPartnerRepository)).Once(),
		uow.On("PolicyRepository").Return(new(MockPolicyRepository)).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
}

func TestAssignPartnerCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	testOrder := newAssignedOrder(t, kernel.NewUUID())
	cmd, err := commands.NewAssignPartnerCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PartnerRepository").Return(new(MockPartnerRepository)).Once(),
		uow.On("PolicyRepository").Return(new(MockPolicyRepository)).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyAssigned)
}

func TestAssignPartnerCommandHandler_Handle_AssignmentDisabled(t *testing.T) {
	ctx := t.Context()
	testOrder := newPoolOrder(t)
	cmd, err := commands.NewAssignPartnerCommand(testOrder.ID())
	require.NoError(t, err)

	disabledPolicy := defaultPolicy(t)
	params := policyParamsOf(t, disabledPolicy)
	params.AutoAssignmentEnabled = false
	require.NoError(t, disabledPolicy.Amend(params))

	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PartnerRepository").Return(new(MockPartnerRepository)).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		policyRepo.On("GetOrCreate", ctx).Return(disabledPolicy, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAssignmentDisabled)
	assert.Equal(t, order.None, testOrder.DeliveryStatus())
}

func TestAssignPartnerCommandHandler_Handle_NoEligiblePartners(t *testing.T) {
	ctx := t.Context()
	testOrder := newPoolOrder(t)
	cmd, err := commands.NewAssignPartnerCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		policyRepo.On("GetOrCreate", ctx).Return(defaultPolicy(t), nil).Once(),
		partnerRepo.On("GetAllEligible", ctx, 3.5).Return([]*partner.Partner{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoEligiblePartners)
	assert.Equal(t, order.None, testOrder.DeliveryStatus())
}

func TestAssignPartnerCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignPartnerCommand(kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewAssignPartnerCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
