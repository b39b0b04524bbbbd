package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignPendingCommandHandler_Handle_AssignsPoolOrder(t *testing.T) {
	ctx := t.Context()

	testOrder := newPoolOrder(t)
	idle := newEligiblePartner(t, "Idle", 4.5)

	// Pool lookup runs on its own unit of work, outside a transaction.
	poolOrderRepo := new(MockOrderRepository)
	poolUoW := new(MockUoW)
	poolUoW.On("OrderRepository").Return(poolOrderRepo).Once()
	poolOrderRepo.On("GetFirstUnassigned", ctx).Return(testOrder, nil).Once()

	poolFactory := new(MockOrderUoWFactory)
	poolFactory.On("Create").Return(poolUoW).Once()

	// The delegated assignment re-reads the order transactionally.
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
		partnerRepo.On("GetAllEligible", ctx, 3.5).Return([]*partner.Partner{idle}, nil).Once(),
		orderRepo.On("CountActiveByPartner", ctx, idle.ID()).Return(0, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	assignFactory := new(MockUoWFactory)
	assignFactory.On("Create").Return(uow).Once()

	assignHandler := commands.NewAssignPartnerCommandHandler(assignFactory, clock())
	handler := commands.NewAssignPendingCommandHandler(poolFactory, assignHandler)

	err := handler.Handle(ctx, commands.NewAssignPendingCommand())

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, testOrder.DeliveryStatus())
	require.NotNil(t, testOrder.Partner())
	assert.True(t, testOrder.Partner().IsEqual(idle.ID()))

	poolOrderRepo.AssertExpectations(t)
	poolUoW.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignPendingCommandHandler_Handle_EmptyPool(t *testing.T) {
	ctx := t.Context()

	poolOrderRepo := new(MockOrderRepository)
	poolUoW := new(MockUoW)
	poolUoW.On("OrderRepository").Return(poolOrderRepo).Once()
	poolOrderRepo.On("GetFirstUnassigned", ctx).
		Return(nil, errs.NewObjectNotFoundError("unassigned order", nil)).Once()

	poolFactory := new(MockOrderUoWFactory)
	poolFactory.On("Create").Return(poolUoW).Once()

	assignFactory := new(MockUoWFactory)
	assignHandler := commands.NewAssignPartnerCommandHandler(assignFactory, clock())
	handler := commands.NewAssignPendingCommandHandler(poolFactory, assignHandler)

	err := handler.Handle(ctx, commands.NewAssignPendingCommand())

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	assignFactory.AssertNotCalled(t, "Create")
	poolOrderRepo.AssertExpectations(t)
}

func TestAssignPendingCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	poolFactory := new(MockOrderUoWFactory)
	assignHandler := commands.NewAssignPartnerCommandHandler(new(MockUoWFactory), clock())
	handler := commands.NewAssignPendingCommandHandler(poolFactory, assignHandler)

	err := handler.Handle(ctx, commands.AssignPendingCommand{})

	require.ErrorIs(t, err, commands.ErrAssignPendingCommandIsNotConstructed)
	poolFactory.AssertNotCalled(t, "Create")
}
