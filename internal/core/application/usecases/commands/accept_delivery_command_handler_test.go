package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	partnerID := kernel.NewUUID()
	testOrder := newAssignedOrder(t, partnerID)

	cmd, err := commands.NewAcceptDeliveryCommand(testOrder.ID(), partnerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, testOrder.DeliveryStatus())
	assert.Equal(t, order.StatusPreparing, testOrder.Status())
	require.NotNil(t, testOrder.AcceptedAt())
	assert.Equal(t, fixedNow, *testOrder.AcceptedAt())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_WrongPartner(t *testing.T) {
	ctx := t.Context()
	testOrder := newAssignedOrder(t, kernel.NewUUID())
	otherPartner := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(testOrder.ID(), otherPartner)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDeliveryNotFound)
	assert.Equal(t, order.Assigned, testOrder.DeliveryStatus())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAcceptDeliveryCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory, clock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDeliveryNotFound)
}

func TestAcceptDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AcceptDeliveryCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewAcceptDeliveryCommandHandler(factory, clock())
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAcceptDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
