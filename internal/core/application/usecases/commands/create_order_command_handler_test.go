package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID,
		testMoney(t, 500), testMoney(t, 50), testMoney(t, 20))
	require.NoError(t, err)

	var created *order.Order
	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("GetOrCreate", ctx).Return(defaultPolicy(t), nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.ID().IsEqual(orderID))
	assert.Equal(t, order.None, created.DeliveryStatus())
	assert.True(t, created.TipAmount().IsEqual(testMoney(t, 50)))
	assert.True(t, created.DeliveryFee().IsEqual(testMoney(t, 20)))
}

func TestCreateOrderCommandHandler_Handle_TipClampedToPolicy(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(),
		testMoney(t, 500), testMoney(t, 250), kernel.ZeroMoney())
	require.NoError(t, err)

	var created *order.Order
	orderRepo := new(MockOrderRepository)
	policyRepo := new(MockPolicyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("PolicyRepository").Return(policyRepo).Once(),
		policyRepo.On("GetOrCreate", ctx).Return(defaultPolicy(t), nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	// Tip capped at the policy maximum, zero fee replaced by policy default.
	assert.True(t, created.TipAmount().IsEqual(testMoney(t, 100)))
	assert.True(t, created.DeliveryFee().IsEqual(testMoney(t, 20)))
}

func TestNewCreateOrderCommand_InvalidID(t *testing.T) {
	var invalidID kernel.UUID

	_, err := commands.NewCreateOrderCommand(invalidID,
		testMoney(t, 500), testMoney(t, 0), testMoney(t, 0))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "UUID must be created")
}
