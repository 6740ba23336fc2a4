package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequeueOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	parked := newAwaitingOrder(t, orderID)
	require.NoError(t, parked.MarkUnassignable())

	cmd, err := commands.NewRequeueOrderCommand(orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	attemptRepo := new(MockAttemptRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(parked, nil).Once(),
		orderRepo.On("Update", ctx, parked).Return(nil).Once(),
		uow.On("AttemptRepository").Return(attemptRepo).Once(),
		attemptRepo.On("VoidAllSettledByOrder", ctx, orderID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequeueOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Created, parked.Milestone())
	uow.AssertExpectations(t)
	attemptRepo.AssertExpectations(t)
}

func TestRequeueOrderCommandHandler_Handle_OnlyUnassignableOrders(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	active := newAwaitingOrder(t, orderID)

	cmd, err := commands.NewRequeueOrderCommand(orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(active, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequeueOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, order.Created, active.Milestone())
	uow.AssertNotCalled(t, "Commit", ctx)
}
