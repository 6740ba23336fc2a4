package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_OpensOfferForPickedCourier(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newAwaitingOrder(t, orderID)
	picked := newAreaCourier(t, "Picked", 2)

	cmd, err := commands.NewAssignCourierCommand(orderID, picked.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	attemptRepo := new(MockAttemptRepository)
	uow := new(MockUoW)

	notFound := errs.NewObjectNotFoundError("attempt", orderID.String())

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, picked.ID()).Return(picked, nil).Once(),
		uow.On("AttemptRepository").Return(attemptRepo).Once(),
		attemptRepo.On("GetPendingByOrder", ctx, orderID).Return(nil, notFound).Once(),
		attemptRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Attempt")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, 30*time.Minute, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := attemptRepo.Calls[1].Arguments.Get(1).(*assignment.Attempt)
	assert.True(t, added.CourierID().IsEqual(picked.ID()))
	assert.True(t, added.IsPending())

	// the courier still has to accept: no milestone change yet
	assert.Equal(t, order.Created, testOrder.Milestone())
	publisher.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_SupersedesPendingOffer(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newAwaitingOrder(t, orderID)
	picked := newAreaCourier(t, "Picked", 2)
	pending := newPendingAttempt(t, orderID, kernel.NewUUID(), time.Hour)

	cmd, err := commands.NewAssignCourierCommand(orderID, picked.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	attemptRepo := new(MockAttemptRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, picked.ID()).Return(picked, nil).Once(),
		uow.On("AttemptRepository").Return(attemptRepo).Once(),
		attemptRepo.On("GetPendingByOrder", ctx, orderID).Return(pending, nil).Once(),
		attemptRepo.On("Settle", ctx, pending).Return(nil).Once(),
		attemptRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Attempt")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Twice()

	handler := commands.NewAssignCourierCommandHandler(factory, 30*time.Minute, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.OutcomeExpired, pending.Outcome())
	publisher.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_OrderNotAwaiting(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newOrderAtMilestone(t, orderID, order.Assigned)
	picked := newAreaCourier(t, "Picked", 2)

	cmd, err := commands.NewAssignCourierCommand(orderID, picked.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(
		factory, 30*time.Minute, new(MockEventPublisher), testLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotAwaitingAssignment)
}

func TestAssignCourierCommandHandler_Handle_IneligibleCourier(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newAwaitingOrder(t, orderID)

	blacklisted := newAreaCourier(t, "Blocked", 2)
	blacklisted.Blacklist()

	cmd, err := commands.NewAssignCourierCommand(orderID, blacklisted.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, blacklisted.ID()).Return(blacklisted, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(
		factory, 30*time.Minute, new(MockEventPublisher), testLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCourierNotEligible)
	uow.AssertNotCalled(t, "Commit", ctx)
}
