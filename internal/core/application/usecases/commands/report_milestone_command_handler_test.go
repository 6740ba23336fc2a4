package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderAtMilestone(t *testing.T, orderID kernel.UUID, milestone order.Milestone) *order.Order {
	t.Helper()

	area, err := kernel.NewServiceArea("midtown")
	require.NoError(t, err)

	var courierID *kernel.UUID
	if milestone.IsDeliveryMilestone() {
		id := kernel.NewUUID()
		courierID = &id
	}

	o, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), area, milestone, courierID, nil, time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func newMilestoneHandler(
	uow *MockUoW, publisher *MockEventPublisher,
) commands.ReportMilestoneCommandHandler {
	factory := new(MockMilestoneUoWFactory)
	factory.On("Create").Return(uow).Once()
	return commands.NewReportMilestoneCommandHandler(factory, publisher, testLogger())
}

func TestReportMilestoneCommandHandler_Handle_AdvancesChain(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	tests := []struct {
		name  string
		from  order.Milestone
		to    order.Milestone
		actor order.Actor
	}{
		{"vendor readies package", order.Assigned, order.ReadyForPickup, order.ActorVendor},
		{"courier picks up", order.ReadyForPickup, order.PickedUp, order.ActorCourier},
		{"vendor dispatches", order.PickedUp, order.Dispatched, order.ActorVendor},
		{"courier on last mile", order.Dispatched, order.OutForDelivery, order.ActorCourier},
		{"courier delivers", order.OutForDelivery, order.Delivered, order.ActorCourier},
		{"courier returns", order.OutForDelivery, order.Returned, order.ActorCourier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testOrder := newOrderAtMilestone(t, orderID, tt.from)
			cmd, err := commands.NewReportMilestoneCommand(orderID, tt.to, tt.actor, "")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			ledger := new(MockStatusEventRepository)
			uow := new(MockUoW)

			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(orderRepo).Once(),
				uow.On("StatusEventRepository").Return(ledger).Once(),
				orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
				orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
				ledger.On("Append", ctx, mock.AnythingOfType("*order.StatusEvent")).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			publisher := new(MockEventPublisher)
			publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once()

			handler := newMilestoneHandler(uow, publisher)
			statusEvent, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			require.NotNil(t, statusEvent)
			assert.Equal(t, tt.to, statusEvent.Milestone())
			assert.Equal(t, tt.actor, statusEvent.Actor())
			assert.Equal(t, tt.to, testOrder.Milestone())

			uow.AssertExpectations(t)
			ledger.AssertExpectations(t)
		})
	}
}

func TestReportMilestoneCommandHandler_Handle_ReplayReturnsPriorEntry(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newOrderAtMilestone(t, orderID, order.PickedUp)

	prior, err := order.NewStatusEvent(
		kernel.NewUUID(), orderID, order.PickedUp, order.ActorCourier, time.Now().UTC(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewReportMilestoneCommand(orderID, order.PickedUp, order.ActorCourier, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockStatusEventRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StatusEventRepository").Return(ledger).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		ledger.On("GetByOrderAndMilestone", ctx, orderID, order.PickedUp).Return(prior, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newMilestoneHandler(uow, new(MockEventPublisher))
	statusEvent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, prior, statusEvent)

	// replay never touches state
	assert.Equal(t, order.PickedUp, testOrder.Milestone())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	ledger.AssertNotCalled(t, "Append", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReportMilestoneCommandHandler_Handle_SkipAheadFails(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newOrderAtMilestone(t, orderID, order.Assigned)

	cmd, err := commands.NewReportMilestoneCommand(orderID, order.OutForDelivery, order.ActorCourier, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockStatusEventRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StatusEventRepository").Return(ledger).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newMilestoneHandler(uow, new(MockEventPublisher))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Assigned, testOrder.Milestone())
	ledger.AssertNotCalled(t, "Append", ctx, mock.Anything)
}

func TestReportMilestoneCommandHandler_Handle_RewindFails(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newOrderAtMilestone(t, orderID, order.OutForDelivery)

	cmd, err := commands.NewReportMilestoneCommand(orderID, order.PickedUp, order.ActorCourier, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockStatusEventRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StatusEventRepository").Return(ledger).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newMilestoneHandler(uow, new(MockEventPublisher))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrDuplicateTransition)
	assert.Equal(t, order.OutForDelivery, testOrder.Milestone())
}

func TestReportMilestoneCommandHandler_Handle_WrongActorFails(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newOrderAtMilestone(t, orderID, order.Assigned)

	// only the vendor can report the package as ready for pickup
	cmd, err := commands.NewReportMilestoneCommand(orderID, order.ReadyForPickup, order.ActorCourier, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockStatusEventRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StatusEventRepository").Return(ledger).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newMilestoneHandler(uow, new(MockEventPublisher))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrActorNotPermitted)
	assert.Equal(t, order.Assigned, testOrder.Milestone())
}

func TestReportMilestoneCommandHandler_Handle_DispatchRecordsTrackingNumber(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := newOrderAtMilestone(t, orderID, order.PickedUp)

	cmd, err := commands.NewReportMilestoneCommand(
		orderID, order.Dispatched, order.ActorVendor, "1Z999AA10123456784",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockStatusEventRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StatusEventRepository").Return(ledger).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("*order.StatusEvent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once()

	handler := newMilestoneHandler(uow, publisher)
	statusEvent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, statusEvent)
	assert.Equal(t, order.Dispatched, testOrder.Milestone())
	require.NotNil(t, testOrder.TrackingNumber())
	assert.Equal(t, "1Z999AA10123456784", *testOrder.TrackingNumber())
}
