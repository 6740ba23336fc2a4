package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newElapsedAttempt(t *testing.T, orderID kernel.UUID) *assignment.Attempt {
	t.Helper()

	attempt, err := assignment.NewAttempt(
		kernel.NewUUID(), orderID, kernel.NewUUID(), time.Now().UTC().Add(-time.Hour), time.Minute,
	)
	require.NoError(t, err)
	return attempt
}

func TestExpireOffersCommandHandler_Handle_SettlesElapsedOffers(t *testing.T) {
	ctx := t.Context()
	firstOrderID := kernel.NewUUID()
	secondOrderID := kernel.NewUUID()

	firstOrder := newAwaitingOrder(t, firstOrderID)
	secondOrder := newAwaitingOrder(t, secondOrderID)
	firstAttempt := newElapsedAttempt(t, firstOrderID)
	secondAttempt := newElapsedAttempt(t, secondOrderID)

	orderRepo := new(MockOrderRepository)
	attemptRepo := new(MockAttemptRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AttemptRepository").Return(attemptRepo).Once(),
		attemptRepo.On("GetAllPendingElapsed", ctx, mock.AnythingOfType("time.Time")).
			Return([]*assignment.Attempt{firstAttempt, secondAttempt}, nil).Once(),
		orderRepo.On("GetForUpdate", ctx, firstOrderID).Return(firstOrder, nil).Once(),
		attemptRepo.On("Settle", ctx, firstAttempt).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, secondOrderID).Return(secondOrder, nil).Once(),
		attemptRepo.On("Settle", ctx, secondAttempt).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Twice()

	handler := commands.NewExpireOffersCommandHandler(factory, publisher, testLogger())
	err := handler.Handle(ctx, commands.NewExpireOffersCommand())

	require.NoError(t, err)
	assert.Equal(t, assignment.OutcomeExpired, firstAttempt.Outcome())
	assert.Equal(t, assignment.OutcomeExpired, secondAttempt.Outcome())

	uow.AssertExpectations(t)
	attemptRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestExpireOffersCommandHandler_Handle_SkipsRaceLosers(t *testing.T) {
	ctx := t.Context()
	firstOrderID := kernel.NewUUID()
	secondOrderID := kernel.NewUUID()

	firstOrder := newAwaitingOrder(t, firstOrderID)
	secondOrder := newAwaitingOrder(t, secondOrderID)
	firstAttempt := newElapsedAttempt(t, firstOrderID)
	secondAttempt := newElapsedAttempt(t, secondOrderID)

	orderRepo := new(MockOrderRepository)
	attemptRepo := new(MockAttemptRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AttemptRepository").Return(attemptRepo).Once(),
		attemptRepo.On("GetAllPendingElapsed", ctx, mock.AnythingOfType("time.Time")).
			Return([]*assignment.Attempt{firstAttempt, secondAttempt}, nil).Once(),
		orderRepo.On("GetForUpdate", ctx, firstOrderID).Return(firstOrder, nil).Once(),
		// a courier accepted between the scan and the lock
		attemptRepo.On("Settle", ctx, firstAttempt).Return(assignment.ErrAlreadySettled).Once(),
		orderRepo.On("GetForUpdate", ctx, secondOrderID).Return(secondOrder, nil).Once(),
		attemptRepo.On("Settle", ctx, secondAttempt).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once()

	handler := commands.NewExpireOffersCommandHandler(factory, publisher, testLogger())
	err := handler.Handle(ctx, commands.NewExpireOffersCommand())

	require.NoError(t, err)
	assert.Equal(t, assignment.OutcomeExpired, secondAttempt.Outcome())
	publisher.AssertExpectations(t)
}

func TestExpireOffersCommandHandler_Handle_NothingElapsed(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	attemptRepo := new(MockAttemptRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AttemptRepository").Return(attemptRepo).Once(),
		attemptRepo.On("GetAllPendingElapsed", ctx, mock.AnythingOfType("time.Time")).
			Return([]*assignment.Attempt{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewExpireOffersCommandHandler(factory, new(MockEventPublisher), testLogger())
	err := handler.Handle(ctx, commands.NewExpireOffersCommand())

	require.NoError(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}
