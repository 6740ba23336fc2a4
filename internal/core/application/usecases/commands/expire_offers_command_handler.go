package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/ports"
)

// ExpireOffersCommandHandler runs the expiry sweep.
// Pending offers past their stored expiry instant settle as expired; the
// affected orders re-enter the assignment pool on the next offer pass.
//
// The sweep races against couriers answering at the last moment. Losing
// that race is normal: the attempt's compare-and-swap reports it and the
// sweep simply moves on.
type ExpireOffersCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireOffersCommandHandler creates a handler for the expiry sweep.
func NewExpireOffersCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one expiry pass over all elapsed pending offers.
// Each affected order is locked before its attempt settles so the sweep
// serializes against concurrent accept and reject calls.
func (h ExpireOffersCommandHandler) Handle(ctx context.Context, command ExpireOffersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	attemptRepo := uow.AttemptRepository()

	elapsed, err := attemptRepo.GetAllPendingElapsed(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(elapsed) == 0 {
		return nil
	}

	pendingEvents := make([]events.Event, 0, len(elapsed))

	for _, attempt := range elapsed {
		if _, lockErr := orderRepo.GetForUpdate(ctx, attempt.OrderID()); lockErr != nil {
			return lockErr
		}

		settleErr := settleAttempt(ctx, attemptRepo, attempt, assignment.OutcomeExpired)
		if errors.Is(settleErr, assignment.ErrAlreadySettled) {
			continue
		}
		if settleErr != nil {
			return settleErr
		}

		courierID := attempt.CourierID()
		pendingEvents = append(pendingEvents,
			events.NewAssignmentEvent(events.TypeExpired, attempt.OrderID(), &courierID))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, h.logger, pendingEvents)
	return nil
}
