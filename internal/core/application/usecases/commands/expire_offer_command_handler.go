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

// ErrOfferWindowStillOpen reports an expiry request for an offer whose
// acceptance window has not elapsed yet.
var ErrOfferWindowStillOpen = errors.New("acceptance window is still open")

// ExpireOfferCommandHandler expires a single pending offer on demand.
// The courier is excluded from future offers for this order and the
// order re-enters the assignment pool on the next offer pass.
type ExpireOfferCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireOfferCommandHandler creates a handler for on-demand offer expiry.
func NewExpireOfferCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireOfferCommandHandler {
	return ExpireOfferCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the expiry request.
// Locks the order row and settles the pending offer as expired, but only
// when its stored window has really elapsed. Requests for offers whose
// window is still open return ErrOfferWindowStillOpen; a concurrent
// settlement surfaces as assignment.ErrAlreadySettled.
func (h ExpireOfferCommandHandler) Handle(ctx context.Context, command ExpireOfferCommand) error {
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

	if _, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID()); err != nil {
		return err
	}

	attemptRepo := uow.AttemptRepository()
	attempt, err := attemptRepo.GetPendingByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !attempt.WindowElapsed(time.Now().UTC()) {
		return ErrOfferWindowStillOpen
	}

	if err = settleAttempt(ctx, attemptRepo, attempt, assignment.OutcomeExpired); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	courierID := attempt.CourierID()
	publishEvents(ctx, h.publisher, h.logger, []events.Event{
		events.NewAssignmentEvent(events.TypeExpired, command.OrderID(), &courierID),
	})
	return nil
}
