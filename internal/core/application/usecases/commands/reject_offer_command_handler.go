package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/ports"
)

// RejectOfferCommandHandler settles a pending offer against the courier.
// The order keeps the "created" milestone and re-enters the assignment
// pool on the next offer pass; the rejecting courier is excluded from its
// future offers.
type RejectOfferCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRejectOfferCommandHandler creates a handler for offer rejection.
func NewRejectOfferCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the rejection.
// Locks the order row, verifies the pending offer belongs to the courier
// and settles it as rejected. A concurrent settlement of the same offer
// surfaces as assignment.ErrAlreadySettled.
func (h RejectOfferCommandHandler) Handle(ctx context.Context, command RejectOfferCommand) error {
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

	if !attempt.CourierID().IsEqual(command.CourierID()) {
		return ErrOfferCourierMismatch
	}

	if err = settleAttempt(ctx, attemptRepo, attempt, assignment.OutcomeRejected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	courierID := command.CourierID()
	publishEvents(ctx, h.publisher, h.logger, []events.Event{
		events.NewAssignmentEvent(events.TypeRejected, command.OrderID(), &courierID),
	})
	return nil
}
