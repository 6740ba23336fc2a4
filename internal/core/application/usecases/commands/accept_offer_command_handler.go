package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var (
	// ErrOfferCourierMismatch reports a settlement from a courier the
	// pending offer was never extended to.
	ErrOfferCourierMismatch = errors.New("offer does not belong to courier")

	// ErrOfferWindowElapsed reports an acceptance that arrived after the
	// acceptance window closed. The offer is settled as expired instead.
	ErrOfferWindowElapsed = errors.New("acceptance window has elapsed")
)

// AcceptOfferCommandHandler settles a pending offer in the courier's favor.
// The attempt flips to accepted exactly once: a concurrent expiry of the
// same attempt loses the compare-and-swap and surfaces as
// assignment.ErrAlreadySettled, never as a double settlement.
//
// Acceptance is the transition into the delivery chain: the order moves to
// "assigned" and the assignment lands on the status ledger.
type AcceptOfferCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the acceptance.
// Locks the order row, verifies the pending offer belongs to the courier,
// and settles it. A late acceptance settles the attempt as expired and
// returns ErrOfferWindowElapsed so the caller can tell the courier why
// they did not get the order.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, command AcceptOfferCommand) error {
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

	acceptedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	attempt, err := attemptRepo.GetPendingByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !attempt.CourierID().IsEqual(command.CourierID()) {
		return ErrOfferCourierMismatch
	}

	now := time.Now().UTC()
	if attempt.WindowElapsed(now) {
		if err = settleAttempt(ctx, attemptRepo, attempt, assignment.OutcomeExpired); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		courierID := command.CourierID()
		publishEvents(ctx, h.publisher, h.logger, []events.Event{
			events.NewAssignmentEvent(events.TypeExpired, command.OrderID(), &courierID),
		})
		return ErrOfferWindowElapsed
	}

	if err = settleAttempt(ctx, attemptRepo, attempt, assignment.OutcomeAccepted); err != nil {
		return err
	}

	if err = acceptedOrder.Assign(command.CourierID()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, acceptedOrder); err != nil {
		return err
	}

	statusEvent, err := order.NewStatusEvent(
		kernel.NewUUID(), acceptedOrder.ID(), order.Assigned, order.ActorCourier, now,
	)
	if err != nil {
		return err
	}
	if err = uow.StatusEventRepository().Append(ctx, statusEvent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	courierID := command.CourierID()
	publishEvents(ctx, h.publisher, h.logger, []events.Event{
		events.NewAssignmentEvent(events.TypeAccepted, command.OrderID(), &courierID),
		events.NewMilestoneEvent(command.OrderID(), &courierID, order.Assigned.String()),
	})
	return nil
}

// settleAttempt applies the outcome in memory, then persists it through
// the repository's compare-and-swap. Race losers get
// assignment.ErrAlreadySettled from either step.
func settleAttempt(
	ctx context.Context,
	attemptRepo ports.AttemptRepository,
	attempt *assignment.Attempt,
	outcome assignment.Outcome,
) error {
	if err := attempt.Settle(outcome); err != nil {
		return err
	}

	return attemptRepo.Settle(ctx, attempt)
}
