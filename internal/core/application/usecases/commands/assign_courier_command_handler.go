package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderNotAwaitingAssignment reports a manual assignment for an
	// order that already left the assignment phase.
	ErrOrderNotAwaitingAssignment = errors.New("order is not awaiting assignment")

	// ErrCourierNotEligible reports a manual assignment to a courier who
	// cannot take the order at all: inactive, blacklisted or outside the
	// order's service area.
	ErrCourierNotEligible = errors.New("courier cannot serve this order")
)

// AssignCourierCommandHandler opens an offer to a dispatcher-picked courier.
// Overrides prior rejections and expirations for that courier but not hard
// constraints: the courier must be available and serve the order's area,
// and still has to accept within the acceptance window.
//
// Any offer already pending for the order is superseded: it settles as
// expired before the new one opens, keeping the one-pending-offer rule.
type AssignCourierCommandHandler struct {
	uowFactory       UoWFactory
	acceptanceWindow time.Duration
	publisher        ports.EventPublisher
	logger           *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for manual assignment.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	acceptanceWindow time.Duration,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:       uowFactory,
		acceptanceWindow: acceptanceWindow,
		publisher:        publisher,
		logger:           logger,
	}
}

// Handle processes the manual assignment.
// Locks the order, checks the courier's hard constraints, supersedes any
// pending offer and opens a fresh one for the named courier.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
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

	steeredOrder, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !steeredOrder.IsAwaitingAssignment() {
		return ErrOrderNotAwaitingAssignment
	}

	pickedCourier, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return err
	}
	if !pickedCourier.IsAvailable() || !pickedCourier.CanServe(steeredOrder.ServiceArea()) {
		return ErrCourierNotEligible
	}

	attemptRepo := uow.AttemptRepository()

	pendingEvents := make([]events.Event, 0, 2)

	pending, err := attemptRepo.GetPendingByOrder(ctx, command.OrderID())
	switch {
	case err == nil:
		if err = settleAttempt(ctx, attemptRepo, pending, assignment.OutcomeExpired); err != nil {
			return err
		}
		supersededCourierID := pending.CourierID()
		pendingEvents = append(pendingEvents,
			events.NewAssignmentEvent(events.TypeExpired, command.OrderID(), &supersededCourierID))
	case errors.Is(err, errs.ErrObjectNotFound):
		// nothing pending, open the offer directly
	default:
		return err
	}

	attempt, err := assignment.NewAttempt(
		kernel.NewUUID(), command.OrderID(), command.CourierID(), time.Now().UTC(), h.acceptanceWindow,
	)
	if err != nil {
		return err
	}
	if err = attemptRepo.Add(ctx, attempt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	courierID := command.CourierID()
	pendingEvents = append(pendingEvents,
		events.NewAssignmentEvent(events.TypeOffered, command.OrderID(), &courierID))
	publishEvents(ctx, h.publisher, h.logger, pendingEvents)
	return nil
}
