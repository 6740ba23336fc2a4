package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// OfferOrdersCommandHandler orchestrates the assignment loop.
// Finds orders awaiting assignment, resolves their eligible couriers and
// opens a pending attempt for the best one. Orders whose eligible pool is
// empty are parked as unassignable instead of looping forever.
//
// Orders that already hold a pending attempt are skipped: at most one
// offer per order is in flight at any time.
type OfferOrdersCommandHandler struct {
	uowFactory       UoWFactory
	resolver         services.EligibilityResolver
	acceptanceWindow time.Duration
	publisher        ports.EventPublisher
	logger           *slog.Logger
}

// NewOfferOrdersCommandHandler creates a handler for the offer pass.
// acceptanceWindow bounds how long a courier may sit on each offer.
func NewOfferOrdersCommandHandler(
	uowFactory UoWFactory,
	acceptanceWindow time.Duration,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) OfferOrdersCommandHandler {
	return OfferOrdersCommandHandler{
		uowFactory:       uowFactory,
		resolver:         services.NewEligibilityResolver(),
		acceptanceWindow: acceptanceWindow,
		publisher:        publisher,
		logger:           logger,
	}
}

// Handle processes one offer pass over all orders awaiting assignment.
// Each order is re-locked individually so that a concurrent settlement of
// the same order serializes against the pass. The whole pass commits as
// one transaction; domain events go out only after the commit.
func (h OfferOrdersCommandHandler) Handle(ctx context.Context, command OfferOrdersCommand) error {
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
	courierRepo := uow.CourierRepository()
	attemptRepo := uow.AttemptRepository()

	awaiting, err := orderRepo.GetAllAwaitingAssignment(ctx)
	if err != nil {
		return err
	}
	if len(awaiting) == 0 {
		return nil
	}

	couriers, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	pendingEvents := make([]events.Event, 0, len(awaiting))

	for _, candidate := range awaiting {
		locked, lockErr := orderRepo.GetForUpdate(ctx, candidate.ID())
		if lockErr != nil {
			return lockErr
		}
		if !locked.IsAwaitingAssignment() {
			continue
		}

		_, pendingErr := attemptRepo.GetPendingByOrder(ctx, locked.ID())
		if pendingErr == nil {
			continue
		}
		if !errors.Is(pendingErr, errs.ErrObjectNotFound) {
			return pendingErr
		}

		attempts, attemptsErr := attemptRepo.GetAllByOrder(ctx, locked.ID())
		if attemptsErr != nil {
			return attemptsErr
		}

		eligible, resolveErr := h.resolver.Candidates(locked, couriers, attempts)
		if resolveErr != nil {
			return resolveErr
		}

		if len(eligible) == 0 {
			if markErr := locked.MarkUnassignable(); markErr != nil {
				return markErr
			}
			if updateErr := orderRepo.Update(ctx, locked); updateErr != nil {
				return updateErr
			}

			pendingEvents = append(pendingEvents,
				events.NewAssignmentEvent(events.TypeUnassignable, locked.ID(), nil))
			continue
		}

		best := eligible[0]
		attempt, newErr := assignment.NewAttempt(
			kernel.NewUUID(), locked.ID(), best.ID(), time.Now().UTC(), h.acceptanceWindow,
		)
		if newErr != nil {
			return newErr
		}

		if addErr := attemptRepo.Add(ctx, attempt); addErr != nil {
			return addErr
		}

		courierID := best.ID()
		pendingEvents = append(pendingEvents,
			events.NewAssignmentEvent(events.TypeOffered, locked.ID(), &courierID))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, h.logger, pendingEvents)
	return nil
}
