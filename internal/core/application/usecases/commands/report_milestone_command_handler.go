package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ErrActorNotPermitted reports a milestone coming from the wrong side of
// the fulfillment: a vendor reporting courier milestones or vice versa.
var ErrActorNotPermitted = errors.New("actor may not report this milestone")

// ReportMilestoneCommandHandler advances an order along the delivery chain.
// Each accepted report appends exactly one entry to the status ledger.
//
// Replays are idempotent: reporting the milestone the order already sits
// at returns the ledger entry recorded the first time, with no state
// change. Reports that skip ahead fail with order.ErrInvalidTransition and
// reports that rewind fail with order.ErrDuplicateTransition; neither
// touches the ledger.
type ReportMilestoneCommandHandler struct {
	uowFactory MilestoneUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReportMilestoneCommandHandler creates a handler for progress reports.
func NewReportMilestoneCommandHandler(
	uowFactory MilestoneUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReportMilestoneCommandHandler {
	return ReportMilestoneCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the progress report and returns the ledger entry
// recording it. Locks the order row so reports for one order apply
// serially whatever their source.
func (h ReportMilestoneCommandHandler) Handle(
	ctx context.Context, command ReportMilestoneCommand,
) (*order.StatusEvent, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ledger := uow.StatusEventRepository()

	reported, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if command.Milestone() == reported.Milestone() {
		return ledger.GetByOrderAndMilestone(ctx, reported.ID(), command.Milestone())
	}

	if !actorMayReport(command.Actor(), command.Milestone()) {
		return nil, ErrActorNotPermitted
	}

	if err = reported.AdvanceTo(command.Milestone()); err != nil {
		return nil, err
	}

	if command.TrackingNumber() != "" {
		if err = reported.SetTrackingNumber(command.TrackingNumber()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, reported); err != nil {
		return nil, err
	}

	statusEvent, err := order.NewStatusEvent(
		kernel.NewUUID(), reported.ID(), command.Milestone(), command.Actor(), time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	if err = ledger.Append(ctx, statusEvent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, h.logger, []events.Event{
		events.NewMilestoneEvent(reported.ID(), reported.Courier(), command.Milestone().String()),
	})
	return statusEvent, nil
}

// actorMayReport encodes which side of the fulfillment reports which
// milestone. Vendors report warehouse progress, couriers report the
// handoff and the last mile. System reports are unrestricted so that
// internal backfills stay possible.
func actorMayReport(actor order.Actor, milestone order.Milestone) bool {
	switch actor {
	case order.ActorVendor:
		return milestone == order.ReadyForPickup || milestone == order.Dispatched
	case order.ActorCourier:
		return milestone == order.PickedUp ||
			milestone == order.OutForDelivery ||
			milestone == order.Delivered ||
			milestone == order.Returned
	case order.ActorSystem:
		return true
	default:
		return false
	}
}
