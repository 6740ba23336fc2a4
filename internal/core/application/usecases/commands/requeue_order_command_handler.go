package commands

import (
	"context"
)

// RequeueOrderCommandHandler re-enters an unassignable order into the
// assignment pool. Voids the order's settled attempts so the eligibility
// resolver considers every courier afresh on the next offer pass.
type RequeueOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewRequeueOrderCommandHandler creates a handler for order requeueing.
func NewRequeueOrderCommandHandler(uowFactory SettlementUoWFactory) RequeueOrderCommandHandler {
	return RequeueOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the requeue.
// Only orders parked as unassignable can re-enter the pool; anything else
// fails on the aggregate's transition check.
func (h RequeueOrderCommandHandler) Handle(ctx context.Context, command RequeueOrderCommand) error {
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

	requeued, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = requeued.Requeue(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, requeued); err != nil {
		return err
	}

	if err = uow.AttemptRepository().VoidAllSettledByOrder(ctx, command.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
