package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler projects an order's status from the database.
// Joins the order row with its status ledger and the presence of a
// pending offer, without loading domain aggregates.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the status projection.
// Returns errs.ErrObjectNotFound when the order does not exist. History is
// ordered oldest first and contains only delivery-chain milestones.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var response GetOrderStatusQueryResponse

	var orderRow struct {
		ID             uuid.UUID
		Milestone      string
		CourierID      *uuid.UUID
		TrackingNumber *string
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			milestone,
			courier_id,
			tracking_number
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&orderRow).Error
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	if orderRow.ID == uuid.Nil {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	response.OrderID = query.OrderID()
	response.Milestone = orderRow.Milestone
	response.TrackingNumber = orderRow.TrackingNumber
	response.Unassignable = orderRow.Milestone == order.Unassignable.String()

	if orderRow.CourierID != nil {
		courierID, idErr := kernel.UUIDFromBytes(orderRow.CourierID[:])
		if idErr != nil {
			return GetOrderStatusQueryResponse{}, idErr
		}
		response.CourierID = &courierID
	}

	if orderRow.Milestone == order.Created.String() {
		pending, pendingErr := h.hasPendingOffer(ctx, query.OrderID())
		if pendingErr != nil {
			return GetOrderStatusQueryResponse{}, pendingErr
		}
		response.AwaitingCourierResponse = pending
	}

	history, err := h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	response.History = history

	return response, nil
}

func (h GetOrderStatusQueryHandler) hasPendingOffer(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM attempts
		WHERE order_id = ? AND outcome = ?
	`, orderID.Bytes(), assignment.OutcomePending.String()).Scan(&count).Error
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	return count > 0, nil
}

func (h GetOrderStatusQueryHandler) loadHistory(
	ctx context.Context, orderID kernel.UUID,
) ([]StatusHistoryEntry, error) {
	history := make([]StatusHistoryEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			milestone,
			actor,
			occurred_at
		FROM status_events
		WHERE order_id = ?
		ORDER BY occurred_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusHistoryEntry
		var occurredAt time.Time

		if err = rows.Scan(&entry.Milestone, &entry.Actor, &occurredAt); err != nil {
			return nil, err
		}

		entry.OccurredAt = occurredAt.UTC()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
