package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignableOrdersQueryHandler retrieves the dispatcher review
// backlog from the database.
type GetUnassignableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignableOrdersQueryHandler creates a handler for backlog queries.
// Requires a GORM database connection for query execution.
func NewGetUnassignableOrdersQueryHandler(db *gorm.DB) GetUnassignableOrdersQueryHandler {
	return GetUnassignableOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all unassignable orders.
// Results are sorted oldest first so the longest-waiting orders surface
// at the top of the review queue.
func (h GetUnassignableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignableOrdersQuery,
) ([]GetUnassignableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parked := make([]GetUnassignableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.service_area,
			o.created_at,
			COUNT(a.id) AS attempt_count
		FROM orders o
		LEFT JOIN attempts a ON a.order_id = o.id
		WHERE o.milestone = ?
		GROUP BY o.id, o.service_area, o.created_at
		ORDER BY o.created_at
	`, order.Unassignable.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnassignableOrdersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.ServiceArea, &resp.CreatedAt, &resp.AttemptCount); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID
		resp.CreatedAt = resp.CreatedAt.UTC()

		parked = append(parked, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parked, nil
}
