// Package ledgerrepo provides persistence for the append-only status
// ledger. Rows are only ever inserted; a unique index on (order_id,
// milestone) backs the no-milestone-twice rule at the storage level.
package ledgerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusEventDTO represents the database structure for ledger entries.
type StatusEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_status_events_order_milestone"`
	Milestone  string    `gorm:"uniqueIndex:idx_status_events_order_milestone"`
	Actor      string
	OccurredAt time.Time
}

// TableName specifies the database table name for ledger entries.
func (StatusEventDTO) TableName() string {
	return "status_events"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(event *order.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		Milestone:  event.Milestone().String(),
		Actor:      event.Actor().String(),
		OccurredAt: event.OccurredAt(),
	}
}

// toDomain converts a database DTO to a ledger entry.
func toDomain(dto StatusEventDTO) (*order.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	milestone, err := order.MilestoneFromString(dto.Milestone)
	if err != nil {
		return nil, err
	}

	actor, err := order.ActorFromString(dto.Actor)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusEvent(id, orderID, milestone, actor, dto.OccurredAt)
}
