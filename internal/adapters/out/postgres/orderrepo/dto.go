// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The milestone is stored by its wire name so that ad-hoc SQL against the
// orders table stays readable.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	VendorID       uuid.UUID  `gorm:"type:uuid;index"`
	ServiceArea    string     `gorm:"index"`
	Milestone      string     `gorm:"index"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	TrackingNumber *string
	CreatedAt      time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		VendorID:       aggregate.VendorID().Bytes(),
		ServiceArea:    aggregate.ServiceArea().String(),
		Milestone:      aggregate.Milestone().String(),
		CourierID:      courierID,
		TrackingNumber: aggregate.TrackingNumber(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including milestone and courier using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	serviceArea, err := kernel.NewServiceArea(dto.ServiceArea)
	if err != nil {
		return nil, err
	}

	milestone, err := order.MilestoneFromString(dto.Milestone)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	return order.RestoreOrder(
		id, vendorID, serviceArea, milestone, courierID, dto.TrackingNumber, dto.CreatedAt,
	)
}
