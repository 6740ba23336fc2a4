// Package attemptrepo provides data transfer objects and mapping functions
// for assignment attempt persistence. The attempts table is the source of
// truth for offer settlement: outcome flips happen as conditional updates
// against the stored pending outcome, never as blind writes.
package attemptrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AttemptDTO represents the database structure for persisting attempts.
// ExpiresAt is indexed for the expiry sweep's scan.
type AttemptDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	CourierID uuid.UUID `gorm:"type:uuid;index"`
	OfferedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
	Outcome   string    `gorm:"index"`
	Voided    bool
}

// TableName specifies the database table name for attempt entities.
func (AttemptDTO) TableName() string {
	return "attempts"
}

// fromDomain converts an attempt domain aggregate to its database representation.
func fromDomain(aggregate *assignment.Attempt) AttemptDTO {
	return AttemptDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		CourierID: aggregate.CourierID().Bytes(),
		OfferedAt: aggregate.OfferedAt(),
		ExpiresAt: aggregate.ExpiresAt(),
		Outcome:   aggregate.Outcome().String(),
		Voided:    aggregate.IsVoided(),
	}
}

// toDomain converts a database DTO to an attempt domain aggregate.
func toDomain(dto AttemptDTO) (*assignment.Attempt, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	outcome, err := assignment.OutcomeFromString(dto.Outcome)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAttempt(
		id, orderID, courierID, dto.OfferedAt, dto.ExpiresAt, outcome, dto.Voided,
	)
}
