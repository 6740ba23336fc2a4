// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"strings"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Service areas are stored comma-joined; names are already normalized to
// lowercase by the domain so the column is safe to match on.
type CourierDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Rank          int
	ServiceAreas  string
	IsActive      bool `gorm:"index"`
	IsBlacklisted bool `gorm:"index"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	areas := aggregate.ServiceAreas()
	names := make([]string, 0, len(areas))
	for _, area := range areas {
		names = append(names, area.String())
	}

	return CourierDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Rank:          aggregate.Rank(),
		ServiceAreas:  strings.Join(names, ","),
		IsActive:      aggregate.IsActive(),
		IsBlacklisted: aggregate.IsBlacklisted(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	names := strings.Split(dto.ServiceAreas, ",")
	areas := make([]kernel.ServiceArea, 0, len(names))
	for _, name := range names {
		area, areaErr := kernel.NewServiceArea(name)
		if areaErr != nil {
			return nil, areaErr
		}
		areas = append(areas, area)
	}

	return courier.RestoreCourier(id, dto.Name, dto.Rank, areas, dto.IsActive, dto.IsBlacklisted)
}
