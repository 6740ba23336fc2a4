package courier

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrServiceAreaIsRequired is returned when a courier is created with no service areas.
	ErrServiceAreaIsRequired = errs.NewValueIsRequiredError("at least one service area")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// Courier represents a delivery courier available for order offers.
//
// Business rules:
//   - Must have a valid UUID, non-empty name, and a non-negative rank
//   - Must cover at least one service area
//   - Only active, non-blacklisted couriers receive offers
//   - Rank is an external signal (proximity/performance) used to order
//     eligible candidates; higher ranks are offered first
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// rank is the external ranking signal used for candidate ordering
	rank int
	// serviceAreas are the delivery zones the courier covers
	serviceAreas []kernel.ServiceArea
	// isActive marks whether the courier is currently taking work
	isActive bool
	// isBlacklisted excludes the courier from all offers
	isBlacklisted bool
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates an active, non-blacklisted courier.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
//   - rank: external ranking signal (must be non-negative)
//   - serviceAreas: covered zones (at least one, all valid)
func NewCourier(id kernel.UUID, name string, rank int, serviceAreas []kernel.ServiceArea) (*Courier, error) {
	c := &Courier{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRank(rank),
		c.setServiceAreas(serviceAreas),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier from persistent storage, including
// its admin-managed availability flags.
func RestoreCourier(
	id kernel.UUID,
	name string,
	rank int,
	serviceAreas []kernel.ServiceArea,
	isActive bool,
	isBlacklisted bool,
) (*Courier, error) {
	c, err := NewCourier(id, name, rank, serviceAreas)
	if err != nil {
		return nil, err
	}

	c.isActive = isActive
	c.isBlacklisted = isBlacklisted
	return c, nil
}

// Validate ensures the Courier instance was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Rank returns the external ranking signal.
func (c *Courier) Rank() int {
	return c.rank
}

// ServiceAreas returns the delivery zones the courier covers.
func (c *Courier) ServiceAreas() []kernel.ServiceArea {
	areas := make([]kernel.ServiceArea, len(c.serviceAreas))
	copy(areas, c.serviceAreas)
	return areas
}

// IsActive reports whether the courier is currently taking work.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// IsBlacklisted reports whether the courier is excluded from all offers.
func (c *Courier) IsBlacklisted() bool {
	return c.isBlacklisted
}

// IsAvailable reports whether the courier may receive offers at all:
// active and not blacklisted.
func (c *Courier) IsAvailable() bool {
	return c.isActive && !c.isBlacklisted
}

// CanServe reports whether the courier covers the given service area.
func (c *Courier) CanServe(area kernel.ServiceArea) bool {
	for _, covered := range c.serviceAreas {
		if covered.IsEqual(area) {
			return true
		}
	}
	return false
}

// Deactivate takes the courier out of rotation. Admin operation.
func (c *Courier) Deactivate() {
	c.isActive = false
}

// Activate returns the courier to rotation. Admin operation.
func (c *Courier) Activate() {
	c.isActive = true
}

// Blacklist permanently excludes the courier from offers. Admin operation.
func (c *Courier) Blacklist() {
	c.isBlacklisted = true
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the courier's name.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

// setRank validates and sets the ranking signal.
func (c *Courier) setRank(rank int) error {
	if rank < 0 {
		return errs.NewValueIsOutOfRangeError("rank", rank, 0, int(^uint(0)>>1))
	}
	c.rank = rank
	return nil
}

// setServiceAreas validates and sets the covered zones.
func (c *Courier) setServiceAreas(areas []kernel.ServiceArea) error {
	if len(areas) == 0 {
		return ErrServiceAreaIsRequired
	}
	for _, area := range areas {
		if err := area.Validate(); err != nil {
			return err
		}
	}
	c.serviceAreas = make([]kernel.ServiceArea, len(areas))
	copy(c.serviceAreas, areas)
	return nil
}
