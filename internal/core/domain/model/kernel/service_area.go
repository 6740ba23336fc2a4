package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrServiceAreaIsNotConstructed indicates that a ServiceArea was not created
// through NewServiceArea. Returned when validating a zero-value ServiceArea.
var ErrServiceAreaIsNotConstructed = errs.NewValueIsRequiredError(
	"ServiceArea must be created via NewServiceArea")

// ServiceArea is a value object naming a geographic delivery zone.
// Orders carry the area they must be delivered in; couriers carry the set
// of areas they cover. Eligibility matching compares the two.
//
// Area names are normalized on construction (trimmed, lower-cased) so that
// "Downtown" and " downtown " compare equal. The zero value is invalid.
type ServiceArea struct {
	name string
}

// NewServiceArea creates a validated, normalized service area.
// The name must be non-blank.
func NewServiceArea(name string) (ServiceArea, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return ServiceArea{}, errs.NewValueIsRequiredError("service area name")
	}
	return ServiceArea{name: normalized}, nil
}

// String returns the normalized area name.
func (a ServiceArea) String() string {
	return a.name
}

// IsEqual reports whether two service areas name the same zone.
func (a ServiceArea) IsEqual(other ServiceArea) bool {
	return a.name == other.name
}

// Validate returns ErrServiceAreaIsNotConstructed for the zero value.
func (a ServiceArea) Validate() error {
	if a.name == "" {
		return ErrServiceAreaIsNotConstructed
	}
	return nil
}
