package enums

import "fmt"

// ServiceType is one of the laundry services a customer can select.
type ServiceType string

const (
	ServiceTypeWashing         ServiceType = "Washing"
	ServiceTypeIroning         ServiceType = "Ironing"
	ServiceTypeDryCleaning     ServiceType = "Dry Cleaning"
	ServiceTypeExpressDelivery ServiceType = "Express Delivery"
)

var validServiceTypes = []ServiceType{
	ServiceTypeWashing,
	ServiceTypeIroning,
	ServiceTypeDryCleaning,
	ServiceTypeExpressDelivery,
}

// Flat per-service fees in taka. Services compound additively per item.
var serviceFees = map[ServiceType]int{
	ServiceTypeWashing:         50,
	ServiceTypeIroning:         30,
	ServiceTypeDryCleaning:     80,
	ServiceTypeExpressDelivery: 100,
}

// ValidServiceTypes returns the full service set, used in validation details.
func ValidServiceTypes() []ServiceType {
	return append([]ServiceType(nil), validServiceTypes...)
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	_, ok := serviceFees[s]
	return ok
}

// Fee returns the flat fee charged per item for this service.
func (s ServiceType) Fee() int {
	return serviceFees[s]
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service %q", value)
}
