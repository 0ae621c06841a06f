package enums

import "fmt"

// ItemType is one of the garment types accepted for pickup.
type ItemType string

const (
	ItemTypeShirt      ItemType = "Shirt"
	ItemTypePants      ItemType = "Pants"
	ItemTypeDress      ItemType = "Dress"
	ItemTypeSuit       ItemType = "Suit"
	ItemTypeJacket     ItemType = "Jacket"
	ItemTypeSweater    ItemType = "Sweater"
	ItemTypeTShirt     ItemType = "T-Shirt"
	ItemTypeJeans      ItemType = "Jeans"
	ItemTypeSkirt      ItemType = "Skirt"
	ItemTypeBlouse     ItemType = "Blouse"
	ItemTypeCoat       ItemType = "Coat"
	ItemTypeTowel      ItemType = "Towel"
	ItemTypeBedSheet   ItemType = "Bed Sheet"
	ItemTypeCurtain    ItemType = "Curtain"
	ItemTypeTableCloth ItemType = "Table Cloth"
)

var validItemTypes = []ItemType{
	ItemTypeShirt,
	ItemTypePants,
	ItemTypeDress,
	ItemTypeSuit,
	ItemTypeJacket,
	ItemTypeSweater,
	ItemTypeTShirt,
	ItemTypeJeans,
	ItemTypeSkirt,
	ItemTypeBlouse,
	ItemTypeCoat,
	ItemTypeTowel,
	ItemTypeBedSheet,
	ItemTypeCurtain,
	ItemTypeTableCloth,
}

// Base prices per garment, kept as catalog metadata for the client. They do
// not enter the flat-fee total.
var itemBasePrices = map[ItemType]int{
	ItemTypeShirt:      30,
	ItemTypePants:      40,
	ItemTypeDress:      60,
	ItemTypeSuit:       100,
	ItemTypeJacket:     80,
	ItemTypeSweater:    50,
	ItemTypeTShirt:     25,
	ItemTypeJeans:      45,
	ItemTypeSkirt:      35,
	ItemTypeBlouse:     35,
	ItemTypeCoat:       90,
	ItemTypeTowel:      20,
	ItemTypeBedSheet:   80,
	ItemTypeCurtain:    120,
	ItemTypeTableCloth: 60,
}

// ValidItemTypes returns the full garment set, used in validation details.
func ValidItemTypes() []ItemType {
	return append([]ItemType(nil), validItemTypes...)
}

// String implements fmt.Stringer.
func (i ItemType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemType.
func (i ItemType) IsValid() bool {
	_, ok := itemBasePrices[i]
	return ok
}

// BasePrice returns the catalog base price for the garment.
func (i ItemType) BasePrice() int {
	return itemBasePrices[i]
}

// ParseItemType converts raw input into an ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}
