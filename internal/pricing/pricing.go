package pricing

import (
	"fmt"
	"strings"

	"github.com/raisul516/ironi-backend/pkg/enums"
	"github.com/raisul516/ironi-backend/pkg/errors"
)

// ItemLine is one garment line in a quote request.
type ItemLine struct {
	Type     enums.ItemType
	Quantity int
}

// Quote is the priced breakdown for an order.
type Quote struct {
	Services     []enums.ServiceType
	PerItemPrice int64
	TotalItems   int
	TotalPrice   int64
}

// Compute prices an order. Every selected service adds its flat fee to the
// per-item price; the total is the per-item price times the total garment
// count. Validation is atomic: any bad value fails the whole quote.
func Compute(services []string, items []ItemLine) (*Quote, error) {
	if len(services) == 0 {
		return nil, errors.New(errors.CodeValidation, "at least one service is required").
			WithDetails(map[string]any{"valid_services": enums.ValidServiceTypes()})
	}
	if len(items) == 0 {
		return nil, errors.New(errors.CodeValidation, "at least one item is required")
	}

	parsed := make([]enums.ServiceType, 0, len(services))
	seen := map[enums.ServiceType]bool{}
	var perItem int64
	for _, raw := range services {
		service, err := enums.ParseServiceType(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid service %q", raw)).
				WithDetails(map[string]any{"valid_services": enums.ValidServiceTypes()})
		}
		if seen[service] {
			continue
		}
		seen[service] = true
		parsed = append(parsed, service)
		perItem += int64(service.Fee())
	}

	totalItems := 0
	for _, line := range items {
		if !line.Type.IsValid() {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid item type %q", line.Type)).
				WithDetails(map[string]any{"valid_items": enums.ValidItemTypes()})
		}
		if line.Quantity < 1 {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("quantity for %q must be at least 1", line.Type))
		}
		totalItems += line.Quantity
	}

	return &Quote{
		Services:     parsed,
		PerItemPrice: perItem,
		TotalItems:   totalItems,
		TotalPrice:   perItem * int64(totalItems),
	}, nil
}

// CatalogService is one priced service offering.
type CatalogService struct {
	Name string `json:"name"`
	Fee  int64  `json:"fee"`
}

// CatalogItem is one garment type with its reference base price.
type CatalogItem struct {
	Name      string `json:"name"`
	BasePrice int64  `json:"base_price"`
}

// Catalog returns the public price list: service fees plus garment base
// prices. Base prices are reference metadata only; totals are driven by the
// flat service fees.
func Catalog() ([]CatalogService, []CatalogItem) {
	services := make([]CatalogService, 0, len(enums.ValidServiceTypes()))
	for _, service := range enums.ValidServiceTypes() {
		services = append(services, CatalogService{Name: service.String(), Fee: int64(service.Fee())})
	}
	items := make([]CatalogItem, 0, len(enums.ValidItemTypes()))
	for _, item := range enums.ValidItemTypes() {
		items = append(items, CatalogItem{Name: item.String(), BasePrice: int64(item.BasePrice())})
	}
	return services, items
}
