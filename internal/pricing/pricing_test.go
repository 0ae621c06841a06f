package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raisul516/ironi-backend/pkg/enums"
	"github.com/raisul516/ironi-backend/pkg/errors"
)

func TestComputeSingleServiceSingleItem(t *testing.T) {
	quote, err := Compute([]string{"Washing"}, []ItemLine{{Type: enums.ItemTypeShirt, Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, int64(50), quote.PerItemPrice)
	assert.Equal(t, 2, quote.TotalItems)
	assert.Equal(t, int64(100), quote.TotalPrice)
}

func TestComputeMultipleServicesSumFees(t *testing.T) {
	quote, err := Compute(
		[]string{"Washing", "Ironing", "Express Delivery"},
		[]ItemLine{
			{Type: enums.ItemTypeShirt, Quantity: 1},
			{Type: enums.ItemTypePants, Quantity: 2},
		},
	)
	require.NoError(t, err)

	// 50 + 30 + 100 per garment, three garments total
	assert.Equal(t, int64(180), quote.PerItemPrice)
	assert.Equal(t, 3, quote.TotalItems)
	assert.Equal(t, int64(540), quote.TotalPrice)
}

func TestComputeDeduplicatesServices(t *testing.T) {
	quote, err := Compute([]string{"Washing", "Washing"}, []ItemLine{{Type: enums.ItemTypeTowel, Quantity: 1}})
	require.NoError(t, err)

	assert.Equal(t, int64(50), quote.PerItemPrice)
	assert.Len(t, quote.Services, 1)
}

func TestComputeRejectsUnknownService(t *testing.T) {
	_, err := Compute([]string{"Folding"}, []ItemLine{{Type: enums.ItemTypeShirt, Quantity: 1}})
	require.Error(t, err)

	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidation, appErr.Code())
}

func TestComputeRejectsUnknownItemType(t *testing.T) {
	_, err := Compute([]string{"Washing"}, []ItemLine{{Type: enums.ItemType("Sock"), Quantity: 1}})
	require.Error(t, err)

	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidation, appErr.Code())
}

func TestComputeRejectsZeroQuantity(t *testing.T) {
	_, err := Compute([]string{"Washing"}, []ItemLine{{Type: enums.ItemTypeShirt, Quantity: 0}})
	require.Error(t, err)
}

func TestComputeRequiresServicesAndItems(t *testing.T) {
	_, err := Compute(nil, []ItemLine{{Type: enums.ItemTypeShirt, Quantity: 1}})
	require.Error(t, err)

	_, err = Compute([]string{"Washing"}, nil)
	require.Error(t, err)
}

func TestCatalogCoversAllEnums(t *testing.T) {
	services, items := Catalog()

	assert.Len(t, services, len(enums.ValidServiceTypes()))
	assert.Len(t, items, len(enums.ValidItemTypes()))

	fees := map[string]int64{}
	for _, service := range services {
		fees[service.Name] = service.Fee
	}
	assert.Equal(t, int64(50), fees["Washing"])
	assert.Equal(t, int64(30), fees["Ironing"])
	assert.Equal(t, int64(80), fees["Dry Cleaning"])
	assert.Equal(t, int64(100), fees["Express Delivery"])
}
