package savedsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayDescription(t *testing.T) {
	t.Run("Free text", func(t *testing.T) {
		assert.Equal(t, "Toyota Camry Under Budget", DisplayDescription("  toyota_camry   under budget ", SearchFilters{}))
	})

	t.Run("Acronyms stay upper case", func(t *testing.T) {
		assert.Equal(t, "Family SUV AWD", DisplayDescription("family suv awd", SearchFilters{}))
		assert.Equal(t, "SUV, Pickup Truck", Describe(SearchFilters{BodyTypes: []string{"suv", "pickup truck"}}))
	})

	t.Run("Derived from filters", func(t *testing.T) {
		got := DisplayDescription("", SearchFilters{
			Makes:      []string{"toyota", "honda"},
			BodyTypes:  []string{"suv"},
			MaxPrice:   intPtr(20000),
			MinYear:    intPtr(2019),
			MaxMileage: intPtr(60000),
		})
		assert.Equal(t, "Toyota, Honda; SUV; $0 - $20,000; 2019+; 0 mi - 60,000 mi", got)
	})

	t.Run("No filters", func(t *testing.T) {
		assert.Equal(t, "All vehicles", DisplayDescription("", SearchFilters{}))
	})
}

func TestFormatMileage(t *testing.T) {
	assert.Equal(t, "0", FormatMileage(0))
	assert.Equal(t, "999", FormatMileage(999))
	assert.Equal(t, "31,250", FormatMileage(31250))
	assert.Equal(t, "1,204,000", FormatMileage(1204000))
}
