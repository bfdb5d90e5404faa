package savedsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name    string
		filters SearchFilters
		want    string
	}{
		{
			name:    "Makes and max price",
			filters: SearchFilters{Makes: []string{"toyota", "honda"}, MaxPrice: intPtr(20000)},
			want:    "https://cars.example.com/cars/toyota+honda?price=0-20000",
		},
		{
			name:    "No filters",
			filters: SearchFilters{},
			want:    "https://cars.example.com/cars",
		},
		{
			name: "Every filter",
			filters: SearchFilters{
				Makes:         []string{"Land Rover"},
				BodyTypes:     []string{"suv", "pickup truck"},
				MinPrice:      intPtr(10000),
				MaxPrice:      intPtr(40000),
				MinYear:       intPtr(2018),
				MinMileage:    intPtr(0),
				MaxMileage:    intPtr(50000),
				Transmissions: []string{"automatic"},
			},
			want: "https://cars.example.com/cars/land%20rover?bodyType=suv+pickup%20truck&price=10000-40000&year=2018-&mileage=0-50000&transmission=automatic",
		},
		{
			name:    "Multi-word values",
			filters: SearchFilters{BodyTypes: []string{"sport utility"}, Transmissions: []string{"Dual Clutch", "manual"}},
			want:    "https://cars.example.com/cars?bodyType=sport%20utility&transmission=dual%20clutch+manual",
		},
		{
			name:    "Plus inside a value",
			filters: SearchFilters{Makes: []string{"a+b"}},
			want:    "https://cars.example.com/cars/a%2Bb",
		},
		{
			name:    "Blank values are dropped",
			filters: SearchFilters{Makes: []string{"", " "}, BodyTypes: []string{""}},
			want:    "https://cars.example.com/cars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchURL("https://cars.example.com/", tt.filters))
		})
	}
}

func TestBuildSearchURL_Properties(t *testing.T) {
	link := BuildSearchURL("https://cars.example.com", SearchFilters{
		Makes:    []string{"toyota", "honda"},
		MaxPrice: intPtr(20000),
	})
	assert.Contains(t, link, "toyota+honda")
	assert.Contains(t, link, "price=0-20000")
	assert.NotContains(t, link, "year=")
	assert.NotContains(t, link, "mileage=")
}

func TestBuildSearchURL_ListSeparatorIsUnambiguous(t *testing.T) {
	oneType := BuildSearchURL("https://x", SearchFilters{BodyTypes: []string{"sport utility"}})
	twoTypes := BuildSearchURL("https://x", SearchFilters{BodyTypes: []string{"sport", "utility"}})

	assert.NotEqual(t, oneType, twoTypes)
	assert.Equal(t, "https://x/cars?bodyType=sport+utility", twoTypes)

	oneTrans := BuildSearchURL("https://x", SearchFilters{Transmissions: []string{"dual clutch"}})
	twoTrans := BuildSearchURL("https://x", SearchFilters{Transmissions: []string{"dual", "clutch"}})
	assert.NotEqual(t, oneTrans, twoTrans)
}
