// Package savedsearch models saved-search filters and results and turns them
// into the links and display text used by the saved-search emails.
package savedsearch

import (
	"github.com/tendant/simple-notify/pkg/inventory"
)

// SearchFilters is the structured form of a saved search. Every field is
// optional.
type SearchFilters struct {
	Makes         []string `json:"makes,omitempty"`
	BodyTypes     []string `json:"bodyTypes,omitempty"`
	MinPrice      *int     `json:"minPrice,omitempty"`
	MaxPrice      *int     `json:"maxPrice,omitempty"`
	MinYear       *int     `json:"minYear,omitempty"`
	MaxYear       *int     `json:"maxYear,omitempty"`
	MinMileage    *int     `json:"minMileage,omitempty"`
	MaxMileage    *int     `json:"maxMileage,omitempty"`
	Transmissions []string `json:"transmissions,omitempty"`
}

// ResultGroup is the set of new vehicles matching one saved search.
type ResultGroup struct {
	SearchName   string              `json:"searchName,omitempty"`
	CustomerName string              `json:"customerName,omitempty"`
	Filters      SearchFilters       `json:"filters"`
	Description  string              `json:"description,omitempty"`
	Vehicles     []inventory.Vehicle `json:"vehicles"`
}

// DigestVehicle is a vehicle with its display figures.
type DigestVehicle struct {
	inventory.Vehicle
	FormattedMileage string
	FormattedPrice   string
}

// DigestGroup is a ResultGroup prepared for the customer email.
type DigestGroup struct {
	SearchName  string
	Description string
	SearchURL   string
	Vehicles    []DigestVehicle
}

// Prepare builds the deep link and display text for every group.
func Prepare(webHost string, groups []ResultGroup) []DigestGroup {
	prepared := make([]DigestGroup, 0, len(groups))
	for _, g := range groups {
		vehicles := make([]DigestVehicle, 0, len(g.Vehicles))
		for _, v := range g.Vehicles {
			vehicles = append(vehicles, DigestVehicle{
				Vehicle:          v,
				FormattedMileage: FormatMileage(v.Mileage),
				FormattedPrice:   FormatPrice(v.Price),
			})
		}
		prepared = append(prepared, DigestGroup{
			SearchName:  g.SearchName,
			Description: DisplayDescription(g.Description, g.Filters),
			SearchURL:   BuildSearchURL(webHost, g.Filters),
			Vehicles:    vehicles,
		})
	}
	return prepared
}

// UniqueVehicles counts distinct vehicle ids across groups. Vehicles without
// an id are counted individually.
func UniqueVehicles(groups []ResultGroup) int {
	seen := make(map[string]struct{})
	anonymous := 0
	for _, g := range groups {
		for _, v := range g.Vehicles {
			if v.ID == "" {
				anonymous++
				continue
			}
			seen[v.ID] = struct{}{}
		}
	}
	return len(seen) + anonymous
}
