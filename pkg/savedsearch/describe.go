package savedsearch

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Words kept upper case in display text.
var acronyms = map[string]string{
	"suv": "SUV",
	"awd": "AWD",
	"4wd": "4WD",
	"fwd": "FWD",
	"rwd": "RWD",
	"cvt": "CVT",
	"bmw": "BMW",
	"gmc": "GMC",
}

// titleCase title-cases s word by word, keeping known acronyms upper case.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if a, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = a
			continue
		}
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// DisplayDescription returns a human readable summary of a saved search. A
// free-text description is cleaned up and title-cased; without one the
// summary is derived from filters.
func DisplayDescription(description string, f SearchFilters) string {
	if description = strings.TrimSpace(description); description != "" {
		cleaned := strings.NewReplacer("_", " ", "+", " ").Replace(description)
		return titleCase(cleaned)
	}
	return Describe(f)
}

// Describe summarizes filters, e.g. "Toyota, Honda; SUV; $0 - $20,000".
func Describe(f SearchFilters) string {
	var parts []string
	if len(f.Makes) > 0 {
		parts = append(parts, titleList(f.Makes))
	}
	if len(f.BodyTypes) > 0 {
		parts = append(parts, titleList(f.BodyTypes))
	}
	if s := describeRange(f.MinPrice, f.MaxPrice, func(n int) string { return "$" + FormatPrice(n) }); s != "" {
		parts = append(parts, s)
	}
	if s := describeRange(f.MinYear, f.MaxYear, strconv.Itoa); s != "" {
		parts = append(parts, s)
	}
	if s := describeRange(f.MinMileage, f.MaxMileage, func(n int) string { return FormatMileage(n) + " mi" }); s != "" {
		parts = append(parts, s)
	}
	if len(f.Transmissions) > 0 {
		parts = append(parts, titleList(f.Transmissions))
	}
	if len(parts) == 0 {
		return "All vehicles"
	}
	return strings.Join(parts, "; ")
}

// FormatMileage renders a mileage with thousands separators, e.g. "31,250".
func FormatMileage(mileage int) string {
	return humanize.Comma(int64(mileage))
}

// FormatPrice renders a price with thousands separators.
func FormatPrice(price int) string {
	return humanize.Comma(int64(price))
}

func titleList(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, titleCase(v))
		}
	}
	return strings.Join(out, ", ")
}

func describeRange(min, max *int, format func(int) string) string {
	switch {
	case min != nil && max != nil:
		return format(*min) + " - " + format(*max)
	case min != nil:
		return format(*min) + "+"
	case max != nil:
		return format(0) + " - " + format(*max)
	}
	return ""
}
