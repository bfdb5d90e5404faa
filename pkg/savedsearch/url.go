package savedsearch

import (
	"net/url"
	"strconv"
	"strings"
)

// BuildSearchURL returns the web-app deep link for filters:
//
//	{webHost}/cars/{make1+make2}?bodyType=a+b&price=min-max&year=min-max&mileage=min-max&transmission=a+b
//
// Only present filters appear. Multi-word values keep their space as %20. A range with a max and no min starts at 0.
func BuildSearchURL(webHost string, f SearchFilters) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(webHost, "/"))
	b.WriteString("/cars")

	if makes := joinEscaped(f.Makes); makes != "" {
		b.WriteString("/")
		b.WriteString(makes)
	}

	var params []string
	if v := joinEscaped(f.BodyTypes); v != "" {
		params = append(params, "bodyType="+v)
	}
	if v := formatRange(f.MinPrice, f.MaxPrice); v != "" {
		params = append(params, "price="+v)
	}
	if v := formatRange(f.MinYear, f.MaxYear); v != "" {
		params = append(params, "year="+v)
	}
	if v := formatRange(f.MinMileage, f.MaxMileage); v != "" {
		params = append(params, "mileage="+v)
	}
	if v := joinEscaped(f.Transmissions); v != "" {
		params = append(params, "transmission="+v)
	}

	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

// joinEscaped lowercases and escapes each value and joins them with a literal
// "+". Spaces and "+" inside a value are percent-encoded so the separator
// stays unambiguous.
func joinEscaped(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(url.PathEscape(v), "+", "%2B"))
	}
	return strings.Join(parts, "+")
}

func formatRange(min, max *int) string {
	if min == nil && max == nil {
		return ""
	}
	lo := 0
	if min != nil {
		lo = *min
	}
	hi := ""
	if max != nil {
		hi = strconv.Itoa(*max)
	}
	return strconv.Itoa(lo) + "-" + hi
}
