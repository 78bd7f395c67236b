// Package geocode implements the Address Aggregator + Geocoder (spec
// §4.7): normalization, batch cache lookup, and a bounded-concurrency
// fan-out to the geocoding provider with write-through, grounded on
// erenceh-delivery-route-api/internal/adapters/distance/ors_geocode.go's
// worker-pool shape and original_source/backend/app/excel_utils.py's
// address normalization.
package geocode

import (
	"regexp"
	"strings"
)

// mexicoStateCodes mirrors excel_utils.py's MX_STATE_CODES.
var mexicoStateCodes = map[string]bool{
	"AGU": true, "BCN": true, "BCS": true, "CAM": true, "CHP": true,
	"CHH": true, "CH": true, "CMX": true, "COA": true, "COL": true,
	"DUR": true, "GUA": true, "GRO": true, "HID": true, "JAL": true,
	"MEX": true, "MIC": true, "MOR": true, "NAY": true, "NLE": true,
	"OAX": true, "PUE": true, "QUE": true, "ROO": true, "SLP": true,
	"SIN": true, "SON": true, "TAB": true, "TAM": true, "TLA": true,
	"VER": true, "YUC": true, "ZAC": true,
}

var nonAlnumCommaSpace = regexp.MustCompile(`[^a-zA-Z0-9, ]`)
var repeatedSpace = regexp.MustCompile(`\s+`)

// Parts is a normalized address, ready either for caching or for
// building a provider query string.
type Parts struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// NormalizeParts cleans raw address fragments: trims whitespace,
// upper-cases state, strips non-digits from zip, and infers country
// from the state code (Mexico vs. USA).
func NormalizeParts(street, city, state, zip string) Parts {
	clean := func(s string) string { return strings.TrimSpace(s) }

	p := Parts{Street: clean(street), City: clean(city), State: strings.ToUpper(clean(state)), Zip: clean(zip)}
	if p.Zip != "" {
		var digits strings.Builder
		for _, r := range p.Zip {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		zipDigits := digits.String()
		if len(zipDigits) > 10 {
			zipDigits = zipDigits[:10]
		}
		p.Zip = zipDigits
	}
	if mexicoStateCodes[p.State] {
		p.Country = "Mexico"
	} else {
		p.Country = "USA"
	}
	return p
}

// NormalizedKey builds the cache key: lower(street), lower(city),
// upper(state), zip, lower(country), comma-joined, with each part
// trimmed, runs of whitespace collapsed to one space, and punctuation
// removed (spec §4.7).
func (p Parts) NormalizedKey() string {
	comp := []string{
		strings.ToLower(strings.TrimSpace(p.Street)),
		strings.ToLower(strings.TrimSpace(p.City)),
		strings.ToUpper(strings.TrimSpace(p.State)),
		strings.TrimSpace(p.Zip),
		strings.ToLower(orDefault(p.Country, "USA")),
	}
	joined := strings.Join(comp, ",")
	joined = repeatedSpace.ReplaceAllString(joined, " ")
	return nonAlnumCommaSpace.ReplaceAllString(joined, "")
}

// Query builds the free-text string sent to the geocoding provider.
func (p Parts) Query() string {
	comps := []string{p.Street, p.City, p.State, p.Zip, "USA"}
	var kept []string
	for _, c := range comps {
		if strings.TrimSpace(c) != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, ", ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
