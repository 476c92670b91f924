// Package locations provides the airport directory and the searchable
// picker used by every origin/destination field.
package locations

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// MaxResults caps every non-empty search
const MaxResults = 50

// displaySeparator splits "JFK - New York, United States" into code and place
const displaySeparator = " - "

// Entry is one known airport
type Entry struct {
	Code    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// PopularCodes is the curated shortlist shown before anything is typed
var PopularCodes = []string{
	"JFK", "LAX", "LHR", "CDG", "DXB", "SIN", "HKG", "NRT", "SFO", "ORD",
	"MIA", "AMS", "FRA", "IST", "BCN", "FCO", "SYD", "BKK", "ICN", "DEL",
}

//go:embed airports.json
var airportsJSON []byte

var defaultDirectory *Directory

func init() {
	var entries []Entry
	if err := json.Unmarshal(airportsJSON, &entries); err != nil {
		panic(fmt.Sprintf("locations: embedded airports.json is invalid: %v", err))
	}
	defaultDirectory = NewDirectory(entries, PopularCodes)
}

// Default returns the directory loaded from the embedded reference set
func Default() *Directory {
	return defaultDirectory
}

// Directory is an immutable, in-memory airport lookup. It is safe for
// concurrent use.
type Directory struct {
	entries []Entry
	byCode  map[string]int
	popular []Entry
}

// NewDirectory builds a directory over entries (in the given order) with
// the given popular shortlist. The popular list keeps directory order.
func NewDirectory(entries []Entry, popularCodes []string) *Directory {
	d := &Directory{
		entries: make([]Entry, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	copy(d.entries, entries)
	for i, e := range d.entries {
		key := strings.ToUpper(e.Code)
		if _, dup := d.byCode[key]; !dup {
			d.byCode[key] = i
		}
	}

	popular := make(map[string]bool, len(popularCodes))
	for _, c := range popularCodes {
		popular[strings.ToUpper(c)] = true
	}
	for _, e := range d.entries {
		if popular[strings.ToUpper(e.Code)] {
			d.popular = append(d.popular, e)
		}
	}
	return d
}

// Len returns the number of entries
func (d *Directory) Len() int {
	return len(d.entries)
}

// Search returns the popular shortlist for an empty query, otherwise every
// entry whose city, name, code or country contains the query
// (case-insensitive), in directory order, capped at MaxResults.
func (d *Directory) Search(query string) []Entry {
	if query == "" {
		out := make([]Entry, len(d.popular))
		copy(out, d.popular)
		return out
	}

	var out []Entry
	for _, e := range d.entries {
		if Matches(e, query) {
			out = append(out, e)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

// Matches reports whether e satisfies the search predicate for query
func Matches(e Entry, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.City), q) ||
		strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Code), q) ||
		strings.Contains(strings.ToLower(e.Country), q)
}

// Lookup finds an entry by code. Unknown codes report false.
func (d *Directory) Lookup(code string) (Entry, bool) {
	i, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// FindByCity returns the first entry whose city equals city, ignoring case
func (d *Directory) FindByCity(city string) (Entry, bool) {
	c := strings.TrimSpace(city)
	for _, e := range d.entries {
		if strings.EqualFold(e.City, c) {
			return e, true
		}
	}
	return Entry{}, false
}

// Format renders the stored display form "JFK - New York, United States"
func Format(e Entry) string {
	return e.Code + displaySeparator + e.City + ", " + e.Country
}

// ExtractCode returns the code part of a stored value. Both "BCN" and
// "BCN - Barcelona, Spain" yield "BCN".
func ExtractCode(value string) string {
	if i := strings.Index(value, displaySeparator); i > 0 {
		return value[:i]
	}
	return value
}
