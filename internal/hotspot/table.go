package hotspot

import (
	"fmt"
	"sort"
	"strconv"
)

// Row is one line of the per-point table: rounded coordinates and the
// country the point falls in.
type Row struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Cells returns the row as table cell text.
func (r Row) Cells() []string {
	return []string{FormatCoord(r.Lat), FormatCoord(r.Lon), r.Country}
}

// RowHeaders are the column labels of the per-point table.
var RowHeaders = []string{"latitude", "longitude", "country"}

// Round2 rounds v to two decimal places the way printf's %.2f does: the
// exact binary value is rounded, so 12.3456 gives 12.35 and an exact half
// such as 0.125 goes to the even digit, 0.12.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatCoord renders a coordinate with exactly two decimals.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// Rows pairs every point with its country. countries must be parallel to set.
func Rows(set Set, countries []string) ([]Row, error) {
	if len(set) != len(countries) {
		return nil, fmt.Errorf("%w: %d hotspots, %d countries", ErrLengthMismatch, len(set), len(countries))
	}
	rows := make([]Row, len(set))
	for i, p := range set {
		rows[i] = Row{Lat: Round2(p.Lat), Lon: Round2(p.Lon), Country: countries[i]}
	}
	return rows, nil
}

// CountryCount is the number of hotspots assigned to one country.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// Summary is the per-country table. Counts is sorted by count, largest
// first, with ties broken by country name.
type Summary struct {
	Counts []CountryCount `json:"counts"`
	Total  int            `json:"total"`
}

// CountHeaders are the column labels of the per-country table.
var CountHeaders = []string{"number"}

// Summarize counts occurrences of each country name. The counts always sum
// to len(countries).
func Summarize(countries []string) Summary {
	byName := make(map[string]int)
	for _, c := range countries {
		byName[c]++
	}

	counts := make([]CountryCount, 0, len(byName))
	for name, n := range byName {
		counts = append(counts, CountryCount{Country: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Country < counts[j].Country
	})

	return Summary{Counts: counts, Total: len(countries)}
}
