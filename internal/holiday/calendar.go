// Package holiday holds the year- and market-indexed table of exchange
// closures and early closes, including one-hop alias resolution for markets
// that share another exchange's calendar.
package holiday

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Status classifies a holiday entry.
type Status string

const (
	StatusClosed     Status = "closed"
	StatusEarlyClose Status = "early-close"
)

// Entry is one exchange-local calendar date for one market in one year.
// CloseTime is set only for early closes and replaces the market's default
// close for that day.
type Entry struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Status    Status `json:"status"`
	CloseTime string `json:"closeTime,omitempty"`
}

// marketTable is the tagged variant behind the JSON union: a market's
// holidays for a year are either a direct entry list or an alias naming
// another market in the same year.
type marketTable struct {
	alias   string
	entries []Entry
}

// UnmarshalJSON accepts either a JSON string (alias) or an array of entries.
func (t *marketTable) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.alias)
	}
	return json.Unmarshal(data, &t.entries)
}

// Calendar is the full holiday table, keyed by year then market id.
// It is loaded once from JSON and treated as read-only afterwards.
type Calendar struct {
	years map[string]map[string]marketTable
}

// Parse builds a Calendar from the external JSON document shaped as
// {year: {marketId: [entry, ...] | aliasMarketId}}.
func Parse(data []byte) (*Calendar, error) {
	var years map[string]map[string]marketTable
	if err := json.Unmarshal(data, &years); err != nil {
		return nil, fmt.Errorf("parsing holiday table: %w", err)
	}
	// Keep each direct table ordered by date so callers see a stable,
	// chronological sequence.
	for _, markets := range years {
		for id, table := range markets {
			if table.alias != "" {
				continue
			}
			sort.Slice(table.entries, func(i, j int) bool {
				return table.entries[i].Date < table.entries[j].Date
			})
			markets[id] = table
		}
	}
	return &Calendar{years: years}, nil
}

// Empty returns a calendar with no entries; every lookup resolves to
// "no holidays".
func Empty() *Calendar {
	return &Calendar{years: map[string]map[string]marketTable{}}
}

// EntriesFor returns the market's holiday entries for a year, ordered by
// date. A string-valued table is re-looked-up once as another market id
// within the same year; an alias pointing at another alias degrades to no
// holidays rather than chasing a chain. Absent years or markets yield nil.
func (c *Calendar) EntriesFor(marketID string, year int) []Entry {
	markets, ok := c.years[strconv.Itoa(year)]
	if !ok {
		return nil
	}
	table, ok := markets[marketID]
	if !ok {
		return nil
	}
	if table.alias != "" {
		table, ok = markets[table.alias]
		if !ok || table.alias != "" {
			return nil
		}
	}
	return table.entries
}

// EntryForDate returns the entry whose date exactly matches the given
// "2006-01-02" date, or nil if the market has no entry that day.
func (c *Calendar) EntryForDate(marketID, date string) *Entry {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	for _, e := range c.EntriesFor(marketID, year) {
		if e.Date == date {
			entry := e
			return &entry
		}
	}
	return nil
}
