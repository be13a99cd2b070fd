// Package domain defines the core reference and computed types for the
// trading-clocks platform: markets, user time overrides, holiday entries,
// and per-tick session state.
package domain

import (
	"fmt"
	"time"
)

// Region groups exchanges for display purposes.
type Region string

const (
	RegionAmericas Region = "americas"
	RegionEMEA     Region = "emea"
	RegionAPAC     Region = "apac"
)

// Market is the immutable reference record for one exchange. All wall-clock
// times are exchange-local "HH:MM" strings; Timezone is an IANA zone name.
type Market struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Timezone    string `json:"timezone"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	Region      Region `json:"region"`
	DSTStart    string `json:"dstStart,omitempty"`
	DSTEnd      string `json:"dstEnd,omitempty"`
	LunchStart  string `json:"lunchStart,omitempty"`
	LunchEnd    string `json:"lunchEnd,omitempty"`
}

// HasLunch reports whether the market configures a midday trading break.
func (m Market) HasLunch() bool {
	return m.LunchStart != "" && m.LunchEnd != ""
}

// Validate checks the structural invariants of a market record. On any
// trading day without a holiday override the session boundaries must satisfy
// open <= lunchStart < lunchEnd <= close.
func (m Market) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("market has no id")
	}
	if m.Timezone == "" {
		return fmt.Errorf("market %s has no timezone", m.ID)
	}
	if !validHHMM(m.OpenTime) || !validHHMM(m.CloseTime) {
		return fmt.Errorf("market %s has malformed open/close times %q-%q", m.ID, m.OpenTime, m.CloseTime)
	}
	if m.OpenTime >= m.CloseTime {
		return fmt.Errorf("market %s opens at %s but closes at %s", m.ID, m.OpenTime, m.CloseTime)
	}
	if m.LunchStart == "" && m.LunchEnd == "" {
		return nil
	}
	if !validHHMM(m.LunchStart) || !validHHMM(m.LunchEnd) {
		return fmt.Errorf("market %s has malformed lunch times %q-%q", m.ID, m.LunchStart, m.LunchEnd)
	}
	if m.OpenTime > m.LunchStart || m.LunchStart >= m.LunchEnd || m.LunchEnd > m.CloseTime {
		return fmt.Errorf("market %s lunch %s-%s falls outside session %s-%s",
			m.ID, m.LunchStart, m.LunchEnd, m.OpenTime, m.CloseTime)
	}
	return nil
}

// validHHMM reports whether s is a zero-padded 24h "HH:MM" string. Lexical
// comparison of times elsewhere relies on this shape.
func validHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for i, c := range s {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return s[:2] < "24" && s[3:] < "60"
}

// TimeOverride is a per-market user customization of the open/close times.
// A nil field means "use the market default". Overrides never mutate the
// Market record itself.
type TimeOverride struct {
	OpenTime  *string `json:"openTime"`
	CloseTime *string `json:"closeTime"`
}

// Validate checks that every set override field is a zero-padded 24h "HH:MM"
// string, the same shape the lexical time comparisons rely on. An empty
// string is treated like a nil field.
func (ov TimeOverride) Validate() error {
	if ov.OpenTime != nil && *ov.OpenTime != "" && !validHHMM(*ov.OpenTime) {
		return fmt.Errorf("malformed open time override %q", *ov.OpenTime)
	}
	if ov.CloseTime != nil && *ov.CloseTime != "" && !validHHMM(*ov.CloseTime) {
		return fmt.Errorf("malformed close time override %q", *ov.CloseTime)
	}
	return nil
}

// MarketState is the mutually exclusive classification of one market at one
// instant.
type MarketState string

const (
	StateWeekendClosed MarketState = "weekend-closed"
	StateHolidayClosed MarketState = "holiday-closed"
	StateBeforeOpen    MarketState = "before-open"
	StateOpen          MarketState = "open"
	StateOnLunch       MarketState = "on-lunch"
	StateAfterClose    MarketState = "after-close"
)

// EventKind names the next session transition for a market.
type EventKind string

const (
	EventOpens       EventKind = "opens"
	EventCloses      EventKind = "closes"
	EventLunchStarts EventKind = "lunch-starts"
	EventReopens     EventKind = "reopens"
)

// SessionState is the computed output of classification for one market at
// one instant. It is rebuilt from scratch on every tick and never persisted.
type SessionState struct {
	State       MarketState
	Open        bool
	Weekend     bool
	Lunch       bool
	Holiday     bool
	HolidayName string
	NextEvent   EventKind
	NextEventAt time.Time
	TimeUntil   time.Duration
}
