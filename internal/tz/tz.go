// Package tz converts between exchange-local wall-clock times and absolute
// instants. Offsets are derived empirically by rendering the same instant in
// the target zone and in UTC and diffing the wall-clock fields. A bad zone
// name degrades to a zero offset instead of failing, so the display keeps
// rendering.
package tz

import (
	"time"
)

const minutesPerDay = 24 * 60

// OffsetMinutes returns the signed UTC offset, in minutes, in effect in the
// named IANA timezone at instant t. Positive means ahead of UTC. An unknown
// timezone yields 0.
func OffsetMinutes(t time.Time, timezone string) int {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0
	}

	local := t.In(loc)
	utc := t.UTC()

	raw := (local.Hour()*60 + local.Minute()) - (utc.Hour()*60 + utc.Minute())

	// The wall-clock difference alone is ambiguous when the two renderings
	// fall on different calendar days (dateline-adjacent zones); correct by
	// the day difference between them.
	ld := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	ud := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case ld.After(ud):
		raw += minutesPerDay
	case ld.Before(ud):
		raw -= minutesPerDay
	}

	return raw
}

// ToInstant converts an exchange-local calendar date ("2006-01-02") and wall
// time ("15:04") in the named timezone to the absolute instant. The date and
// time are first read literally as UTC, then corrected by the offset the
// zone has around that instant. One correction pass is exact except inside
// the skipped/ambiguous local-time window of a DST transition itself, where
// the platform's own zone rules are the arbiter.
func ToInstant(date, hhmm, timezone string) time.Time {
	naive, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		return time.Time{}
	}
	off := OffsetMinutes(naive, timezone)
	return naive.Add(-time.Duration(off) * time.Minute)
}

// LocalDate returns the calendar date ("2006-01-02") and weekday of instant
// t as observed in the named timezone. An unknown timezone falls back to
// UTC.
func LocalDate(t time.Time, timezone string) (string, time.Weekday) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return local.Format("2006-01-02"), local.Weekday()
}

// GMTOffsetHours returns the zone's UTC offset at instant t as signed
// decimal hours (9, -5, 5.5). Unknown timezones yield 0.
func GMTOffsetHours(t time.Time, timezone string) float64 {
	return float64(OffsetMinutes(t, timezone)) / 60
}

// FormatInTimezone renders instant t as a 12-hour clock string with a
// lowercase am/pm suffix and no separating space ("9:30am"), plus the zone's
// short abbreviation ("EST"). Unknown timezones render in UTC.
func FormatInTimezone(t time.Time, timezone string) (display, abbrev string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := t.In(loc)
	display = local.Format("3:04pm")
	abbrev, _ = local.Zone()
	return display, abbrev
}
