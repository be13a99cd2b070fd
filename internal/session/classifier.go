// Package session classifies markets against the current instant, weekend
// rules, and the holiday calendar, producing the session state and countdown
// that drive the display.
package session

import (
	"time"

	"github.com/can-finance/tradingclocks/internal/clock"
	"github.com/can-finance/tradingclocks/internal/domain"
	"github.com/can-finance/tradingclocks/internal/holiday"
	"github.com/can-finance/tradingclocks/internal/tz"
)

// maxSearchDays bounds the next-trading-day search. A market closed for two
// consecutive weeks is treated as a configuration anomaly: the search then
// returns its last candidate rather than failing.
// TODO: surface search exhaustion to the loader's validation pass so broken
// holiday tables are visible before they reach the display.
const maxSearchDays = 14

// Classifier computes session states. It owns no mutable state of its own;
// the injected clock source is the only way it observes time, so simulated
// time flows through without special-casing.
type Classifier struct {
	clock clock.Source
	cal   *holiday.Calendar
}

// NewClassifier builds a Classifier reading time from src and holidays from
// cal. A nil cal means no market has holidays.
func NewClassifier(src clock.Source, cal *holiday.Calendar) *Classifier {
	if cal == nil {
		cal = holiday.Empty()
	}
	return &Classifier{clock: src, cal: cal}
}

// Classify computes the session state for one market at the current instant.
// ov, when non-nil, replaces the market's default open/close times field by
// field. The function is total: every branch yields a next event strictly in
// the future, so TimeUntil is never negative.
func (c *Classifier) Classify(m domain.Market, ov *domain.TimeOverride) domain.SessionState {
	now := c.clock.Now()

	// Overrides are validated at the API boundary; a malformed one that
	// slipped into storage anyway would poison the instant math, so it is
	// ignored wholesale here.
	if ov != nil && ov.Validate() != nil {
		ov = nil
	}

	openTime, closeTime := m.OpenTime, m.CloseTime
	if ov != nil {
		if ov.OpenTime != nil && *ov.OpenTime != "" {
			openTime = *ov.OpenTime
		}
		if ov.CloseTime != nil && *ov.CloseTime != "" {
			closeTime = *ov.CloseTime
		}
	}

	date, weekday := tz.LocalDate(now, m.Timezone)
	entry := c.cal.EntryForDate(m.ID, date)

	// Full-closure holiday takes precedence over everything, including the
	// weekend rule.
	if entry != nil && entry.Status == holiday.StatusClosed {
		openAt, _ := c.nextTradingDay(m, addDays(date, 1), openTime)
		return domain.SessionState{
			State:       domain.StateHolidayClosed,
			Holiday:     true,
			HolidayName: entry.Name,
			NextEvent:   domain.EventOpens,
			NextEventAt: openAt,
			TimeUntil:   openAt.Sub(now),
		}
	}

	if weekday == time.Saturday || weekday == time.Sunday {
		start := addDays(date, 1)
		if weekday == time.Saturday {
			start = addDays(date, 2)
		}
		openAt, skipped := c.nextTradingDay(m, start, openTime)
		return domain.SessionState{
			State:       domain.StateWeekendClosed,
			Weekend:     true,
			HolidayName: skipped,
			NextEvent:   domain.EventOpens,
			NextEventAt: openAt,
			TimeUntil:   openAt.Sub(now),
		}
	}

	// An early close replaces the effective close for the rest of this
	// classification.
	holidayName := ""
	isHoliday := false
	if entry != nil && entry.Status == holiday.StatusEarlyClose {
		if entry.CloseTime != "" {
			closeTime = entry.CloseTime
		}
		holidayName = entry.Name
		isHoliday = true
	}

	// The lunch break exists only when trading resumes after it. A close
	// (early or overridden) at or inside the lunch window ends the session
	// at the lunch start instead.
	lunch := m.HasLunch() && m.LunchEnd < closeTime
	if m.HasLunch() && !lunch && closeTime > m.LunchStart {
		closeTime = m.LunchStart
	}

	openAt := tz.ToInstant(date, openTime, m.Timezone)
	closeAt := tz.ToInstant(date, closeTime, m.Timezone)

	if now.Before(openAt) {
		return domain.SessionState{
			State:       domain.StateBeforeOpen,
			Holiday:     isHoliday,
			HolidayName: holidayName,
			NextEvent:   domain.EventOpens,
			NextEventAt: openAt,
			TimeUntil:   openAt.Sub(now),
		}
	}

	if lunch {
		lunchStartAt := tz.ToInstant(date, m.LunchStart, m.Timezone)
		lunchEndAt := tz.ToInstant(date, m.LunchEnd, m.Timezone)
		if !now.Before(lunchStartAt) && now.Before(lunchEndAt) {
			return domain.SessionState{
				State:       domain.StateOnLunch,
				Lunch:       true,
				Holiday:     isHoliday,
				HolidayName: holidayName,
				NextEvent:   domain.EventReopens,
				NextEventAt: lunchEndAt,
				TimeUntil:   lunchEndAt.Sub(now),
			}
		}
		if now.Before(lunchStartAt) {
			return domain.SessionState{
				State:       domain.StateOpen,
				Open:        true,
				Holiday:     isHoliday,
				HolidayName: holidayName,
				NextEvent:   domain.EventLunchStarts,
				NextEventAt: lunchStartAt,
				TimeUntil:   lunchStartAt.Sub(now),
			}
		}
	}

	if now.Before(closeAt) {
		return domain.SessionState{
			State:       domain.StateOpen,
			Open:        true,
			Holiday:     isHoliday,
			HolidayName: holidayName,
			NextEvent:   domain.EventCloses,
			NextEventAt: closeAt,
			TimeUntil:   closeAt.Sub(now),
		}
	}

	// After close. Starting from Monday after a Friday close is a shortcut;
	// the search skips weekends regardless.
	start := addDays(date, 1)
	if weekday == time.Friday {
		start = addDays(date, 3)
	}
	openAt2, skipped := c.nextTradingDay(m, start, openTime)
	return domain.SessionState{
		State:       domain.StateAfterClose,
		Holiday:     isHoliday,
		HolidayName: firstNonEmpty(skipped, holidayName),
		NextEvent:   domain.EventOpens,
		NextEventAt: openAt2,
		TimeUntil:   openAt2.Sub(now),
	}
}

// nextTradingDay finds the first candidate date at or after start that is
// neither a weekend day nor a full-closure holiday, and returns that day's
// open instant plus the name of the last holiday skipped on the way. The
// search is bounded; on exhaustion it returns the last candidate's open as
// a degraded fallback.
func (c *Classifier) nextTradingDay(m domain.Market, start, openTime string) (time.Time, string) {
	date := start
	skipped := ""
	for i := 0; i < maxSearchDays; i++ {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			break
		}
		switch d.Weekday() {
		case time.Saturday:
			date = addDays(date, 2)
			continue
		case time.Sunday:
			date = addDays(date, 1)
			continue
		}
		if e := c.cal.EntryForDate(m.ID, date); e != nil && e.Status == holiday.StatusClosed {
			skipped = e.Name
			date = addDays(date, 1)
			continue
		}
		return tz.ToInstant(date, openTime, m.Timezone), skipped
	}
	return tz.ToInstant(date, openTime, m.Timezone), skipped
}

// addDays shifts a "2006-01-02" date by n calendar days.
func addDays(date string, n int) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, n).Format("2006-01-02")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
