// Package dashboard assembles per-market display views from classified
// session states. It is shared by the HTTP API and the terminal client so
// both render from the same formatted data.
package dashboard

import (
	"time"

	"github.com/can-finance/tradingclocks/internal/domain"
	"github.com/can-finance/tradingclocks/internal/session"
	"github.com/can-finance/tradingclocks/internal/tz"
)

// MarketView is one market's session state plus every formatted string the
// renderer needs for a clock card.
type MarketView struct {
	Market      domain.Market
	State       domain.SessionState
	LocalTime   string  // exchange-local clock, "9:30am"
	ZoneAbbrev  string  // exchange zone abbreviation, "EST"
	GMTOffset   float64 // exchange zone offset in decimal hours
	OffsetLabel string  // "GMT-5"
	ViewerTime  string  // next-event instant in the viewer's zone
	Countdown   string  // formatted time until next event
	StatusLabel string  // short human label for the state
}

// statusLabels maps each session state to its card label.
var statusLabels = map[domain.MarketState]string{
	domain.StateOpen:          "OPEN",
	domain.StateOnLunch:       "LUNCH BREAK",
	domain.StateBeforeOpen:    "CLOSED",
	domain.StateAfterClose:    "CLOSED",
	domain.StateWeekendClosed: "WEEKEND",
	domain.StateHolidayClosed: "HOLIDAY",
}

// StatusLabel returns the card label for a session state.
func StatusLabel(s domain.MarketState) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "CLOSED"
}

// BuildViews classifies every market at instant now and formats the result.
// overrides supplies per-market user time overrides (may be nil); viewerTZ
// is the display timezone for the next-event instant, empty meaning the
// process-local zone.
func BuildViews(cls *session.Classifier, markets []domain.Market, overrides map[string]domain.TimeOverride, now time.Time, viewerTZ string) []MarketView {
	views := make([]MarketView, 0, len(markets))
	for _, m := range markets {
		var ov *domain.TimeOverride
		if overrides != nil {
			if o, ok := overrides[m.ID]; ok {
				ov = &o
			}
		}
		st := cls.Classify(m, ov)

		localTime, abbrev := tz.FormatInTimezone(now, m.Timezone)
		offset := tz.GMTOffsetHours(now, m.Timezone)

		viewerTime := formatViewer(st.NextEventAt, viewerTZ)

		views = append(views, MarketView{
			Market:      m,
			State:       st,
			LocalTime:   localTime,
			ZoneAbbrev:  abbrev,
			GMTOffset:   offset,
			OffsetLabel: FormatGMTOffset(offset),
			ViewerTime:  viewerTime,
			Countdown:   FormatCountdown(st.TimeUntil),
			StatusLabel: StatusLabel(st.State),
		})
	}
	return views
}

// formatViewer renders t in the viewer's display timezone. An empty or
// unknown override falls back to the process-local zone.
func formatViewer(t time.Time, viewerTZ string) string {
	if viewerTZ != "" {
		if loc, err := time.LoadLocation(viewerTZ); err == nil {
			return t.In(loc).Format("Mon 3:04pm")
		}
	}
	return t.Local().Format("Mon 3:04pm")
}
