package dashboard

import (
	"testing"
	"time"

	"github.com/can-finance/tradingclocks/internal/domain"
	"github.com/can-finance/tradingclocks/internal/session"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func TestBuildViews(t *testing.T) {
	markets := []domain.Market{
		{
			ID: "nyse", Name: "New York Stock Exchange", Code: "NYSE",
			Timezone: "America/New_York", OpenTime: "09:30", CloseTime: "16:00",
			Region: domain.RegionAmericas,
		},
		{
			ID: "jpx", Name: "Japan Exchange Group", Code: "JPX",
			Timezone: "Asia/Tokyo", OpenTime: "09:00", CloseTime: "15:30",
			LunchStart: "11:30", LunchEnd: "12:30",
			Region: domain.RegionAPAC,
		},
	}

	// Monday 2026-01-05 18:00 UTC: NYSE mid-session (13:00 EST); in Tokyo
	// it is already 03:00 JST on Tuesday, before that day's open.
	now := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC)
	cls := session.NewClassifier(fixedClock{now}, nil)

	views := BuildViews(cls, markets, nil, now, "UTC")
	if len(views) != 2 {
		t.Fatalf("BuildViews returned %d views, want 2", len(views))
	}

	ny := views[0]
	if ny.State.State != domain.StateOpen {
		t.Errorf("NYSE state = %s, want open", ny.State.State)
	}
	if ny.StatusLabel != "OPEN" {
		t.Errorf("NYSE label = %q, want OPEN", ny.StatusLabel)
	}
	if ny.LocalTime != "1:00pm" || ny.ZoneAbbrev != "EST" {
		t.Errorf("NYSE local clock = %q %q, want 1:00pm EST", ny.LocalTime, ny.ZoneAbbrev)
	}
	if ny.GMTOffset != -5 || ny.OffsetLabel != "GMT-5" {
		t.Errorf("NYSE offset = %v %q, want -5 GMT-5", ny.GMTOffset, ny.OffsetLabel)
	}
	if ny.Countdown != "03:00:00" {
		t.Errorf("NYSE countdown = %q, want 03:00:00", ny.Countdown)
	}

	tokyo := views[1]
	if tokyo.State.State != domain.StateBeforeOpen {
		t.Errorf("JPX state = %s, want before-open", tokyo.State.State)
	}
	if tokyo.Countdown == "" || tokyo.ViewerTime == "" {
		t.Errorf("JPX formatted fields missing: %+v", tokyo)
	}
}

func TestBuildViewsAppliesOverrides(t *testing.T) {
	m := domain.Market{
		ID: "nyse", Timezone: "America/New_York",
		OpenTime: "09:30", CloseTime: "16:00", Region: domain.RegionAmericas,
	}
	now := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC) // 13:00 EST
	cls := session.NewClassifier(fixedClock{now}, nil)

	closeEarly := "13:00"
	overrides := map[string]domain.TimeOverride{
		"nyse": {CloseTime: &closeEarly},
	}
	views := BuildViews(cls, []domain.Market{m}, overrides, now, "")
	if views[0].State.State != domain.StateAfterClose {
		t.Errorf("override close 13:00 ignored: state = %s", views[0].State.State)
	}
}
