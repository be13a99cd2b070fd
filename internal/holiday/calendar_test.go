package holiday

import (
	"reflect"
	"testing"
)

const sampleJSON = `{
  "2026": {
    "nyse": [
      { "date": "2026-12-25", "name": "Christmas Day", "status": "closed" },
      { "date": "2026-01-01", "name": "New Year's Day", "status": "closed" },
      { "date": "2026-11-27", "name": "Day after Thanksgiving", "status": "early-close", "closeTime": "13:00" }
    ],
    "nasdaq": "nyse",
    "chain": "nasdaq"
  },
  "2027": {
    "nyse": [
      { "date": "2027-01-01", "name": "New Year's Day", "status": "closed" }
    ]
  }
}`

func mustParse(t *testing.T) *Calendar {
	t.Helper()
	cal, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	return cal
}

func TestEntriesForOrderedByDate(t *testing.T) {
	cal := mustParse(t)

	entries := cal.EntriesFor("nyse", 2026)
	if len(entries) != 3 {
		t.Fatalf("EntriesFor(nyse, 2026) returned %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Date > entries[i].Date {
			t.Errorf("entries out of order: %s before %s", entries[i-1].Date, entries[i].Date)
		}
	}
	if entries[0].Date != "2026-01-01" {
		t.Errorf("first entry = %s, want 2026-01-01", entries[0].Date)
	}
}

func TestAliasResolvesOneHop(t *testing.T) {
	cal := mustParse(t)

	direct := cal.EntriesFor("nyse", 2026)
	aliased := cal.EntriesFor("nasdaq", 2026)
	if !reflect.DeepEqual(direct, aliased) {
		t.Errorf("alias table differs from target: %v vs %v", aliased, direct)
	}
}

func TestAliasChainDegradesToNoHolidays(t *testing.T) {
	cal := mustParse(t)

	// "chain" aliases "nasdaq", which is itself an alias. Only one hop is
	// followed, so the lookup degrades to no holidays.
	if entries := cal.EntriesFor("chain", 2026); entries != nil {
		t.Errorf("EntriesFor(chain, 2026) = %v, want nil", entries)
	}
}

func TestMissingYearOrMarket(t *testing.T) {
	cal := mustParse(t)

	if entries := cal.EntriesFor("nyse", 2030); entries != nil {
		t.Errorf("absent year should yield nil, got %v", entries)
	}
	if entries := cal.EntriesFor("jpx", 2026); entries != nil {
		t.Errorf("absent market should yield nil, got %v", entries)
	}
	if entries := Empty().EntriesFor("nyse", 2026); entries != nil {
		t.Errorf("empty calendar should yield nil, got %v", entries)
	}
}

func TestEntryForDate(t *testing.T) {
	cal := mustParse(t)

	e := cal.EntryForDate("nyse", "2026-11-27")
	if e == nil {
		t.Fatalf("EntryForDate(nyse, 2026-11-27) = nil, want early-close entry")
	}
	if e.Status != StatusEarlyClose || e.CloseTime != "13:00" {
		t.Errorf("entry = %+v, want early-close at 13:00", e)
	}

	if e := cal.EntryForDate("nyse", "2026-07-04"); e != nil {
		t.Errorf("EntryForDate on a non-holiday = %+v, want nil", e)
	}
	if e := cal.EntryForDate("nyse", "bogus"); e != nil {
		t.Errorf("EntryForDate on a malformed date = %+v, want nil", e)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"2026": 42}`)); err == nil {
		t.Errorf("Parse accepted a malformed table")
	}
}
