package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/can-finance/tradingclocks/internal/domain"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestTimeOverrideRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ov := domain.TimeOverride{OpenTime: strPtr("10:00"), CloseTime: strPtr("15:00")}
	if err := s.SaveTimeOverride(ctx, "nyse", ov); err != nil {
		t.Fatalf("SaveTimeOverride: %v", err)
	}

	// Partial override: only the close changes, open stays NULL.
	half := domain.TimeOverride{CloseTime: strPtr("13:00")}
	if err := s.SaveTimeOverride(ctx, "lse", half); err != nil {
		t.Fatalf("SaveTimeOverride: %v", err)
	}

	got, err := s.TimeOverrides(ctx)
	if err != nil {
		t.Fatalf("TimeOverrides: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("TimeOverrides returned %d entries, want 2", len(got))
	}
	if *got["nyse"].OpenTime != "10:00" || *got["nyse"].CloseTime != "15:00" {
		t.Errorf("nyse override = %+v", got["nyse"])
	}
	if got["lse"].OpenTime != nil {
		t.Errorf("lse open override = %v, want nil", *got["lse"].OpenTime)
	}
	if *got["lse"].CloseTime != "13:00" {
		t.Errorf("lse close override = %v, want 13:00", *got["lse"].CloseTime)
	}
}

func TestSaveTimeOverrideReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.SaveTimeOverride(ctx, "nyse", domain.TimeOverride{OpenTime: strPtr("10:00")})
	s.SaveTimeOverride(ctx, "nyse", domain.TimeOverride{CloseTime: strPtr("15:00")})

	got, err := s.TimeOverrides(ctx)
	if err != nil {
		t.Fatalf("TimeOverrides: %v", err)
	}
	if got["nyse"].OpenTime != nil {
		t.Errorf("replaced override kept stale open time")
	}
	if got["nyse"].CloseTime == nil || *got["nyse"].CloseTime != "15:00" {
		t.Errorf("replaced override close = %+v", got["nyse"])
	}
}

func TestDeleteTimeOverride(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.SaveTimeOverride(ctx, "nyse", domain.TimeOverride{OpenTime: strPtr("10:00")})
	if err := s.DeleteTimeOverride(ctx, "nyse"); err != nil {
		t.Fatalf("DeleteTimeOverride: %v", err)
	}

	got, err := s.TimeOverrides(ctx)
	if err != nil {
		t.Fatalf("TimeOverrides: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("override still present after delete: %v", got)
	}

	// Deleting a missing row is not an error.
	if err := s.DeleteTimeOverride(ctx, "ghost"); err != nil {
		t.Errorf("DeleteTimeOverride on absent row: %v", err)
	}
}

func TestSelection(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetSelected(ctx, []string{"nyse", "jpx", "lse"}); err != nil {
		t.Fatalf("SetSelected: %v", err)
	}
	got, err := s.Selected(ctx)
	if err != nil {
		t.Fatalf("Selected: %v", err)
	}
	want := []string{"jpx", "lse", "nyse"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Selected = %v, want %v", got, want)
	}

	// Replacement, not accumulation.
	if err := s.SetSelected(ctx, []string{"hkex"}); err != nil {
		t.Fatalf("SetSelected: %v", err)
	}
	got, _ = s.Selected(ctx)
	if !reflect.DeepEqual(got, []string{"hkex"}) {
		t.Errorf("Selected after replacement = %v, want [hkex]", got)
	}
}
