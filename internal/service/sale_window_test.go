package service

import (
	"testing"
	"time"

	"github.com/balju-mate/internal/constants"
)

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse day %s failed: %v", value, err)
	}
	return parsed
}

func TestIsSaleActiveOnRequiresEndDate(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	if IsSaleActiveOn("2026-08-01", "", today) {
		t.Fatalf("missing end date must never be active")
	}
	if IsSaleActiveOn("", "", today) {
		t.Fatalf("empty window must never be active")
	}
}

func TestIsSaleActiveOnFullWindow(t *testing.T) {
	cases := []struct {
		name  string
		today string
		want  bool
	}{
		{"시작일 전날", "2026-07-31", false},
		{"시작일 당일", "2026-08-01", true},
		{"기간 중간", "2026-08-15", true},
		{"종료일 당일", "2026-08-31", true},
		{"종료일 다음날", "2026-09-01", false},
	}
	for _, tc := range cases {
		got := IsSaleActiveOn("2026-08-01", "2026-08-31", mustDay(t, tc.today))
		if got != tc.want {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsSaleActiveOnEndOnlyLegacyWindow(t *testing.T) {
	if !IsSaleActiveOn("", "2026-08-31", mustDay(t, "2026-08-24")) {
		t.Fatalf("end-only window should be active before end")
	}
	if !IsSaleActiveOn("", "2026-08-31", mustDay(t, "2026-08-31")) {
		t.Fatalf("end-only window should be active on end day")
	}
	if IsSaleActiveOn("", "2026-08-31", mustDay(t, "2026-09-01")) {
		t.Fatalf("end-only window should be inactive after end")
	}
}

func TestIsSaleActiveOnFailsClosedOnBadDates(t *testing.T) {
	today := mustDay(t, "2026-08-24")
	if IsSaleActiveOn("not-a-date", "2026-08-31", today) {
		t.Fatalf("unparseable start must fail closed")
	}
	if IsSaleActiveOn("2026-08-01", "not-a-date", today) {
		t.Fatalf("unparseable end must fail closed")
	}
	if IsSaleActiveOn("", "9999-99-99", today) {
		t.Fatalf("impossible end date must fail closed")
	}
}

func TestIsSaleActiveOnTruncatesTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2026, 8, 31, 23, 50, 0, 0, time.UTC)
	if !IsSaleActiveOn("2026-08-01", "2026-08-31", lateEvening) {
		t.Fatalf("end day evening should still be active")
	}
	if !IsSaleActiveOn("2026-08-01 00:00:00", "2026-08-31 23:59:59", mustDay(t, "2026-08-31")) {
		t.Fatalf("datetime-formatted window should evaluate by date")
	}
}

func TestEventStatusForWindow(t *testing.T) {
	today := mustDay(t, "2026-08-24")

	if got := EventStatusForWindow("2026-09-01", "2026-09-30", today); got != constants.EventStatusWaiting {
		t.Fatalf("future window want waiting got %s", got)
	}
	if got := EventStatusForWindow("2026-07-01", "2026-07-31", today); got != constants.EventStatusEnded {
		t.Fatalf("past window want ended got %s", got)
	}
	if got := EventStatusForWindow("2026-08-01", "2026-08-31", today); got != constants.EventStatusActive {
		t.Fatalf("covering window want active got %s", got)
	}
	if got := EventStatusForWindow("2026-08-24", "2026-08-24", today); got != constants.EventStatusActive {
		t.Fatalf("single-day window on today want active got %s", got)
	}
	if got := EventStatusForWindow("bad", "2026-08-31", today); got != constants.EventStatusWaiting {
		t.Fatalf("unparseable window want waiting got %s", got)
	}
}
