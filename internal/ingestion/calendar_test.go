package ingestion

import (
	"testing"
	"time"
)

func TestIsWeekday(t *testing.T) {
	if isWeekday(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)) { // Saturday
		t.Fatal("Saturday should not be a weekday")
	}
	if isWeekday(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)) { // Sunday
		t.Fatal("Sunday should not be a weekday")
	}
	if !isWeekday(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)) { // Monday
		t.Fatal("Monday should be a weekday")
	}
}

func TestWeekdays_CountAndOrder(t *testing.T) {
	// 2024-01-01 (Mon) .. 2024-01-14 (Sun): two full weeks.
	start := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	days := Weekdays(start, end)
	if len(days) != 10 {
		t.Fatalf("want 10 got %d", len(days))
	}
	for i := range days {
		if i > 0 && !days[i].After(days[i-1]) {
			t.Fatal("dates should be strictly increasing")
		}
		if days[i].Hour() != 0 || days[i].Location() != time.UTC {
			t.Fatalf("date not truncated: %v", days[i])
		}
		if wd := days[i].Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatal("weekend day returned")
		}
	}
}

func TestWeekdays_ReversedRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if days := Weekdays(start, end); len(days) != 0 {
		t.Fatalf("want no days, got %d", len(days))
	}
}

func TestWeekdays_FirstQuarter2024(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if got := len(Weekdays(start, end)); got != 65 {
		t.Fatalf("want 65 weekdays in Q1 2024, got %d", got)
	}
}
