package sched

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"pillterm/internal/api"
)

func TestFormatTime_WarnsOncePerValue(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	const bad = "totally-bogus-dose-time"
	for i := 0; i < 3; i++ {
		if got := FormatTime(bad); got != "" {
			t.Fatalf("FormatTime(%q) = %q, want empty", bad, got)
		}
	}
	if n := strings.Count(buf.String(), bad); n != 1 {
		t.Errorf("warning for %q logged %d times, want 1", bad, n)
	}

	// A value not seen before still warns.
	FormatTime("another-bogus-value")
	if !strings.Contains(buf.String(), "another-bogus-value") {
		t.Error("new invalid value did not warn")
	}
}

func TestBucketOf_PartitionsEveryHour(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		b := BucketOf(hour)
		if b != Morning && b != Lunch && b != Dinner {
			t.Fatalf("BucketOf(%d) = %v, not a valid bucket", hour, b)
		}
	}
}

func TestBucketOf_Boundaries(t *testing.T) {
	cases := []struct {
		hour int
		want Bucket
	}{
		{0, Dinner},
		{5, Dinner},
		{6, Morning},
		{11, Morning},
		{12, Lunch},
		{17, Lunch},
		{18, Dinner},
		{23, Dinner},
	}
	for _, tc := range cases {
		if got := BucketOf(tc.hour); got != tc.want {
			t.Errorf("BucketOf(%d) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestBucketStrings(t *testing.T) {
	if Morning.String() != "morning" || Lunch.String() != "lunch" || Dinner.String() != "dinner" {
		t.Fatalf("bucket names = %q/%q/%q", Morning, Lunch, Dinner)
	}
	if Morning.Label() != "Morning" {
		t.Fatalf("Morning.Label() = %q", Morning.Label())
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"with_seconds", "08:00:00", "08:00"},
		{"without_seconds", "08:00", "08:00"},
		{"pads_single_digits", "8:5", "08:05"},
		{"evening", "21:30:00", "21:30"},
		{"garbage", "not a time", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTime(tc.in); got != tc.want {
				t.Fatalf("FormatTime(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatTime_LegacyISOTimestamp(t *testing.T) {
	if got := FormatTime("2024-03-01T08:30:00"); got != "08:30" {
		t.Fatalf("FormatTime(naive ISO) = %q, want 08:30", got)
	}
}

func doseAt(id int64, doseTime string) api.Schedule {
	return api.Schedule{ID: id, MedicineID: id, MedicineName: "med", DoseCount: 1, DoseTime: doseTime}
}

func clock(hour, minute int) time.Time {
	return time.Date(2024, 3, 1, hour, minute, 0, 0, time.Local)
}

func TestNextDose_PicksNearestUpcoming(t *testing.T) {
	doses := []api.Schedule{
		doseAt(1, "08:00:00"),
		doseAt(2, "14:00:00"),
		doseAt(3, "20:00:00"),
	}

	next, ok := NextDose(clock(9, 0), doses)
	if !ok {
		t.Fatalf("NextDose returned none, want the 14:00 dose")
	}
	if next.ID != 2 {
		t.Fatalf("NextDose ID = %d, want 2 (14:00)", next.ID)
	}
}

func TestNextDose_NoWraparound(t *testing.T) {
	doses := []api.Schedule{doseAt(1, "08:00:00")}
	if _, ok := NextDose(clock(20, 0), doses); ok {
		t.Fatalf("NextDose returned a dose at 20:00, want none (no next-day wraparound)")
	}
}

func TestNextDose_EmptyList(t *testing.T) {
	if _, ok := NextDose(clock(9, 0), nil); ok {
		t.Fatalf("NextDose on empty list returned a dose, want none")
	}
}

func TestNextDose_ExactTimeCounts(t *testing.T) {
	doses := []api.Schedule{doseAt(1, "09:00:00")}
	next, ok := NextDose(clock(9, 0), doses)
	if !ok || next.ID != 1 {
		t.Fatalf("NextDose at the exact minute = (%v, %v), want the dose itself", next.ID, ok)
	}
}

func TestNextDose_StableTieBreak(t *testing.T) {
	doses := []api.Schedule{
		doseAt(10, "09:00:00"),
		doseAt(20, "09:00:00"),
	}
	next, ok := NextDose(clock(8, 0), doses)
	if !ok {
		t.Fatalf("NextDose returned none")
	}
	if next.ID != 10 {
		t.Fatalf("NextDose ID = %d, want 10 (first in input order)", next.ID)
	}
}

func TestNextDose_SkipsUnparsableTimes(t *testing.T) {
	doses := []api.Schedule{
		doseAt(1, "garbage"),
		doseAt(2, "10:00:00"),
	}
	next, ok := NextDose(clock(9, 0), doses)
	if !ok || next.ID != 2 {
		t.Fatalf("NextDose = (%v, %v), want the 10:00 dose", next.ID, ok)
	}
}

func TestSortByDoseTime(t *testing.T) {
	doses := []api.Schedule{
		doseAt(1, "14:00:00"),
		doseAt(2, "08:00:00"),
		doseAt(3, "20:00:00"),
	}
	sorted := SortByDoseTime(doses)

	want := []string{"08:00:00", "14:00:00", "20:00:00"}
	for i, dose := range sorted {
		if dose.DoseTime != want[i] {
			t.Fatalf("sorted[%d] = %q, want %q", i, dose.DoseTime, want[i])
		}
	}
	// Input order untouched.
	if doses[0].DoseTime != "14:00:00" {
		t.Fatalf("SortByDoseTime mutated its input: %q", doses[0].DoseTime)
	}
}

func TestSortByDoseTime_StableForEqualTimes(t *testing.T) {
	doses := []api.Schedule{
		doseAt(10, "09:00:00"),
		doseAt(20, "09:00:00"),
	}
	sorted := SortByDoseTime(doses)
	if sorted[0].ID != 10 || sorted[1].ID != 20 {
		t.Fatalf("sorted IDs = %d,%d, want 10,20", sorted[0].ID, sorted[1].ID)
	}
}

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00:00", 0, true},
		{"08:30:00", 510, true},
		{"23:59", 1439, true},
		{"garbage", 0, false},
		{"12", 0, false},
	}
	for _, tc := range cases {
		got, ok := MinuteOfDay(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("MinuteOfDay(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestHourOf(t *testing.T) {
	if hour, ok := HourOf("18:30:00"); !ok || hour != 18 {
		t.Fatalf("HourOf = (%d, %v), want (18, true)", hour, ok)
	}
	if _, ok := HourOf("2024-03-01T08:30:00"); ok {
		t.Fatalf("HourOf accepted an ISO timestamp, want clock strings only")
	}
}
