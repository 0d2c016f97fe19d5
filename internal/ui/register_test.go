package ui

import (
	"testing"
	"time"

	"pillterm/internal/api"
)

func TestParseDoseTimes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{name: "single", in: "08:00", want: []string{"08:00"}},
		{name: "multiple with spaces", in: "08:00, 13:00, 20:30", want: []string{"08:00", "13:00", "20:30"}},
		{name: "unpadded normalized", in: "8:5", want: []string{"08:05"}},
		{name: "trailing comma ignored", in: "08:00,", want: []string{"08:00"}},
		{name: "empty", in: "", wantErr: true},
		{name: "only commas", in: ", ,", wantErr: true},
		{name: "bad hour", in: "24:00", wantErr: true},
		{name: "bad minute", in: "08:60", wantErr: true},
		{name: "not a time", in: "breakfast", wantErr: true},
		{name: "one bad aborts all", in: "08:00, nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDoseTimes(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDoseTimes(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDoseTimes(%q) error: %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseDoseTimes(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseDoseTimes(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	if _, err := parsePositiveInt("0", "count"); err == nil {
		t.Error("zero accepted")
	}
	if _, err := parsePositiveInt("-1", "count"); err == nil {
		t.Error("negative accepted")
	}
	if _, err := parsePositiveInt("abc", "count"); err == nil {
		t.Error("non-numeric accepted")
	}
	got, err := parsePositiveInt(" 7 ", "duration")
	if err != nil || got != 7 {
		t.Errorf("parsePositiveInt(\" 7 \") = %d, %v", got, err)
	}
}

func TestBuildSchedules(t *testing.T) {
	med := api.Medicine{ID: 42, Name: "Tylenol"}
	today := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

	got := buildSchedules(med, []string{"08:00", "20:30"}, 2, 7, today)

	if len(got) != 2 {
		t.Fatalf("got %d schedules, want 2", len(got))
	}
	for i, s := range got {
		if s.MedicineID != 42 || s.MedicineName != "Tylenol" {
			t.Errorf("schedule %d medicine = %d %q", i, s.MedicineID, s.MedicineName)
		}
		if s.DoseCount != 2 {
			t.Errorf("schedule %d dose count = %d, want 2", i, s.DoseCount)
		}
		if s.StartDate != "2026-03-10" {
			t.Errorf("schedule %d start = %q, want 2026-03-10", i, s.StartDate)
		}
		if s.EndDate != "2026-03-17" {
			t.Errorf("schedule %d end = %q, want 2026-03-17", i, s.EndDate)
		}
	}

	if got[0].DoseTime != "08:00:00" {
		t.Errorf("dose time = %q, want 08:00:00", got[0].DoseTime)
	}
	if got[1].DoseTime != "20:30:00" {
		t.Errorf("dose time = %q, want 20:30:00", got[1].DoseTime)
	}
}

func TestBuildSchedulesCrossesMonth(t *testing.T) {
	med := api.Medicine{ID: 1, Name: "Med"}
	today := time.Date(2026, 1, 30, 12, 0, 0, 0, time.Local)

	got := buildSchedules(med, []string{"08:00"}, 1, 5, today)
	if got[0].EndDate != "2026-02-04" {
		t.Errorf("end date = %q, want 2026-02-04", got[0].EndDate)
	}
}
