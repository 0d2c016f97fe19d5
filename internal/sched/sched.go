package sched

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pillterm/internal/api"
)

// Bucket is a coarse day-part classification derived from an hour value.
type Bucket int

const (
	Morning Bucket = iota
	Lunch
	Dinner
)

// String returns the wire/display name of the bucket.
func (b Bucket) String() string {
	switch b {
	case Morning:
		return "morning"
	case Lunch:
		return "lunch"
	default:
		return "dinner"
	}
}

// Label returns the human-facing tab label for the bucket.
func (b Bucket) Label() string {
	switch b {
	case Morning:
		return "Morning"
	case Lunch:
		return "Lunch"
	default:
		return "Dinner"
	}
}

// BucketOf classifies an hour of day into exactly one bucket. Boundary hours
// belong to the later bucket: 6 is morning, 12 is lunch, 18 is dinner.
func BucketOf(hour int) Bucket {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Lunch
	default:
		return Dinner
	}
}

// FormatTime normalizes a dose time to an "HH:MM" display string. Current
// data is "HH:MM:SS"; legacy rows carry full ISO timestamps. An unparseable
// value logs a warning and renders empty rather than failing the screen.
func FormatTime(value string) string {
	if hour, minute, ok := clockFields(value); ok {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			local := t.Local()
			return fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute())
		}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
		}
	}
	warnInvalidTime(value)
	return ""
}

// warnedTimes dedupes invalid-time warnings. FormatTime runs on every render
// pass, so a bad value would otherwise spam stderr once per frame.
var warnedTimes sync.Map

func warnInvalidTime(value string) {
	if _, seen := warnedTimes.LoadOrStore(value, struct{}{}); !seen {
		log.Printf("invalid dose time %q", value)
	}
}

// NextDose selects the dose whose time of day is closest to, and not earlier
// than, now. Ties keep the first dose in input order. The second return is
// false when every dose has already passed or the list is empty.
//
// There is no wraparound to the next calendar day: at 22:00 a 07:00 dose is
// "done for today", not upcoming. That matches the shipped behavior even
// though it arguably should roll over.
func NextDose(now time.Time, doses []api.Schedule) (api.Schedule, bool) {
	currentMinutes := now.Hour()*60 + now.Minute()

	var next api.Schedule
	bestDiff := -1
	for _, dose := range doses {
		minutes, ok := MinuteOfDay(dose.DoseTime)
		if !ok {
			continue
		}
		diff := minutes - currentMinutes
		if diff < 0 {
			continue
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			next = dose
		}
	}
	return next, bestDiff >= 0
}

// SortByDoseTime returns a new slice sorted ascending by the raw dose time
// string. Zero-padded fixed-width "HH:MM:SS" input makes lexicographic order
// chronological; that format is a precondition of the data, not defended
// against here.
func SortByDoseTime(doses []api.Schedule) []api.Schedule {
	sorted := make([]api.Schedule, len(doses))
	copy(sorted, doses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DoseTime < sorted[j].DoseTime
	})
	return sorted
}

// MinuteOfDay converts an "HH:MM[:SS]" dose time to minutes since midnight.
func MinuteOfDay(value string) (int, bool) {
	hour, minute, ok := clockFields(value)
	if !ok {
		return 0, false
	}
	return hour*60 + minute, true
}

// HourOf extracts the hour component of an "HH:MM[:SS]" dose time.
func HourOf(value string) (int, bool) {
	hour, _, ok := clockFields(value)
	return hour, ok
}

func clockFields(value string) (hour, minute int, ok bool) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	hour, err := parseClockField(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err = parseClockField(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}

func parseClockField(field string) (int, error) {
	trimmed := strings.TrimSpace(field)
	if len(trimmed) == 0 || len(trimmed) > 2 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(trimmed)
}
