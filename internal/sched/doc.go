// Package sched holds the schedule-time utilities: dose-time display
// formatting, day-part bucket classification, next-upcoming-dose selection,
// and the daily timeline sort.
//
// These are the only pieces of local computation in the client; everything
// else is rendering and REST plumbing. The functions are pure and operate on
// the wire representation of dose times ("HH:MM:SS", with legacy ISO
// timestamps tolerated by the formatter).
//
// Behavioral notes:
//
//   - Buckets partition the day as morning [6,12), lunch [12,18), dinner
//     otherwise. Boundary hours belong to the later bucket.
//   - NextDose never wraps to the next calendar day; once the last dose of
//     the day has passed it reports none.
//   - SortByDoseTime orders by the raw string. That is chronological only
//     because the wire format is zero-padded and fixed-width.
package sched
