// Package state provides thread-safe state management for pillterm.
//
// # Overview
//
// The Store is the coordination point between the background poller and the
// UI: the poller writes the latest medicines and today's schedules, the UI
// reads immutable snapshots at its own cadence.
//
//	Producer (Poller):              Consumer (UI):
//	┌──────────────────┐           ┌──────────────────┐
//	│ TodaySchedules() │           │                  │
//	│ Medicines()      │           │                  │
//	│      ↓           │           │                  │
//	│ store.Update()   │──────────→│ store.Snapshot() │
//	│      ↓           │  (mutex)  │      ↓           │
//	│  repeat...       │           │  render UI       │
//	└──────────────────┘           └──────────────────┘
//
// # Update Semantics
//
// A successful Update replaces the whole snapshot and resets the failure
// counter. A failed Update keeps the previous data, records the error, and
// increments ConsecutiveFailures; Snapshot.IsOffline reports true once two
// polls in a row have failed, which the UI surfaces as an offline banner.
//
// # Defensive Copying
//
// Both Update and Snapshot clone the medicine and schedule slices so the UI
// can never mutate stored data and the poller can never mutate rendered data.
// The per-dose "taken" marker deliberately does NOT live here: it is
// render-scoped UI state that resets on reload and must not survive a
// snapshot refresh.
//
// The Store is safe to use as its zero value.
package state
