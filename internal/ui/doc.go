// Package ui renders the pillterm terminal interface with Bubble Tea.
//
// The root Model owns a snapshot of the shared store plus per-view state for
// seven views: a home dashboard, today's dose timeline, the medicine cabinet
// with time-of-day filter tabs, a registration form, the assistant chat, the
// package-scan analysis view and a health-conditions editor.
//
// Data flows one way: the background poller writes to the state store, a
// periodic tick copies the latest snapshot into the model, and views render
// from that copy. Writes (registering a medicine, sending a chat message,
// scanning an image, saving conditions) run as tea.Cmd functions that call
// the API client and report back with typed messages.
//
// Taken marks on the schedule view are session-local and are never sent to
// the backend.
package ui
