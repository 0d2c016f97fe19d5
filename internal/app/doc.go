// Package app provides the orchestration layer for pillterm.
//
// # Overview
//
// This package wires configuration, the API client, state management, and the
// UI into the complete application. It is the composition root where all
// dependencies are initialized and connected.
//
// # Startup Sequence
//
//  1. Load configuration from ~/.config/pillterm/config.toml
//  2. Load user preferences (theme)
//  3. Initialize the HTTP client for the medication backend
//  4. Create the shared state.Store for UI and poller coordination
//  5. Launch the background poller goroutine
//  6. Perform one synchronous refresh so the UI starts populated
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Polling Behavior
//
// The poller refreshes the store on a fixed cadence (default 30 seconds,
// configurable). Each refresh issues the two home-screen reads — today's
// schedules and the medicine list — concurrently and joins them fail-fast: a
// failure in either branch fails the whole refresh and the store keeps its
// previous data. Consecutive failures double the wait between polls, capped
// at five minutes, so an unreachable backend isn't hammered.
//
// Poll failures are recoverable: they are logged and reflected in the
// snapshot (the UI shows an offline banner after two misses), but polling
// continues. Only configuration and client construction errors are fatal.
package app
