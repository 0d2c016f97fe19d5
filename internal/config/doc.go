// Package config handles loading and parsing pillterm configuration files.
//
// # Overview
//
// This package reads pillterm's TOML configuration to discover the medication
// backend's base URL, the acting user id, and the background refresh cadence.
// Only the fields the client needs are modeled.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pillterm/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/pillterm/config.toml
//   - Base URL: http://localhost:3000
//   - User ID: 1
//   - Poll interval: 30 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	base_url = "https://meds.example.com"
//	user_id = 42
//	poll_seconds = 15
//
// All fields are optional. Tilde expansion is performed on the config path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A missing
// config file is NOT an error - pillterm works out-of-the-box against a local
// backend.
//
// The base URL is the only load-bearing piece of environment-driven
// configuration; everything else has safe defaults.
package config
