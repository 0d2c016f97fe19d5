// Package api provides an HTTP client for the medication backend.
//
// # Overview
//
// This package defines the API client for the remote service that owns all
// business logic: medicine records, dose schedules, drug-risk scan analysis,
// and the assistant chat. The client handles HTTP communication, JSON
// serialization, and type-safe representation of every endpoint's payload.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the backend API schema
//   - report.go: Normalization of the drug-risk analysis payload
//
// # API Endpoints
//
//   - GET  /api/v1/medicines/                 list medicines
//   - GET  /api/v1/medicines/{id}             medicine detail
//   - POST /api/v1/medicines/                 register medicine (30s deadline)
//   - GET  /api/v1/schedules/today            today's doses
//   - GET  /api/v1/schedules/{id}             schedule detail
//   - POST /api/v1/schedules/                 register dose time
//   - PUT  /api/v1/users/medical-conditions   replace condition list
//   - POST /api/v1/analysis/scan              drug-risk image analysis
//   - GET  /api/v1/chat/sessions              list chat sessions
//   - GET  /api/v1/chat/history?session_id=   session history
//   - POST /api/v1/chat/                      send chat message
//
// # Error Handling
//
// The client distinguishes four failure kinds:
//
//   - Network errors: connection refused, DNS failure (wrapped transport errors)
//   - HTTP errors: non-2xx responses become *StatusError carrying the status
//     code and the response body text
//   - Client-side timeout: the medicine create deadline wraps ErrTimeout,
//     distinct from a server rejection
//   - Malformed payloads: JSON decode failures wrapped as "decode response"
//
// No operation retries automatically; every failure is terminal for that user
// action.
//
// # Report Normalization
//
// The risk-analysis payload has drifted between camelCase and snake_case
// field names across backend versions (riskLevel/risk_level,
// overallRiskScore/risk_score, riskItems/interactions), and a medicine's
// stored scan_report arrives either as an object or a double-encoded JSON
// string. All of that is resolved once in report.go so the UI only ever sees
// the normalized Report type.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
package api
