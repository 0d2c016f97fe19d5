package api

import "encoding/json"

// Medicine mirrors a medicine record from /api/v1/medicines/.
type Medicine struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Ingredient string          `json:"ingredient"`
	Amount     string          `json:"amount"`
	IsActive   bool            `json:"is_active"`
	ScanReport json.RawMessage `json:"scan_report,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
}

// NewMedicine is the payload for registering a medicine.
type NewMedicine struct {
	Name       string   `json:"name"`
	Ingredient string   `json:"ingredient"`
	Amount     string   `json:"amount"`
	Times      []string `json:"times"`
	Count      int      `json:"count"`
	Duration   int      `json:"duration"`
}

// Schedule describes a single dose in today's plan.
// DoseTime is a time-of-day string, "HH:MM:SS" in current data, an ISO
// timestamp in legacy rows.
type Schedule struct {
	ID           int64  `json:"id"`
	MedicineID   int64  `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	DoseCount    int    `json:"dose_count"`
	DoseTime     string `json:"dose_time"`
}

// ScheduleDetail is the full schedule record from /api/v1/schedules/{id}.
type ScheduleDetail struct {
	Schedule
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	UserID    int64  `json:"user_id"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewSchedule is the payload for registering a dose time.
type NewSchedule struct {
	MedicineID   int64  `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	DoseCount    int    `json:"dose_count"`
	DoseTime     string `json:"dose_time"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// ChatSession summarizes one assistant conversation.
type ChatSession struct {
	SessionID       string `json:"session_id"`
	Title           string `json:"title"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
}

// ChatMessage is a single entry in a session's history.
type ChatMessage struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
}

// ChatReply is the assistant's answer to a sent message.
type ChatReply struct {
	Message    string `json:"message"`
	SessionID  string `json:"session_id"`
	TokensUsed int    `json:"tokens_used"`
	Model      string `json:"model"`
	CreatedAt  string `json:"created_at"`
}

// ScanRequest carries a captured image to the analysis endpoint.
type ScanRequest struct {
	ImageBase64 string `json:"image_base64"`
	UserID      int64  `json:"user_id"`
}
