package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "localhost:3000" {
		t.Fatalf("host = %q, want localhost:3000", u.Host)
	}

	u, err = parseBaseURL("meds.example.com:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "meds.example.com:8080" {
		t.Fatalf("url = %q, want http://meds.example.com:8080", u.String())
	}

	u, err = parseBaseURL("https://example.com/base?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndEncodesBodies(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	var gotHistoryQuery url.Values
	var gotChatBody map[string]any
	var gotConditions []string
	var gotConditionsMethod string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/medicines/":
			switch r.Method {
			case http.MethodGet:
				_ = json.NewEncoder(w).Encode([]Medicine{{ID: 1, Name: "Tylenol", IsActive: true}})
			case http.MethodPost:
				var req NewMedicine
				_ = json.NewDecoder(r.Body).Decode(&req)
				_ = json.NewEncoder(w).Encode(Medicine{ID: 7, Name: req.Name, IsActive: true})
			}
		case "/api/v1/medicines/7":
			_ = json.NewEncoder(w).Encode(Medicine{ID: 7, Name: "Tylenol"})
		case "/api/v1/schedules/today":
			_ = json.NewEncoder(w).Encode([]Schedule{{ID: 3, MedicineID: 7, MedicineName: "Tylenol", DoseCount: 1, DoseTime: "08:00:00"}})
		case "/api/v1/schedules/3":
			_ = json.NewEncoder(w).Encode(ScheduleDetail{Schedule: Schedule{ID: 3}, IsActive: true})
		case "/api/v1/schedules/":
			var req NewSchedule
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(ScheduleDetail{Schedule: Schedule{ID: 9, DoseTime: req.DoseTime}})
		case "/api/v1/users/medical-conditions":
			gotConditionsMethod = r.Method
			_ = json.NewDecoder(r.Body).Decode(&gotConditions)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		case "/api/v1/chat/sessions":
			_ = json.NewEncoder(w).Encode([]ChatSession{{SessionID: "s-1", Title: "Consult"}})
		case "/api/v1/chat/history":
			gotHistoryQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode([]ChatMessage{{ID: 1, Role: "user", Content: "hi"}})
		case "/api/v1/chat/":
			_ = json.NewDecoder(r.Body).Decode(&gotChatBody)
			_ = json.NewEncoder(w).Encode(ChatReply{Message: "hello", SessionID: "s-2"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	meds, err := c.Medicines(ctx)
	if err != nil {
		t.Fatalf("Medicines returned error: %v", err)
	}
	if len(meds) != 1 || meds[0].Name != "Tylenol" {
		t.Fatalf("Medicines payload = %#v", meds)
	}
	if !strings.HasPrefix(gotUserAgent, "pillterm/") {
		t.Fatalf("User-Agent = %q, want pillterm/*", gotUserAgent)
	}

	med, err := c.Medicine(ctx, 7)
	if err != nil {
		t.Fatalf("Medicine returned error: %v", err)
	}
	if med.ID != 7 {
		t.Fatalf("Medicine ID = %d, want 7", med.ID)
	}

	created, err := c.CreateMedicine(ctx, NewMedicine{Name: "Advil", Count: 1, Times: []string{"08:00"}})
	if err != nil {
		t.Fatalf("CreateMedicine returned error: %v", err)
	}
	if created.ID != 7 || created.Name != "Advil" {
		t.Fatalf("CreateMedicine payload = %#v", created)
	}

	doses, err := c.TodaySchedules(ctx)
	if err != nil {
		t.Fatalf("TodaySchedules returned error: %v", err)
	}
	if len(doses) != 1 || doses[0].DoseTime != "08:00:00" {
		t.Fatalf("TodaySchedules payload = %#v", doses)
	}

	detail, err := c.ScheduleDetail(ctx, 3)
	if err != nil {
		t.Fatalf("ScheduleDetail returned error: %v", err)
	}
	if detail.ID != 3 || !detail.IsActive {
		t.Fatalf("ScheduleDetail payload = %#v", detail)
	}

	sched, err := c.CreateSchedule(ctx, NewSchedule{MedicineID: 7, DoseTime: "08:00:00"})
	if err != nil {
		t.Fatalf("CreateSchedule returned error: %v", err)
	}
	if sched.ID != 9 || sched.DoseTime != "08:00:00" {
		t.Fatalf("CreateSchedule payload = %#v", sched)
	}

	if err := c.SubmitConditions(ctx, []string{"hypertension", "diabetes"}); err != nil {
		t.Fatalf("SubmitConditions returned error: %v", err)
	}
	if gotConditionsMethod != http.MethodPut {
		t.Fatalf("SubmitConditions method = %q, want PUT", gotConditionsMethod)
	}
	if len(gotConditions) != 2 || gotConditions[0] != "hypertension" {
		t.Fatalf("SubmitConditions body = %#v", gotConditions)
	}

	sessions, err := c.ChatSessions(ctx)
	if err != nil {
		t.Fatalf("ChatSessions returned error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionID != "s-1" {
		t.Fatalf("ChatSessions payload = %#v", sessions)
	}

	history, err := c.ChatHistory(ctx, "s-1")
	if err != nil {
		t.Fatalf("ChatHistory returned error: %v", err)
	}
	if len(history) != 1 || history[0].Content != "hi" {
		t.Fatalf("ChatHistory payload = %#v", history)
	}
	if gotHistoryQuery.Get("session_id") != "s-1" {
		t.Fatalf("ChatHistory query = %v, want session_id=s-1", gotHistoryQuery)
	}

	reply, err := c.SendChat(ctx, "hello there", "")
	if err != nil {
		t.Fatalf("SendChat returned error: %v", err)
	}
	if reply.SessionID != "s-2" {
		t.Fatalf("SendChat payload = %#v", reply)
	}
	if gotChatBody["message"] != "hello there" {
		t.Fatalf("SendChat body = %#v", gotChatBody)
	}
	if v, present := gotChatBody["session_id"]; !present || v != nil {
		t.Fatalf("SendChat session_id = %#v, want explicit null", gotChatBody["session_id"])
	}
}

func TestClient_StatusErrorCarriesCodeAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "error detail")
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Medicines(context.Background())
	if err == nil {
		t.Fatalf("Medicines returned nil error, want status error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %T is not *StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("Code = %d, want 500", statusErr.Code)
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "error detail") {
		t.Fatalf("error message = %q, want it to include status and body", err.Error())
	}
}

func TestCreateMedicine_TimeoutIsDistinct(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.createTimeout = 50 * time.Millisecond

	_, err = c.CreateMedicine(context.Background(), NewMedicine{Name: "Advil"})
	if err == nil {
		t.Fatalf("CreateMedicine returned nil error, want timeout")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("timeout error should not be a StatusError: %v", err)
	}
}

func TestClient_MalformedResponseIsDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{not json")
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.TodaySchedules(context.Background())
	if err == nil {
		t.Fatalf("TodaySchedules returned nil error, want decode error")
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("error = %q, want decode response", err.Error())
	}
}

func TestChatHistory_RequiresSessionID(t *testing.T) {
	c, err := NewClient("localhost:9")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.ChatHistory(context.Background(), "  "); err == nil {
		t.Fatalf("ChatHistory returned nil error, want session id error")
	}
}
