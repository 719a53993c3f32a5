package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffhub/internal/app/server"
	"staffhub/internal/platform/config"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *envelopeError  `json:"error"`
	RequestID string          `json:"requestId"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Addr:               ":0",
		Environment:        "test",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload any) (*http.Response, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, url, err)
	}
	return resp, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func createDepartment(t *testing.T, client *http.Client, base, name string) int64 {
	t.Helper()
	resp, env := doJSON(t, client, http.MethodPost, base+"/api/v1/departments", map[string]any{
		"name":        name,
		"description": name + " team",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create department: expected 201, got %d", resp.StatusCode)
	}
	var dep struct {
		ID int64 `json:"id"`
	}
	decodeData(t, env, &dep)
	return dep.ID
}

func createEmployee(t *testing.T, client *http.Client, base string, departmentID int64, email string) int64 {
	t.Helper()
	resp, env := doJSON(t, client, http.MethodPost, base+"/api/v1/employees", map[string]any{
		"firstName":    "Sarah",
		"lastName":     "Connor",
		"email":        email,
		"phone":        "555-0100",
		"role":         "Engineer",
		"departmentId": departmentID,
		"startDate":    "2025-06-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create employee: expected 201, got %d (%+v)", resp.StatusCode, env.Error)
	}
	var emp struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decodeData(t, env, &emp)
	if emp.Status != "active" {
		t.Fatalf("expected new employee active, got %s", emp.Status)
	}
	return emp.ID
}

func createTimeOffRequest(t *testing.T, client *http.Client, base string, employeeID int64) int64 {
	t.Helper()
	resp, env := doJSON(t, client, http.MethodPost, base+"/api/v1/timeoff", map[string]any{
		"employeeId": employeeID,
		"startDate":  "2026-02-02",
		"endDate":    "2026-02-06",
		"type":       "vacation",
		"reason":     "Winter break",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create request: expected 201, got %d (%+v)", resp.StatusCode, env.Error)
	}
	var req struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decodeData(t, env, &req)
	if req.Status != "pending" {
		t.Fatalf("expected pending request, got %s", req.Status)
	}
	return req.ID
}

func TestEmployeeLifecycleJourney(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	depID := createDepartment(t, client, ts.URL, "Engineering")
	empID := createEmployee(t, client, ts.URL, depID, "sarah@example.com")

	// The fresh employee shows up under a case-insensitive search.
	resp, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees?search=CONNOR&status=active", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list employees: expected 200, got %d", resp.StatusCode)
	}
	var employees []struct {
		ID int64 `json:"id"`
	}
	decodeData(t, env, &employees)
	if len(employees) != 1 || employees[0].ID != empID {
		t.Fatalf("expected the new employee in search results, got %+v", employees)
	}

	// Deleting the department is blocked while the employee is active.
	resp, env = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/v1/departments/%d", ts.URL, depID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for guarded delete, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "integrity_violation" {
		t.Fatalf("expected integrity_violation, got %+v", env.Error)
	}

	// Archiving unblocks the delete.
	resp, _ = doJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/v1/employees/%d/archive", ts.URL, empID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("archive: expected 200, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/v1/departments/%d", ts.URL, depID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected delete to succeed after archiving, got %d", resp.StatusCode)
	}
	resp, env = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/departments/%d", ts.URL, depID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted department, got %d", resp.StatusCode)
	}

	// The archived employee record itself survives.
	resp, env = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, empID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected archived employee retrievable, got %d", resp.StatusCode)
	}
	var emp struct {
		Status string `json:"status"`
	}
	decodeData(t, env, &emp)
	if emp.Status != "archived" {
		t.Fatalf("expected archived, got %s", emp.Status)
	}
}

func TestTimeOffApprovalJourney(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	depID := createDepartment(t, client, ts.URL, "Engineering")
	empID := createEmployee(t, client, ts.URL, depID, "sarah@example.com")
	reqID := createTimeOffRequest(t, client, ts.URL, empID)

	// Approval without an approver is a validation failure.
	resp, env := doJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/v1/timeoff/%d/approve", ts.URL, reqID), map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing approver, got %d", resp.StatusCode)
	}

	resp, env = doJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/v1/timeoff/%d/approve", ts.URL, reqID), map[string]any{
		"approvedBy": "HR Manager",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d (%+v)", resp.StatusCode, env.Error)
	}
	var approved struct {
		Status     string `json:"status"`
		ApprovedBy string `json:"approvedBy"`
	}
	decodeData(t, env, &approved)
	if approved.Status != "approved" || approved.ApprovedBy != "HR Manager" {
		t.Fatalf("unexpected approval result: %+v", approved)
	}

	// Terminal states refuse further transitions.
	resp, env = doJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/v1/timeoff/%d/reject", ts.URL, reqID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 rejecting an approved request, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "invalid_transition" {
		t.Fatalf("expected invalid_transition, got %+v", env.Error)
	}

	// The request is visible on the february calendar.
	resp, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/timeoff/calendar?month=2026-02", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("calendar: expected 200, got %d", resp.StatusCode)
	}
	var calendar []struct {
		ID int64 `json:"id"`
	}
	decodeData(t, env, &calendar)
	if len(calendar) != 1 || calendar[0].ID != reqID {
		t.Fatalf("expected the request on the calendar, got %+v", calendar)
	}

	// And absent from a month it does not touch.
	resp, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/timeoff/calendar?month=2026-04", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("calendar: expected 200, got %d", resp.StatusCode)
	}
	calendar = nil
	decodeData(t, env, &calendar)
	if len(calendar) != 0 {
		t.Fatalf("expected empty calendar, got %+v", calendar)
	}
}

func TestDashboardAndExports(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	depID := createDepartment(t, client, ts.URL, "Engineering")
	empID := createEmployee(t, client, ts.URL, depID, "sarah@example.com")
	createTimeOffRequest(t, client, ts.URL, empID)

	resp, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/dashboard/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", resp.StatusCode)
	}
	var stats struct {
		ActiveEmployeeCount int `json:"activeEmployeeCount"`
		DepartmentCount     int `json:"departmentCount"`
		PendingRequestCount int `json:"pendingRequestCount"`
	}
	decodeData(t, env, &stats)
	if stats.ActiveEmployeeCount != 1 || stats.DepartmentCount != 1 || stats.PendingRequestCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	resp, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/dashboard/activity", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("activity: expected 200, got %d", resp.StatusCode)
	}
	var feed []struct {
		Kind string `json:"kind"`
	}
	decodeData(t, env, &feed)
	if len(feed) != 2 {
		t.Fatalf("expected one request and one hire in the feed, got %d entries", len(feed))
	}

	csvResp, err := client.Get(ts.URL + "/api/v1/timeoff/calendar/export?month=2026-02")
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}
	defer csvResp.Body.Close()
	if csvResp.StatusCode != http.StatusOK {
		t.Fatalf("csv export: expected 200, got %d", csvResp.StatusCode)
	}
	if ct := csvResp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	body, _ := io.ReadAll(csvResp.Body)
	if !bytes.Contains(body, []byte("Sarah Connor")) {
		t.Fatalf("expected employee name in csv, got %q", body)
	}

	pdfResp, err := client.Get(ts.URL + "/api/v1/timeoff/calendar/export?month=2026-02&format=pdf")
	if err != nil {
		t.Fatalf("pdf export failed: %v", err)
	}
	defer pdfResp.Body.Close()
	if pdfResp.StatusCode != http.StatusOK {
		t.Fatalf("pdf export: expected 200, got %d", pdfResp.StatusCode)
	}
	if ct := pdfResp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	pdfBody, _ := io.ReadAll(pdfResp.Body)
	if !bytes.HasPrefix(pdfBody, []byte("%PDF")) {
		t.Fatal("expected a pdf document")
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := client.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}

	resp, env := doJSON(t, client, http.MethodGet, ts.URL+"/metrics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", resp.StatusCode)
	}
	var snapshot map[string]any
	decodeData(t, env, &snapshot)
	if _, ok := snapshot["requestsTotal"]; !ok {
		t.Fatalf("expected request counter in snapshot, got %v", snapshot)
	}
}
