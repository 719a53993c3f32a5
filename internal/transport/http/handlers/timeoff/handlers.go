package timeoffhandler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"staffhub/internal/domain/dashboard"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/search"
	"staffhub/internal/domain/timeoff"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *timeoff.Service
	Directory *directory.Service
	Reports   *dashboard.Service
}

func NewHandler(service *timeoff.Service, dir *directory.Service, reports *dashboard.Service) *Handler {
	return &Handler{Service: service, Directory: dir, Reports: reports}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timeoff", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/pending", h.handleListPending)
		r.Get("/calendar", h.handleCalendar)
		r.Get("/calendar/export", h.handleCalendarExport)
		r.Get("/summary", h.handleSummary)
		r.Get("/{requestID}", h.handleGet)
		r.Put("/{requestID}", h.handleUpdate)
		r.Post("/{requestID}/approve", h.handleApprove)
		r.Post("/{requestID}/reject", h.handleReject)
	})
	r.Get("/employees/{employeeID}/timeoff", h.handleListByEmployee)
}

type requestPayload struct {
	EmployeeID int64  `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	requests, err := h.Service.List(r.Context())
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}

	names := h.employeeNames(r)
	query := r.URL.Query()
	filtered := search.New[timeoff.Request]().
		Text(query.Get("search"), func(req timeoff.Request) []string {
			return []string{names[req.EmployeeID], req.Reason}
		}).
		Equals(query.Get("status"), func(req timeoff.Request) string { return req.Status }).
		Equals(query.Get("type"), func(req timeoff.Request) string { return req.Type }).
		Apply(requests)

	api.Success(w, filtered, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "requestID", reqID)
	if !ok {
		return
	}
	request, err := h.Service.Get(r.Context(), id)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, request, reqID)
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	requests, err := h.Service.ListPending(r.Context())
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, requests, reqID)
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := parseID(w, r, "employeeID", reqID)
	if !ok {
		return
	}
	requests, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, requests, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payload, start, end, ok := decodeRequest(w, r, reqID)
	if !ok {
		return
	}
	created, err := h.Service.Create(r.Context(), payload.EmployeeID, start, end, payload.Type, payload.Reason)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "requestID", reqID)
	if !ok {
		return
	}
	payload, start, end, ok := decodeRequest(w, r, reqID)
	if !ok {
		return
	}
	updated, err := h.Service.Update(r.Context(), id, payload.EmployeeID, start, end, payload.Type, payload.Reason)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "requestID", reqID)
	if !ok {
		return
	}
	var payload struct {
		ApprovedBy string `json:"approvedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	approved, err := h.Service.Approve(r.Context(), id, strings.TrimSpace(payload.ApprovedBy))
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, approved, reqID)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "requestID", reqID)
	if !ok {
		return
	}
	rejected, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, rejected, reqID)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, month, ok := parseMonth(w, r, reqID)
	if !ok {
		return
	}
	requests := h.Reports.Calendar(r.Context(), year, month)
	api.Success(w, requests, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, month, ok := parseMonth(w, r, reqID)
	if !ok {
		return
	}
	api.Success(w, h.Reports.Summary(r.Context(), year, month), reqID)
}

func (h *Handler) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, month, ok := parseMonth(w, r, reqID)
	if !ok {
		return
	}
	requests := h.Reports.Calendar(r.Context(), year, month)
	names := h.employeeNames(r)
	label := fmt.Sprintf("%04d-%02d", year, int(month))

	if strings.EqualFold(r.URL.Query().Get("format"), "pdf") {
		h.writeCalendarPDF(w, reqID, label, requests, names)
		return
	}
	writeCalendarCSV(w, label, requests, names)
}

func writeCalendarCSV(w http.ResponseWriter, label string, requests []timeoff.Request, names map[int64]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=timeoff-calendar-"+label+".csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "employee", "type", "start_date", "end_date", "status"}); err != nil {
		slog.Warn("calendar export csv header write failed", "err", err)
	}
	for _, req := range requests {
		row := []string{
			strconv.FormatInt(req.ID, 10),
			names[req.EmployeeID],
			req.Type,
			req.StartDate.Format("2006-01-02"),
			req.EndDate.Format("2006-01-02"),
			req.Status,
		}
		if err := writer.Write(row); err != nil {
			slog.Warn("calendar export csv row write failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("calendar export csv flush failed", "err", err)
	}
}

func (h *Handler) writeCalendarPDF(w http.ResponseWriter, reqID, label string, requests []timeoff.Request, names map[int64]string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Time Off Calendar")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", label))
	pdf.Ln(10)
	for _, req := range requests {
		name := names[req.EmployeeID]
		if name == "" {
			name = fmt.Sprintf("employee %d", req.EmployeeID)
		}
		pdf.Cell(0, 8, fmt.Sprintf("%s: %s leave %s to %s (%s)",
			name,
			req.Type,
			req.StartDate.Format("2006-01-02"),
			req.EndDate.Format("2006-01-02"),
			req.Status,
		))
		pdf.Ln(7)
	}
	if len(requests) == 0 {
		pdf.Cell(0, 8, "No time off scheduled.")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=timeoff-calendar-"+label+".pdf")
	if err := pdf.Output(w); err != nil {
		slog.Warn("calendar export pdf write failed", "err", err, "requestId", reqID)
	}
}

func (h *Handler) employeeNames(r *http.Request) map[int64]string {
	names := map[int64]string{}
	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		slog.Warn("employee name lookup failed", "err", err)
		return names
	}
	for _, emp := range employees {
		names[emp.ID] = emp.FullName()
	}
	return names
}

func decodeRequest(w http.ResponseWriter, r *http.Request, reqID string) (*requestPayload, time.Time, time.Time, bool) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return nil, time.Time{}, time.Time{}, false
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "must reference an employee")
	}
	v.Required("startDate", payload.StartDate, "start date is required")
	v.Required("endDate", payload.EndDate, "end date is required")
	v.Required("reason", payload.Reason, "reason is required")
	v.Enum("type", payload.Type, []string{timeoff.TypeVacation, timeoff.TypeSick, timeoff.TypePersonal}, "must be vacation, sick, or personal")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return nil, time.Time{}, time.Time{}, false
	}

	payload.Type = strings.ToLower(strings.TrimSpace(payload.Type))
	payload.Reason = strings.TrimSpace(payload.Reason)
	return &payload, start, end, true
}

func parseMonth(w http.ResponseWriter, r *http.Request, reqID string) (int, time.Month, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		now := time.Now().UTC()
		return now.Year(), now.Month(), true
	}
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must use the YYYY-MM format", reqID)
		return 0, 0, false
	}
	return parsed.Year(), parsed.Month(), true
}

func parseID(w http.ResponseWriter, r *http.Request, param, reqID string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer", reqID)
		return 0, false
	}
	return id, true
}
