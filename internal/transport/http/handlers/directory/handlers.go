package directoryhandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/search"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.Put("/{employeeID}", h.handleUpdateEmployee)
		r.Post("/{employeeID}/archive", h.handleArchiveEmployee)
	})
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Get("/{departmentID}", h.handleGetDepartment)
		r.Put("/{departmentID}", h.handleUpdateDepartment)
		r.Delete("/{departmentID}", h.handleDeleteDepartment)
	})
}

type employeePayload struct {
	FirstName                    string `json:"firstName"`
	LastName                     string `json:"lastName"`
	Email                        string `json:"email"`
	Phone                        string `json:"phone"`
	Role                         string `json:"role"`
	DepartmentID                 int64  `json:"departmentId"`
	StartDate                    string `json:"startDate"`
	Status                       string `json:"status"`
	PhotoURL                     string `json:"photoUrl"`
	EmergencyContactName         string `json:"emergencyContactName"`
	EmergencyContactPhone        string `json:"emergencyContactPhone"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}

	query := r.URL.Query()
	departmentFilter := strings.TrimSpace(query.Get("department"))
	filtered := search.New[directory.Employee]().
		Text(query.Get("search"), func(e directory.Employee) []string {
			return []string{e.FirstName, e.LastName, e.Email, e.Role}
		}).
		Equals(query.Get("status"), func(e directory.Employee) string { return e.Status }).
		Equals(departmentFilter, func(e directory.Employee) string {
			return strconv.FormatInt(e.DepartmentID, 10)
		}).
		Apply(employees)

	page := shared.ParsePagination(r, len(filtered), 0)
	api.Success(w, shared.PageSlice(filtered, page), reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "employeeID", reqID)
	if !ok {
		return
	}
	employee, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := h.decodeEmployee(w, r, reqID)
	if !ok {
		return
	}
	created, err := h.Service.CreateEmployee(r.Context(), *employee)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "employeeID", reqID)
	if !ok {
		return
	}
	employee, ok := h.decodeEmployee(w, r, reqID)
	if !ok {
		return
	}
	updated, err := h.Service.UpdateEmployee(r.Context(), id, *employee)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleArchiveEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "employeeID", reqID)
	if !ok {
		return
	}
	archived, err := h.Service.ArchiveEmployee(r.Context(), id)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, archived, reqID)
}

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request, reqID string) (*directory.Employee, bool) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return nil, false
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("startDate", payload.StartDate, "start date is required")
	v.Enum("status", payload.Status, []string{directory.StatusActive, directory.StatusArchived}, "must be active or archived")
	startDate, _ := v.Date("startDate", payload.StartDate)
	if v.Reject(w, reqID) {
		return nil, false
	}

	return &directory.Employee{
		FirstName:                    strings.TrimSpace(payload.FirstName),
		LastName:                     strings.TrimSpace(payload.LastName),
		Email:                        strings.TrimSpace(payload.Email),
		Phone:                        strings.TrimSpace(payload.Phone),
		Role:                         strings.TrimSpace(payload.Role),
		DepartmentID:                 payload.DepartmentID,
		StartDate:                    startDate,
		Status:                       strings.ToLower(strings.TrimSpace(payload.Status)),
		PhotoURL:                     strings.TrimSpace(payload.PhotoURL),
		EmergencyContactName:         strings.TrimSpace(payload.EmergencyContactName),
		EmergencyContactPhone:        strings.TrimSpace(payload.EmergencyContactPhone),
		EmergencyContactRelationship: strings.TrimSpace(payload.EmergencyContactRelationship),
	}, true
}

type departmentPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HeadID      int64  `json:"headId"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}

	filtered := search.New[directory.Department]().
		Text(r.URL.Query().Get("search"), func(d directory.Department) []string {
			return []string{d.Name, d.Description}
		}).
		Apply(departments)

	api.Success(w, filtered, reqID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "departmentID", reqID)
	if !ok {
		return
	}
	department, err := h.Service.GetDepartment(r.Context(), id)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, department, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	department, ok := decodeDepartment(w, r, reqID)
	if !ok {
		return
	}
	created, err := h.Service.CreateDepartment(r.Context(), *department)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "departmentID", reqID)
	if !ok {
		return
	}
	department, ok := decodeDepartment(w, r, reqID)
	if !ok {
		return
	}
	updated, err := h.Service.UpdateDepartment(r.Context(), id, *department)
	if err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := parseID(w, r, "departmentID", reqID)
	if !ok {
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		shared.FailDomain(w, err, reqID)
		return
	}
	api.Success(w, map[string]int64{"id": id}, reqID)
}

func decodeDepartment(w http.ResponseWriter, r *http.Request, reqID string) (*directory.Department, bool) {
	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return nil, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("description", payload.Description, "description is required")
	if v.Reject(w, reqID) {
		return nil, false
	}

	return &directory.Department{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		HeadID:      payload.HeadID,
	}, true
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
