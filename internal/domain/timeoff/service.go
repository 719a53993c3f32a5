package timeoff

import (
	"context"
	"time"

	"staffhub/internal/domain/record"
)

// Service owns the request lifecycle: pending -> approved | rejected, with
// no transition out of a terminal state. Now is a clock seam for tests.
type Service struct {
	Store     RequestStore
	Directory EmployeeLookup
	Now       func() time.Time
}

func NewService(store RequestStore, dir EmployeeLookup) *Service {
	return &Service{Store: store, Directory: dir, Now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.Store.ListRequests(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Request, error) {
	return s.Store.GetRequest(ctx, id)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListPending(ctx context.Context) ([]Request, error) {
	return s.Store.ListPending(ctx)
}

// Create validates and stores a new pending request. Overlapping requests
// for the same employee are allowed.
func (s *Service) Create(ctx context.Context, employeeID int64, start, end time.Time, requestType, reason string) (*Request, error) {
	if err := s.validate(ctx, employeeID, start, end, requestType, reason); err != nil {
		return nil, err
	}
	return s.Store.CreateRequest(ctx, Request{
		EmployeeID:  employeeID,
		StartDate:   Day(start),
		EndDate:     Day(end),
		Type:        requestType,
		Reason:      reason,
		Status:      StatusPending,
		RequestDate: Day(s.Now()),
	})
}

// Update edits a pending request's fields. Status, approver, and request
// date are not editable here; terminal requests cannot be edited at all.
func (s *Service) Update(ctx context.Context, id int64, employeeID int64, start, end time.Time, requestType, reason string) (*Request, error) {
	existing, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if Terminal(existing.Status) {
		return nil, &record.InvalidTransitionError{From: existing.Status, Op: "edit"}
	}
	if err := s.validate(ctx, employeeID, start, end, requestType, reason); err != nil {
		return nil, err
	}
	updated := *existing
	updated.EmployeeID = employeeID
	updated.StartDate = Day(start)
	updated.EndDate = Day(end)
	updated.Type = requestType
	updated.Reason = reason
	return s.Store.UpdateRequest(ctx, id, updated)
}

func (s *Service) Approve(ctx context.Context, id int64, approvedBy string) (*Request, error) {
	if approvedBy == "" {
		return nil, record.Invalid("approvedBy", "is required")
	}
	existing, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusPending {
		return nil, &record.InvalidTransitionError{From: existing.Status, Op: "approve"}
	}
	updated := *existing
	updated.Status = StatusApproved
	updated.ApprovedBy = approvedBy
	return s.Store.UpdateRequest(ctx, id, updated)
}

func (s *Service) Reject(ctx context.Context, id int64) (*Request, error) {
	existing, err := s.Store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusPending {
		return nil, &record.InvalidTransitionError{From: existing.Status, Op: "reject"}
	}
	updated := *existing
	updated.Status = StatusRejected
	return s.Store.UpdateRequest(ctx, id, updated)
}

func (s *Service) validate(ctx context.Context, employeeID int64, start, end time.Time, requestType, reason string) error {
	if employeeID == 0 {
		return record.Invalid("employeeId", "is required")
	}
	if _, err := s.Directory.GetEmployee(ctx, employeeID); err != nil {
		if record.IsNotFound(err) {
			return record.Invalid("employeeId", "must reference an existing employee")
		}
		return err
	}
	if start.IsZero() {
		return record.Invalid("startDate", "must be a valid date")
	}
	if end.IsZero() {
		return record.Invalid("endDate", "must be a valid date")
	}
	if Day(end).Before(Day(start)) {
		return record.Invalid("endDate", "must be on or after startDate")
	}
	if !ValidType(requestType) {
		return record.Invalid("type", "must be vacation, sick, or personal")
	}
	if reason == "" {
		return record.Invalid("reason", "is required")
	}
	return nil
}
