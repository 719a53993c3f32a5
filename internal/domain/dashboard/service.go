package dashboard

import (
	"context"
	"time"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/timeoff"
)

// Service recomputes every view from the current collection snapshots on
// each read. An unreachable collection reads as empty rather than failing
// the whole view.
type Service struct {
	Employees   directory.EmployeeStore
	Departments directory.DepartmentStore
	Requests    timeoff.RequestStore
	Now         func() time.Time
}

func NewService(emps directory.EmployeeStore, deps directory.DepartmentStore, reqs timeoff.RequestStore) *Service {
	return &Service{Employees: emps, Departments: deps, Requests: reqs, Now: time.Now}
}

func (s *Service) Stats(ctx context.Context) Stats {
	emps, deps, reqs := s.snapshot(ctx)
	return BuildStats(emps, deps, reqs, s.Now())
}

func (s *Service) Activity(ctx context.Context) []Activity {
	emps, deps, reqs := s.snapshot(ctx)
	return RecentActivity(emps, deps, reqs)
}

func (s *Service) Calendar(ctx context.Context, year int, month time.Month) []timeoff.Request {
	_, _, reqs := s.snapshot(ctx)
	return MonthRequests(reqs, year, month)
}

func (s *Service) Summary(ctx context.Context, year int, month time.Month) Summary {
	_, _, reqs := s.snapshot(ctx)
	return BuildSummary(reqs, year, month)
}

func (s *Service) snapshot(ctx context.Context) ([]directory.Employee, []directory.Department, []timeoff.Request) {
	emps, err := s.Employees.ListEmployees(ctx)
	if err != nil {
		emps = nil
	}
	deps, err := s.Departments.ListDepartments(ctx)
	if err != nil {
		deps = nil
	}
	reqs, err := s.Requests.ListRequests(ctx)
	if err != nil {
		reqs = nil
	}
	return emps, deps, reqs
}
