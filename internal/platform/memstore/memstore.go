// Package memstore is the in-memory record backend. It backs the server when
// no database is configured and every test that needs a store. Collections
// are slices so listing order is insertion order, and all returned entities
// are copies: mutating a returned value never touches stored state.
package memstore

import (
	"context"
	"sync"
	"time"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/record"
	"staffhub/internal/domain/timeoff"
)

type Store struct {
	mu sync.RWMutex

	employees   []directory.Employee
	departments []directory.Department
	requests    []timeoff.Request

	// Per-collection high-water marks. Ids are max(existing)+1 and are
	// never reused, even after a delete removed the highest id.
	lastEmployeeID   int64
	lastDepartmentID int64
	lastRequestID    int64
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListEmployees(_ context.Context) ([]directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.Employee, len(s.employees))
	copy(out, s.employees)
	return out, nil
}

func (s *Store) GetEmployee(_ context.Context, id int64) (*directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, emp := range s.employees {
		if emp.ID == id {
			found := emp
			return &found, nil
		}
	}
	return nil, record.NotFound("employee", id)
}

func (s *Store) CreateEmployee(_ context.Context, emp directory.Employee) (*directory.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEmployeeID++
	emp.ID = s.lastEmployeeID
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	s.employees = append(s.employees, emp)
	created := emp
	return &created, nil
}

func (s *Store) UpdateEmployee(_ context.Context, id int64, emp directory.Employee) (*directory.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID != id {
			continue
		}
		emp.ID = id
		emp.CreatedAt = s.employees[i].CreatedAt
		emp.UpdatedAt = time.Now().UTC()
		s.employees[i] = emp
		updated := emp
		return &updated, nil
	}
	return nil, record.NotFound("employee", id)
}

func (s *Store) ListDepartments(_ context.Context) ([]directory.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.Department, len(s.departments))
	copy(out, s.departments)
	return out, nil
}

func (s *Store) GetDepartment(_ context.Context, id int64) (*directory.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dep := range s.departments {
		if dep.ID == id {
			found := dep
			return &found, nil
		}
	}
	return nil, record.NotFound("department", id)
}

func (s *Store) CreateDepartment(_ context.Context, dep directory.Department) (*directory.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDepartmentID++
	dep.ID = s.lastDepartmentID
	dep.CreatedAt = time.Now().UTC()
	s.departments = append(s.departments, dep)
	created := dep
	return &created, nil
}

func (s *Store) UpdateDepartment(_ context.Context, id int64, dep directory.Department) (*directory.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.departments {
		if s.departments[i].ID != id {
			continue
		}
		dep.ID = id
		dep.CreatedAt = s.departments[i].CreatedAt
		s.departments[i] = dep
		updated := dep
		return &updated, nil
	}
	return nil, record.NotFound("department", id)
}

func (s *Store) DeleteDepartment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.departments {
		if s.departments[i].ID == id {
			s.departments = append(s.departments[:i], s.departments[i+1:]...)
			return nil
		}
	}
	return record.NotFound("department", id)
}

func (s *Store) ListRequests(_ context.Context) ([]timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]timeoff.Request, len(s.requests))
	copy(out, s.requests)
	return out, nil
}

func (s *Store) ListByEmployee(_ context.Context, employeeID int64) ([]timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []timeoff.Request
	for _, req := range s.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *Store) ListPending(_ context.Context) ([]timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []timeoff.Request
	for _, req := range s.requests {
		if req.Status == timeoff.StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *Store) GetRequest(_ context.Context, id int64) (*timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, req := range s.requests {
		if req.ID == id {
			found := req
			return &found, nil
		}
	}
	return nil, record.NotFound("time off request", id)
}

func (s *Store) CreateRequest(_ context.Context, req timeoff.Request) (*timeoff.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRequestID++
	req.ID = s.lastRequestID
	req.CreatedAt = time.Now().UTC()
	s.requests = append(s.requests, req)
	created := req
	return &created, nil
}

func (s *Store) UpdateRequest(_ context.Context, id int64, req timeoff.Request) (*timeoff.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		req.ID = id
		req.CreatedAt = s.requests[i].CreatedAt
		req.RequestDate = s.requests[i].RequestDate
		s.requests[i] = req
		updated := req
		return &updated, nil
	}
	return nil, record.NotFound("time off request", id)
}
