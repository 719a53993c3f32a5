package directory

import (
	"context"

	"staffhub/internal/domain/record"
)

// Service owns employee and department mutations. Every cross-entity check
// runs before any store write, so a failed operation has zero effect.
type Service struct {
	Employees   EmployeeStore
	Departments DepartmentStore
}

func NewService(employees EmployeeStore, departments DepartmentStore) *Service {
	return &Service{Employees: employees, Departments: departments}
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.Employees.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	return s.Employees.GetEmployee(ctx, id)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	if emp.Status == "" {
		emp.Status = StatusActive
	}
	if err := s.validateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return s.Employees.CreateEmployee(ctx, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, emp Employee) (*Employee, error) {
	existing, err := s.Employees.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	// Archival is one-way: an archived employee never returns to active.
	if existing.Status == StatusArchived {
		emp.Status = StatusArchived
	}
	if emp.Status == "" {
		emp.Status = existing.Status
	}
	if err := s.validateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return s.Employees.UpdateEmployee(ctx, id, emp)
}

// ArchiveEmployee models "delete": the record is kept with status archived.
// Archiving an already archived employee is a no-op.
func (s *Service) ArchiveEmployee(ctx context.Context, id int64) (*Employee, error) {
	existing, err := s.Employees.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusArchived {
		return existing, nil
	}
	updated := *existing
	updated.Status = StatusArchived
	return s.Employees.UpdateEmployee(ctx, id, updated)
}

func (s *Service) validateEmployee(ctx context.Context, emp Employee) error {
	switch {
	case emp.FirstName == "":
		return record.Invalid("firstName", "is required")
	case emp.LastName == "":
		return record.Invalid("lastName", "is required")
	case emp.Email == "":
		return record.Invalid("email", "is required")
	case emp.Role == "":
		return record.Invalid("role", "is required")
	case emp.StartDate.IsZero():
		return record.Invalid("startDate", "must be a valid date")
	}
	if emp.Status != StatusActive && emp.Status != StatusArchived {
		return record.Invalid("status", "must be active or archived")
	}
	if emp.DepartmentID == 0 {
		return record.Invalid("departmentId", "is required")
	}
	if _, err := s.Departments.GetDepartment(ctx, emp.DepartmentID); err != nil {
		if record.IsNotFound(err) {
			return record.Invalid("departmentId", "must reference an existing department")
		}
		return err
	}
	return nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	deps, err := s.Departments.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.activeCountsByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	for i := range deps {
		deps[i].MemberCount = counts[deps[i].ID]
	}
	return deps, nil
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	dep, err := s.Departments.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.activeCountsByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	dep.MemberCount = counts[dep.ID]
	return dep, nil
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (*Department, error) {
	if err := s.validateDepartment(ctx, dep); err != nil {
		return nil, err
	}
	dep.MemberCount = 0
	return s.Departments.CreateDepartment(ctx, dep)
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, dep Department) (*Department, error) {
	if _, err := s.Departments.GetDepartment(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateDepartment(ctx, dep); err != nil {
		return nil, err
	}
	return s.Departments.UpdateDepartment(ctx, id, dep)
}

// DeleteDepartment physically removes a department, unless any active
// employee still references it. The check and the delete never leave a
// partial state: either the guard fails with zero effect or the row goes.
func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	if _, err := s.Departments.GetDepartment(ctx, id); err != nil {
		return err
	}
	counts, err := s.activeCountsByDepartment(ctx)
	if err != nil {
		return err
	}
	if n := counts[id]; n > 0 {
		return &record.IntegrityError{Reason: "active employees reference department", Count: n}
	}
	return s.Departments.DeleteDepartment(ctx, id)
}

func (s *Service) validateDepartment(ctx context.Context, dep Department) error {
	if dep.Name == "" {
		return record.Invalid("name", "is required")
	}
	if dep.Description == "" {
		return record.Invalid("description", "is required")
	}
	if dep.HeadID == 0 {
		return nil
	}
	head, err := s.Employees.GetEmployee(ctx, dep.HeadID)
	if err != nil {
		if record.IsNotFound(err) {
			return record.Invalid("headId", "must reference an existing employee")
		}
		return err
	}
	if head.Status != StatusActive {
		return record.Invalid("headId", "must reference an active employee")
	}
	return nil
}

func (s *Service) activeCountsByDepartment(ctx context.Context) (map[int64]int, error) {
	emps, err := s.Employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int, 8)
	for _, emp := range emps {
		if emp.Status == StatusActive {
			counts[emp.DepartmentID]++
		}
	}
	return counts, nil
}
