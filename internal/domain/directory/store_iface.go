package directory

import "context"

type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, emp Employee) (*Employee, error)
}

type DepartmentStore interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	GetDepartment(ctx context.Context, id int64) (*Department, error)
	CreateDepartment(ctx context.Context, dep Department) (*Department, error)
	UpdateDepartment(ctx context.Context, id int64, dep Department) (*Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}
