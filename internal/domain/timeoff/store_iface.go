package timeoff

import (
	"context"

	"staffhub/internal/domain/directory"
)

type RequestStore interface {
	ListRequests(ctx context.Context) ([]Request, error)
	GetRequest(ctx context.Context, id int64) (*Request, error)
	CreateRequest(ctx context.Context, req Request) (*Request, error)
	UpdateRequest(ctx context.Context, id int64, req Request) (*Request, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Request, error)
	ListPending(ctx context.Context) ([]Request, error)
}

// EmployeeLookup is the slice of the directory the state machine needs:
// request creation must resolve its subject employee.
type EmployeeLookup interface {
	GetEmployee(ctx context.Context, id int64) (*directory.Employee, error)
}
