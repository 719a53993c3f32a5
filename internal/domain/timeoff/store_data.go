package timeoff

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"staffhub/internal/domain/record"
	"staffhub/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestColumns = `
    id, employee_id, start_date, end_date, type, reason, status,
    COALESCE(approved_by, ''), request_date, created_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	if err := row.Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Type,
		&req.Reason, &req.Status, &req.ApprovedBy, &req.RequestDate, &req.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) list(ctx context.Context, where string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM time_off_requests
    `+where+`
    ORDER BY id
  `, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (s *Store) ListRequests(ctx context.Context) ([]Request, error) {
	return s.list(ctx, "")
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	return s.list(ctx, "WHERE employee_id = $1", employeeID)
}

func (s *Store) ListPending(ctx context.Context) ([]Request, error) {
	return s.list(ctx, "WHERE status = $1", StatusPending)
}

func (s *Store) GetRequest(ctx context.Context, id int64) (*Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM time_off_requests
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.NotFound("time off request", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Store) CreateRequest(ctx context.Context, req Request) (*Request, error) {
	created, err := scanRequest(s.DB.QueryRow(ctx, `
    INSERT INTO time_off_requests (employee_id, start_date, end_date, type, reason, status, approved_by, request_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING `+requestColumns,
		req.EmployeeID, req.StartDate, req.EndDate, req.Type, req.Reason,
		req.Status, nullIfEmpty(req.ApprovedBy), req.RequestDate,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateRequest(ctx context.Context, id int64, req Request) (*Request, error) {
	updated, err := scanRequest(s.DB.QueryRow(ctx, `
    UPDATE time_off_requests
    SET employee_id = $1,
        start_date = $2,
        end_date = $3,
        type = $4,
        reason = $5,
        status = $6,
        approved_by = $7
    WHERE id = $8
    RETURNING `+requestColumns,
		req.EmployeeID, req.StartDate, req.EndDate, req.Type, req.Reason,
		req.Status, nullIfEmpty(req.ApprovedBy), id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.NotFound("time off request", id)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
