package directory

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

const employeeColumns = `
    id, first_name, last_name, email, phone, role, department_id, start_date,
    status, COALESCE(photo_url, ''),
    COALESCE(emergency_contact_name, ''),
    COALESCE(emergency_contact_phone, ''),
    COALESCE(emergency_contact_relationship, ''),
    created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	if err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone, &emp.Role,
		&emp.DepartmentID, &emp.StartDate, &emp.Status, &emp.PhotoURL,
		&emp.EmergencyContactName, &emp.EmergencyContactPhone, &emp.EmergencyContactRelationship,
		&emp.CreatedAt, &emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.NotFound("employee", id)
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	created, err := scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, role, department_id,
      start_date, status, photo_url, emergency_contact_name, emergency_contact_phone,
      emergency_contact_relationship)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING `+employeeColumns,
		emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Role, emp.DepartmentID,
		emp.StartDate, emp.Status, emp.PhotoURL, emp.EmergencyContactName,
		emp.EmergencyContactPhone, emp.EmergencyContactRelationship,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, emp Employee) (*Employee, error) {
	updated, err := scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        role = $5,
        department_id = $6,
        start_date = $7,
        status = $8,
        photo_url = $9,
        emergency_contact_name = $10,
        emergency_contact_phone = $11,
        emergency_contact_relationship = $12,
        updated_at = now()
    WHERE id = $13
    RETURNING `+employeeColumns,
		emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Role, emp.DepartmentID,
		emp.StartDate, emp.Status, emp.PhotoURL, emp.EmergencyContactName,
		emp.EmergencyContactPhone, emp.EmergencyContactRelationship, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.NotFound("employee", id)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

const departmentColumns = `
    id, name, description, COALESCE(head_id, 0), member_count, created_at`

func scanDepartment(row pgx.Row) (*Department, error) {
	var dep Department
	if err := row.Scan(&dep.ID, &dep.Name, &dep.Description, &dep.HeadID, &dep.MemberCount, &dep.CreatedAt); err != nil {
		return nil, err
	}
	return &dep, nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+departmentColumns+`
    FROM departments
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		dep, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dep)
	}
	return out, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	dep, err := scanDepartment(s.DB.QueryRow(ctx, `
    SELECT `+departmentColumns+`
    FROM departments
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.NotFound("department", id)
	}
	if err != nil {
		return nil, err
	}
	return dep, nil
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) (*Department, error) {
	created, err := scanDepartment(s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description, head_id, member_count)
    VALUES ($1,$2,$3,$4)
    RETURNING `+departmentColumns,
		dep.Name, dep.Description, nullIfZero(dep.HeadID), dep.MemberCount,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, id int64, dep Department) (*Department, error) {
	updated, err := scanDepartment(s.DB.QueryRow(ctx, `
    UPDATE departments
    SET name = $1,
        description = $2,
        head_id = $3,
        member_count = $4
    WHERE id = $5
    RETURNING `+departmentColumns,
		dep.Name, dep.Description, nullIfZero(dep.HeadID), dep.MemberCount, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.NotFound("department", id)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return record.NotFound("department", id)
	}
	return nil
}

func nullIfZero(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
