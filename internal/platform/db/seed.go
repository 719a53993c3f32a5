package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a small demo data set so a fresh deployment has something to
// show. It is a no-op when any department already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var engineeringID, peopleID int64
	if err := pool.QueryRow(ctx, `
    INSERT INTO departments (name, description)
    VALUES ('Engineering', 'Product development and platform teams')
    RETURNING id
  `).Scan(&engineeringID); err != nil {
		return err
	}
	if err := pool.QueryRow(ctx, `
    INSERT INTO departments (name, description)
    VALUES ('People Operations', 'Hiring, onboarding, and employee support')
    RETURNING id
  `).Scan(&peopleID); err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var adaID int64
	if err := pool.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, role, department_id, start_date, status)
    VALUES ('Ada', 'Lovelace', 'ada@example.com', '555-0100', 'Staff Engineer', $1, $2, 'active')
    RETURNING id
  `, engineeringID, today.AddDate(-1, 0, 0)).Scan(&adaID); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, role, department_id, start_date, status)
    VALUES ('Grace', 'Hopper', 'grace@example.com', '555-0101', 'People Partner', $1, $2, 'active')
  `, peopleID, today.AddDate(0, -3, 0)); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
    INSERT INTO time_off_requests (employee_id, start_date, end_date, type, reason, status, request_date)
    VALUES ($1, $2, $3, 'vacation', 'Family trip', 'pending', $4)
  `, adaID, today.AddDate(0, 0, 14), today.AddDate(0, 0, 18), today); err != nil {
		return err
	}

	return nil
}
