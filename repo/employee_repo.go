// Package repo contains the staff-core repositories. Each repository is
// a set of explicit SQL statements over a db.Querier; no query builder,
// no ORM. Errors come back mapped to the db package sentinels so callers
// can tell not-found from conflicts from connectivity failures.
package repo

import (
	"context"
	"fmt"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

// EmployeeRepository defines the contract for employee persistence.
type EmployeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	Names(ctx context.Context) ([]string, error)
	Create(ctx context.Context, params models.EmployeeParams) (int64, error)
	Update(ctx context.Context, id int64, params models.EmployeeParams) error
	Delete(ctx context.Context, id int64) error
}

type employeeRepo struct {
	q db.Querier
}

// NewEmployeeRepo returns an EmployeeRepository backed by q.
// q can be a *db.DB or a *db.Tx.
func NewEmployeeRepo(q db.Querier) EmployeeRepository {
	return &employeeRepo{q: q}
}

const (
	sqlListEmployees = `
		SELECT id, name, position, department, status
		FROM   employees
		ORDER  BY id`

	sqlEmployeeNames = `
		SELECT name FROM employees ORDER BY name`

	sqlInsertEmployee = `
		INSERT INTO employees (name, position, department, status)
		VALUES (?, ?, ?, ?)`

	sqlUpdateEmployee = `
		UPDATE employees
		SET    name = ?, position = ?, department = ?, status = ?
		WHERE  id = ?`

	sqlDeleteEmployee = `
		DELETE FROM employees WHERE id = ?`
)

// List returns all employees ordered by id.
func (r *employeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.q.Query(ctx, sqlListEmployees)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Department, &e.Status); err != nil {
			return nil, fmt.Errorf("repo/employee: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Names returns every employee name, sorted. Feeds the selection inputs
// of the attendance and payroll forms.
func (r *employeeRepo) Names(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, sqlEmployeeNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("repo/employee: scan: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Create inserts an employee and returns the new id.
func (r *employeeRepo) Create(ctx context.Context, params models.EmployeeParams) (int64, error) {
	res, err := r.q.Exec(ctx, sqlInsertEmployee,
		params.Name, params.Position, params.Department, params.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites all mutable fields of an employee.
// Returns db.ErrNotFound when no row matched.
func (r *employeeRepo) Update(ctx context.Context, id int64, params models.EmployeeParams) error {
	res, err := r.q.Exec(ctx, sqlUpdateEmployee,
		params.Name, params.Position, params.Department, params.Status, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// Delete removes an employee by id.
// Returns db.ErrNotFound when no row matched.
func (r *employeeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.Exec(ctx, sqlDeleteEmployee, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

var _ EmployeeRepository = (*employeeRepo)(nil)
