package repo

import (
	"context"
	"fmt"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

// DepartmentRepository defines the contract for department persistence.
// Departments have an independent lifecycle: employees reference them by
// name only, so updates and deletes here never cascade.
type DepartmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, name, manager string) (int64, error)
	Update(ctx context.Context, id int64, name, manager string) error
	Delete(ctx context.Context, id int64) error
}

type departmentRepo struct {
	q db.Querier
}

// NewDepartmentRepo returns a DepartmentRepository backed by q.
func NewDepartmentRepo(q db.Querier) DepartmentRepository {
	return &departmentRepo{q: q}
}

const (
	sqlListDepartments = `
		SELECT id, department_name, manager
		FROM   departments
		ORDER  BY id`

	sqlInsertDepartment = `
		INSERT INTO departments (department_name, manager) VALUES (?, ?)`

	sqlUpdateDepartment = `
		UPDATE departments SET department_name = ?, manager = ? WHERE id = ?`

	sqlDeleteDepartment = `
		DELETE FROM departments WHERE id = ?`
)

func (r *departmentRepo) List(ctx context.Context) ([]models.Department, error) {
	rows, err := r.q.Query(ctx, sqlListDepartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Manager); err != nil {
			return nil, fmt.Errorf("repo/department: scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *departmentRepo) Create(ctx context.Context, name, manager string) (int64, error) {
	res, err := r.q.Exec(ctx, sqlInsertDepartment, name, manager)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *departmentRepo) Update(ctx context.Context, id int64, name, manager string) error {
	res, err := r.q.Exec(ctx, sqlUpdateDepartment, name, manager, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *departmentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.Exec(ctx, sqlDeleteDepartment, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

var _ DepartmentRepository = (*departmentRepo)(nil)
