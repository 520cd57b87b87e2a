package repo

import (
	"context"
	"fmt"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

// ComputeNetPay returns base + bonus - deductions. Amounts are minor
// currency units; the result can go negative when deductions exceed the
// rest. The computed value is stored with the row and never recomputed
// on read.
func ComputeNetPay(baseSalary, bonus, deductions int64) int64 {
	return baseSalary + bonus - deductions
}

// PayrollRepository manages payroll periods per employee and produces
// the per-period summaries the report exporter consumes.
type PayrollRepository interface {
	List(ctx context.Context) ([]models.PayrollRecord, error)
	Create(ctx context.Context, params models.PayrollParams) (int64, error)
	Update(ctx context.Context, id int64, params models.PayrollParams) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (models.PayrollRecord, error)
	SummaryByPeriod(ctx context.Context, period string) ([]models.PayrollSummaryRow, error)
}

type payrollRepo struct {
	q db.Querier
}

// NewPayrollRepo returns a PayrollRepository backed by q.
func NewPayrollRepo(q db.Querier) PayrollRepository {
	return &payrollRepo{q: q}
}

const (
	sqlListPayroll = `
		SELECT p.id, p.employee_id, e.name, p.period, p.base_salary, p.bonus,
		       p.deductions, p.net_pay, p.status
		FROM   payroll p
		JOIN   employees e ON p.employee_id = e.id
		ORDER  BY p.period DESC, p.id`

	sqlInsertPayroll = `
		INSERT INTO payroll (employee_id, period, base_salary, bonus, deductions, net_pay, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	sqlUpdatePayroll = `
		UPDATE payroll
		SET    employee_id = ?, period = ?, base_salary = ?, bonus = ?,
		       deductions = ?, net_pay = ?, status = ?
		WHERE  id = ?`

	sqlDeletePayroll = `
		DELETE FROM payroll WHERE id = ?`

	sqlPayrollByID = `
		SELECT p.id, p.employee_id, e.name, p.period, p.base_salary, p.bonus,
		       p.deductions, p.net_pay, p.status
		FROM   payroll p
		JOIN   employees e ON p.employee_id = e.id
		WHERE  p.id = ?`

	sqlPayrollSummary = `
		SELECT e.name, p.base_salary, p.bonus, p.deductions, p.net_pay
		FROM   payroll p
		JOIN   employees e ON p.employee_id = e.id
		WHERE  p.period = ?
		ORDER  BY e.name ASC`
)

// List returns all payroll rows joined to employee names, newest period
// first.
func (r *payrollRepo) List(ctx context.Context) ([]models.PayrollRecord, error) {
	rows, err := r.q.Query(ctx, sqlListPayroll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create inserts a payroll row as given and returns the new id. NetPay
// is the caller's responsibility (use ComputeNetPay).
func (r *payrollRepo) Create(ctx context.Context, params models.PayrollParams) (int64, error) {
	res, err := r.q.Exec(ctx, sqlInsertPayroll,
		params.EmployeeID, params.Period, params.BaseSalary, params.Bonus,
		params.Deductions, params.NetPay, params.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites all fields of a payroll row.
// Returns db.ErrNotFound when no row was modified.
func (r *payrollRepo) Update(ctx context.Context, id int64, params models.PayrollParams) error {
	res, err := r.q.Exec(ctx, sqlUpdatePayroll,
		params.EmployeeID, params.Period, params.BaseSalary, params.Bonus,
		params.Deductions, params.NetPay, params.Status, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// Delete removes a payroll row by id.
func (r *payrollRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.Exec(ctx, sqlDeletePayroll, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// GetByID fetches one payroll row including the employee's name.
// Returns db.ErrNotFound when no row matches.
func (r *payrollRepo) GetByID(ctx context.Context, id int64) (models.PayrollRecord, error) {
	row := r.q.QueryRow(ctx, sqlPayrollByID, id)
	return scanPayroll(row.Scan)
}

// SummaryByPeriod returns one line per payroll row in the period,
// ordered by employee name, for the report exporter.
func (r *payrollRepo) SummaryByPeriod(ctx context.Context, period string) ([]models.PayrollSummaryRow, error) {
	rows, err := r.q.Query(ctx, sqlPayrollSummary, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PayrollSummaryRow
	for rows.Next() {
		var s models.PayrollSummaryRow
		if err := rows.Scan(&s.EmployeeName, &s.BaseSalary, &s.Bonus, &s.Deductions, &s.NetPay); err != nil {
			return nil, fmt.Errorf("repo/payroll: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// scanPayroll centralises the column mapping shared by List and GetByID.
func scanPayroll(scan func(...any) error) (models.PayrollRecord, error) {
	var rec models.PayrollRecord
	err := scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Period,
		&rec.BaseSalary, &rec.Bonus, &rec.Deductions, &rec.NetPay, &rec.Status)
	if err != nil {
		return models.PayrollRecord{}, fmt.Errorf("repo/payroll: %w", err)
	}
	return rec, nil
}

var _ PayrollRepository = (*payrollRepo)(nil)
