package repo

import (
	"context"
	"fmt"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

// AttendanceRepository records and lists daily attendance. Creation
// addresses the employee by name and resolves it to an id first; the
// lookup and insert are two statements with no wrapping transaction, so
// a concurrent employee delete in between surfaces as a foreign key
// violation rather than a dangling row.
type AttendanceRepository interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
	Create(ctx context.Context, params models.AttendanceParams) (int64, error)
	Delete(ctx context.Context, id int64) error
	EmployeeNames(ctx context.Context) ([]string, error)
}

type attendanceRepo struct {
	q db.Querier
}

// NewAttendanceRepo returns an AttendanceRepository backed by q.
func NewAttendanceRepo(q db.Querier) AttendanceRepository {
	return &attendanceRepo{q: q}
}

const (
	sqlListAttendance = `
		SELECT a.id, e.name, a.status, a.checkin_time, a.checkout_time, a.notes, a.date
		FROM   attendance a
		JOIN   employees e ON a.employee_id = e.id
		ORDER  BY a.date DESC, a.id DESC`

	sqlEmployeeIDByName = `
		SELECT id FROM employees WHERE name = ? LIMIT 1`

	sqlInsertAttendance = `
		INSERT INTO attendance (employee_id, status, checkin_time, checkout_time, notes, date)
		VALUES (?, ?, ?, ?, ?, ?)`

	sqlDeleteAttendance = `
		DELETE FROM attendance WHERE id = ?`
)

// List returns the full attendance log joined to employee names, newest
// date first.
func (r *attendanceRepo) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	rows, err := r.q.Query(ctx, sqlListAttendance)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeName, &rec.Status,
			&rec.Checkin, &rec.Checkout, &rec.Notes, &rec.Date); err != nil {
			return nil, fmt.Errorf("repo/attendance: scan: %w", err)
		}
		// MySQL with parseTime hands DATE columns back as timestamp
		// strings; the leading ten characters are the day either way.
		if len(rec.Date) > 10 {
			rec.Date = rec.Date[:10]
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create resolves the employee name and inserts one attendance row.
// An unknown name returns db.ErrNotFound and writes nothing.
func (r *attendanceRepo) Create(ctx context.Context, params models.AttendanceParams) (int64, error) {
	var employeeID int64
	err := r.q.QueryRow(ctx, sqlEmployeeIDByName, params.EmployeeName).Scan(&employeeID)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, fmt.Errorf("repo/attendance: employee %q: %w", params.EmployeeName, err)
		}
		return 0, err
	}

	res, err := r.q.Exec(ctx, sqlInsertAttendance,
		employeeID, params.Status, params.Checkin, params.Checkout, params.Notes, params.Date)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes an attendance row by id.
func (r *attendanceRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.Exec(ctx, sqlDeleteAttendance, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// EmployeeNames returns the names the attendance form offers for
// selection. Delegates to the employee table directly; the ordering
// matches EmployeeRepository.Names.
func (r *attendanceRepo) EmployeeNames(ctx context.Context) ([]string, error) {
	return NewEmployeeRepo(r.q).Names(ctx)
}

var _ AttendanceRepository = (*attendanceRepo)(nil)
