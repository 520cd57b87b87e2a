package models

// Payroll status values.
const (
	PayrollPaid    = "Paid"
	PayrollPending = "Pending"
)

// PayrollRecord is a payroll row joined to the employee's name. All
// amounts are minor currency units (cents); NetPay is computed once at
// write time and never recomputed on read.
type PayrollRecord struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string
	Period       string // e.g. "2025-06"
	BaseSalary   int64
	Bonus        int64
	Deductions   int64
	NetPay       int64
	Status       string
}

// PayrollParams holds the fields for creating or updating a payroll row.
// The caller computes NetPay (see repo.ComputeNetPay); the repository
// stores it as given.
type PayrollParams struct {
	EmployeeID int64
	Period     string
	BaseSalary int64
	Bonus      int64
	Deductions int64
	NetPay     int64
	Status     string
}

// PayrollSummaryRow is one line of the per-period report handed to the
// export collaborator.
type PayrollSummaryRow struct {
	EmployeeName string
	BaseSalary   int64
	Bonus        int64
	Deductions   int64
	NetPay       int64
}
