package models

// Attendance status values used by the desktop forms. The column itself
// is free text; these are the labels the callers send today.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceSick    = "Sick"
	AttendanceLeave   = "Leave"
	AttendanceOnLeave = "On Leave"
)

// AttendanceRecord is one row of the attendance listing, joined to the
// employee's name. Checkin, Checkout, and Date are the caller-formatted
// strings ("15:04" and "2006-01-02") the forms work with.
type AttendanceRecord struct {
	ID           int64
	EmployeeName string
	Status       string
	Checkin      string
	Checkout     string
	Notes        string
	Date         string
}

// AttendanceParams holds the fields for recording attendance. The
// employee is addressed by name; the repository resolves it to an id.
type AttendanceParams struct {
	EmployeeName string
	Status       string
	Checkin      string
	Checkout     string
	Notes        string
	Date         string
}

// OverviewCounts feeds the dashboard overview cards.
type OverviewCounts struct {
	Employees       int64
	Departments     int64
	PayrollRecords  int64
	AttendanceToday int64
}

// DailyCount is one point of the attendance-per-day series.
type DailyCount struct {
	Date  string // "2006-01-02"
	Count int64
}
