package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/kravetsdev/staff-core/models"
	"github.com/kravetsdev/staff-core/repo"
)

func TestStatsRepo_Counts(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewStatsRepo(database)
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	empID := seedEmployee(t, database, "Jane")
	seedEmployee(t, database, "Adam")

	if _, err := repo.NewDepartmentRepo(database).Create(ctx, "R&D", "Grace"); err != nil {
		t.Fatalf("department: %v", err)
	}
	if _, err := repo.NewPayrollRepo(database).Create(ctx, models.PayrollParams{
		EmployeeID: empID, Period: "2025-06", NetPay: 0, Status: models.PayrollPending,
	}); err != nil {
		t.Fatalf("payroll: %v", err)
	}

	att := repo.NewAttendanceRepo(database)
	for _, date := range []string{"2025-06-10", "2025-06-10", "2025-06-09"} {
		if _, err := att.Create(ctx, models.AttendanceParams{
			EmployeeName: "Jane", Status: models.AttendancePresent, Date: date,
		}); err != nil {
			t.Fatalf("attendance %s: %v", date, err)
		}
	}

	counts, err := r.Counts(ctx, today)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	want := models.OverviewCounts{
		Employees:       2,
		Departments:     1,
		PayrollRecords:  1,
		AttendanceToday: 2,
	}
	if counts != want {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
}

func TestStatsRepo_AttendanceLastWeek(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewStatsRepo(database)
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	seedEmployee(t, database, "Jane")
	att := repo.NewAttendanceRepo(database)
	// Two inside the window, one on the boundary, one outside.
	for _, date := range []string{"2025-06-10", "2025-06-08", "2025-06-04", "2025-06-03"} {
		if _, err := att.Create(ctx, models.AttendanceParams{
			EmployeeName: "Jane", Status: models.AttendancePresent, Date: date,
		}); err != nil {
			t.Fatalf("attendance %s: %v", date, err)
		}
	}

	series, err := r.AttendanceLastWeek(ctx, today)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 7 {
		t.Fatalf("expected 7 days, got %d", len(series))
	}
	if series[0].Date != "2025-06-04" || series[6].Date != "2025-06-10" {
		t.Fatalf("unexpected range: %s .. %s", series[0].Date, series[6].Date)
	}

	wantCounts := map[string]int64{
		"2025-06-04": 1,
		"2025-06-08": 1,
		"2025-06-10": 1,
	}
	for _, point := range series {
		if point.Count != wantCounts[point.Date] {
			t.Fatalf("day %s: count %d, want %d", point.Date, point.Count, wantCounts[point.Date])
		}
	}
}
