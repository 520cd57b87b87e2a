package repo_test

import (
	"context"
	"testing"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
	"github.com/kravetsdev/staff-core/repo"
)

func TestComputeNetPay(t *testing.T) {
	cases := []struct {
		name                    string
		base, bonus, deductions int64
		want                    int64
	}{
		{"typical", 5000, 200, 100, 5100},
		{"zero bonus and deductions", 5000, 0, 0, 5000},
		{"deductions exceed pay", 1000, 0, 1500, -500},
		{"all zero", 0, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := repo.ComputeNetPay(tc.base, tc.bonus, tc.deductions); got != tc.want {
				t.Fatalf("ComputeNetPay(%d,%d,%d) = %d, want %d",
					tc.base, tc.bonus, tc.deductions, got, tc.want)
			}
		})
	}
}

func TestPayrollRepo_RoundTrip(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)
	ctx := context.Background()

	empID := seedEmployee(t, database, "Jane")

	params := models.PayrollParams{
		EmployeeID: empID,
		Period:     "2025-01",
		BaseSalary: 5000,
		Bonus:      200,
		Deductions: 100,
		NetPay:     repo.ComputeNetPay(5000, 200, 100),
		Status:     models.PayrollPending,
	}
	id, err := r.Create(ctx, params)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := r.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.EmployeeName != "Jane" || rec.Period != "2025-01" ||
		rec.BaseSalary != 5000 || rec.Bonus != 200 || rec.Deductions != 100 ||
		rec.NetPay != 5100 || rec.Status != models.PayrollPending {
		t.Fatalf("round trip mismatch: %+v", rec)
	}
}

func TestPayrollRepo_GetByID_NotFound(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)

	_, err := r.GetByID(context.Background(), 4242)
	if !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPayrollRepo_Update(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)
	ctx := context.Background()

	empID := seedEmployee(t, database, "Jane")
	id, err := r.Create(ctx, models.PayrollParams{
		EmployeeID: empID, Period: "2025-01",
		BaseSalary: 5000, Bonus: 200, Deductions: 100, NetPay: 5100,
		Status: models.PayrollPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = r.Update(ctx, id, models.PayrollParams{
		EmployeeID: empID, Period: "2025-01",
		BaseSalary: 5000, Bonus: 200, Deductions: 100, NetPay: 5100,
		Status: models.PayrollPaid,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	rec, _ := r.GetByID(ctx, id)
	if rec.Status != models.PayrollPaid {
		t.Fatalf("expected Paid, got %q", rec.Status)
	}
}

func TestPayrollRepo_Update_NotFound(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)

	empID := seedEmployee(t, database, "Jane")
	err := r.Update(context.Background(), 4242, models.PayrollParams{
		EmployeeID: empID, Period: "2025-01", NetPay: 0, Status: models.PayrollPending,
	})
	if !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPayrollRepo_Delete(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)
	ctx := context.Background()

	empID := seedEmployee(t, database, "Jane")
	id, err := r.Create(ctx, models.PayrollParams{
		EmployeeID: empID, Period: "2025-01", NetPay: 0, Status: models.PayrollPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetByID(ctx, id); !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPayrollRepo_List_NewestPeriodFirst(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)
	ctx := context.Background()

	empID := seedEmployee(t, database, "Jane")
	for _, period := range []string{"2025-02", "2024-12", "2025-01"} {
		_, err := r.Create(ctx, models.PayrollParams{
			EmployeeID: empID, Period: period, NetPay: 0, Status: models.PayrollPending,
		})
		if err != nil {
			t.Fatalf("create %s: %v", period, err)
		}
	}

	list, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-02", "2025-01", "2024-12"}
	for i, period := range want {
		if list[i].Period != period {
			t.Fatalf("expected %s at %d, got %s", period, i, list[i].Period)
		}
	}
}

func TestPayrollRepo_SummaryByPeriod(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewPayrollRepo(database)
	ctx := context.Background()

	janeID := seedEmployee(t, database, "Jane")
	adamID := seedEmployee(t, database, "Adam")

	rows := []models.PayrollParams{
		{EmployeeID: janeID, Period: "2025-01", BaseSalary: 5000, Bonus: 200, Deductions: 100, NetPay: 5100, Status: models.PayrollPending},
		{EmployeeID: adamID, Period: "2025-01", BaseSalary: 4000, Bonus: 0, Deductions: 50, NetPay: 3950, Status: models.PayrollPaid},
		{EmployeeID: janeID, Period: "2025-02", BaseSalary: 5000, Bonus: 0, Deductions: 0, NetPay: 5000, Status: models.PayrollPending},
	}
	for _, p := range rows {
		if _, err := r.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	summary, err := r.SummaryByPeriod(ctx, "2025-01")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary))
	}
	// Ordered by employee name ascending.
	if summary[0].EmployeeName != "Adam" || summary[1].EmployeeName != "Jane" {
		t.Fatalf("unexpected order: %+v", summary)
	}
	jane := summary[1]
	if jane.BaseSalary != 5000 || jane.Bonus != 200 || jane.Deductions != 100 || jane.NetPay != 5100 {
		t.Fatalf("unexpected Jane row: %+v", jane)
	}
}
