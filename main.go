// Command staff-core is a smoke harness for the personnel data layer:
// it opens the configured database, runs one pass over the credential
// service and each repository, and logs what it finds. The real caller
// is the desktop front end, which links the packages directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kravetsdev/staff-core/auth"
	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
	"github.com/kravetsdev/staff-core/repo"

	// Self-registering database/sql drivers for the supported backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load() // .env is optional; real env wins

	database, err := openFromEnv(logger)
	if err != nil {
		fatalf("open database: %v", err)
	}
	defer database.Close()

	slog.Info("database connected", "stats", database.Stats())

	ctx := context.Background()

	// Credential service round trip.
	svc := auth.NewService(database, envInt("BCRYPT_COST", 0))

	email := fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())
	user, err := svc.Register(ctx, email, fmt.Sprintf("smoke-%d", time.Now().UnixNano()), "changeme1")
	if err != nil {
		fatalf("register: %v", err)
	}
	creds, err := svc.Login(ctx, email, "changeme1")
	if err != nil {
		fatalf("login: %v", err)
	}
	slog.Info("auth ok", "user_id", creds.ID, "username", creds.Username)

	if _, err := svc.Login(ctx, email, "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		fatalf("expected invalid credentials, got %v", err)
	}

	audit := repo.NewAuditRepo(database, logger)
	audit.Append(ctx, user.ID, "smoke: logged in")

	// Employee + payroll round trip.
	employees := repo.NewEmployeeRepo(database)
	empID, err := employees.Create(ctx, models.EmployeeParams{
		Name:       fmt.Sprintf("Smoke Test %d", time.Now().UnixNano()),
		Position:   "Engineer",
		Department: "R&D",
		Status:     "Active",
	})
	if err != nil {
		fatalf("create employee: %v", err)
	}
	audit.Append(ctx, user.ID, fmt.Sprintf("smoke: created employee %d", empID))

	payroll := repo.NewPayrollRepo(database)
	period := time.Now().Format("2006-01")
	netPay := repo.ComputeNetPay(500000, 20000, 10000)
	payID, err := payroll.Create(ctx, models.PayrollParams{
		EmployeeID: empID,
		Period:     period,
		BaseSalary: 500000,
		Bonus:      20000,
		Deductions: 10000,
		NetPay:     netPay,
		Status:     models.PayrollPending,
	})
	if err != nil {
		fatalf("create payroll: %v", err)
	}
	rec, err := payroll.GetByID(ctx, payID)
	if err != nil {
		fatalf("get payroll: %v", err)
	}
	slog.Info("payroll ok", "employee", rec.EmployeeName, "net_pay", rec.NetPay)

	summary, err := payroll.SummaryByPeriod(ctx, period)
	if err != nil {
		fatalf("payroll summary: %v", err)
	}
	slog.Info("payroll summary", "period", period, "rows", len(summary))

	// Overview numbers.
	stats := repo.NewStatsRepo(database)
	counts, err := stats.Counts(ctx, time.Now())
	if err != nil {
		fatalf("overview counts: %v", err)
	}
	slog.Info("overview",
		"employees", counts.Employees,
		"departments", counts.Departments,
		"payroll", counts.PayrollRecords,
		"attendance_today", counts.AttendanceToday,
	)

	trail, err := audit.List(ctx)
	if err != nil {
		fatalf("audit list: %v", err)
	}
	slog.Info("audit trail", "entries", len(trail))

	// Leave no smoke rows behind.
	if err := payroll.Delete(ctx, payID); err != nil {
		slog.Warn("cleanup payroll", "error", err)
	}
	if err := employees.Delete(ctx, empID); err != nil {
		slog.Warn("cleanup employee", "error", err)
	}

	slog.Info("smoke pass completed")
}

// openFromEnv builds a DB from DB_* environment variables. DB_DRIVER
// selects the backend ("mysql" by default, "postgres" supported).
func openFromEnv(logger *slog.Logger) (*db.DB, error) {
	driver := envOr("DB_DRIVER", "mysql")

	return db.OpenWithDriver(driver, db.DriverOptions{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envInt("DB_PORT", 0),
		User:     envOr("DB_USER", "root"),
		Password: os.Getenv("DB_PASS"),
		Database: envOr("DB_NAME", "employee"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}, db.Config{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		DefaultTimeout:  10 * time.Second,
		Hooks: []db.Hook{
			db.NewLogHook(db.LogHookConfig{
				Logger:             logger,
				SlowQueryThreshold: 200 * time.Millisecond,
			}),
		},
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
