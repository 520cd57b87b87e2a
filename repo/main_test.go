package repo_test

import (
	"context"
	"testing"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
	"github.com/kravetsdev/staff-core/repo"
	_ "github.com/mattn/go-sqlite3"
)

// newTestDB opens an in-memory SQLite database with the personnel
// schema. A single pooled connection keeps the :memory: database alive
// for the whole test; foreign keys are on so referential failures
// surface the same way they do on MySQL.
func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(db.Config{
		DSN:          ":memory:?_foreign_keys=on",
		DriverName:   "sqlite3",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	schema := []string{
		`CREATE TABLE users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			email    TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE employees (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			position   TEXT NOT NULL,
			department TEXT NOT NULL,
			status     TEXT NOT NULL
		)`,
		`CREATE TABLE departments (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			department_name TEXT NOT NULL,
			manager         TEXT NOT NULL
		)`,
		`CREATE TABLE attendance (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id   INTEGER NOT NULL REFERENCES employees (id),
			status        TEXT NOT NULL,
			checkin_time  TEXT,
			checkout_time TEXT,
			notes         TEXT,
			date          TEXT NOT NULL
		)`,
		`CREATE TABLE payroll (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id INTEGER NOT NULL REFERENCES employees (id),
			period      TEXT NOT NULL,
			base_salary INTEGER NOT NULL,
			bonus       INTEGER NOT NULL,
			deductions  INTEGER NOT NULL,
			net_pay     INTEGER NOT NULL,
			status      TEXT NOT NULL
		)`,
		`CREATE TABLE audit_logs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id   INTEGER NOT NULL REFERENCES users (id),
			action    TEXT NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := database.Exec(ctx, stmt); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}
	return database
}

// seedEmployee inserts one employee and returns its id.
func seedEmployee(t *testing.T, database *db.DB, name string) int64 {
	t.Helper()
	id, err := repo.NewEmployeeRepo(database).Create(context.Background(), models.EmployeeParams{
		Name:       name,
		Position:   "Engineer",
		Department: "R&D",
		Status:     "Active",
	})
	if err != nil {
		t.Fatalf("seed employee %q: %v", name, err)
	}
	return id
}

// seedUser inserts one user row directly and returns its id.
func seedUser(t *testing.T, database *db.DB, email, username string) int64 {
	t.Helper()
	res, err := database.Exec(context.Background(),
		`INSERT INTO users (email, username, password) VALUES (?, ?, ?)`,
		email, username, "x")
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed user id: %v", err)
	}
	return id
}
