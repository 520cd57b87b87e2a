package repo_test

import (
	"context"
	"testing"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
	"github.com/kravetsdev/staff-core/repo"
)

func TestEmployeeRepo_CreateAndList(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewEmployeeRepo(database)
	ctx := context.Background()

	id, err := r.Create(ctx, models.EmployeeParams{
		Name: "Jane Doe", Position: "Engineer", Department: "R&D", Status: "Active",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	list, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(list))
	}
	e := list[0]
	if e.ID != id || e.Name != "Jane Doe" || e.Department != "R&D" {
		t.Fatalf("unexpected row: %+v", e)
	}
}

func TestEmployeeRepo_Update(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewEmployeeRepo(database)
	ctx := context.Background()

	id := seedEmployee(t, database, "Jane Doe")

	err := r.Update(ctx, id, models.EmployeeParams{
		Name: "Jane Doe", Position: "Staff Engineer", Department: "Platform", Status: "Active",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	list, _ := r.List(ctx)
	if list[0].Position != "Staff Engineer" || list[0].Department != "Platform" {
		t.Fatalf("update not applied: %+v", list[0])
	}
}

func TestEmployeeRepo_Update_NotFound(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewEmployeeRepo(database)

	err := r.Update(context.Background(), 4242, models.EmployeeParams{
		Name: "Nobody", Position: "None", Department: "None", Status: "Inactive",
	})
	if !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeRepo_Delete(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewEmployeeRepo(database)
	ctx := context.Background()

	id := seedEmployee(t, database, "Jane Doe")

	if err := r.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := r.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(list))
	}

	if err := r.Delete(ctx, id); !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestEmployeeRepo_Names_Sorted(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewEmployeeRepo(database)

	seedEmployee(t, database, "Charlie")
	seedEmployee(t, database, "Alice")
	seedEmployee(t, database, "Bob")

	names, err := r.Names(context.Background())
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	want := []string{"Alice", "Bob", "Charlie"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("expected %q at %d, got %q", n, i, names[i])
		}
	}
}
