package models

// Employee represents a row in the "employees" table. Department is a
// free-text label; it is not a foreign key into departments (renaming or
// deleting a department leaves employees untouched).
type Employee struct {
	ID         int64
	Name       string
	Position   string
	Department string
	Status     string
}

// EmployeeParams holds the caller-supplied fields for creating or
// updating an employee. Keeping input types separate from the row type
// keeps the repository contract explicit.
type EmployeeParams struct {
	Name       string
	Position   string
	Department string
	Status     string
}

// Department represents a row in the "departments" table.
type Department struct {
	ID      int64
	Name    string
	Manager string
}
