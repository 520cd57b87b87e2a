package repo

import (
	"database/sql"

	"github.com/kravetsdev/staff-core/db"
)

// requireRows converts a zero-rows-affected result into db.ErrNotFound.
// Mutations on surrogate keys have no other way to tell "missing row"
// from "nothing to do".
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}
