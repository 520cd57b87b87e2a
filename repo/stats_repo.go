package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

// StatsRepository feeds the dashboard overview: headline counts and the
// attendance-per-day series for the trailing week.
type StatsRepository interface {
	Counts(ctx context.Context, today time.Time) (models.OverviewCounts, error)
	AttendanceLastWeek(ctx context.Context, today time.Time) ([]models.DailyCount, error)
}

type statsRepo struct {
	q db.Querier
}

// NewStatsRepo returns a StatsRepository backed by q.
func NewStatsRepo(q db.Querier) StatsRepository {
	return &statsRepo{q: q}
}

const dayFormat = "2006-01-02"

// Counts returns the overview card numbers. "today" is passed in rather
// than taken from the database clock so the caller and the query agree
// on the day boundary.
func (r *statsRepo) Counts(ctx context.Context, today time.Time) (models.OverviewCounts, error) {
	var c models.OverviewCounts

	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&c.Employees, `SELECT COUNT(*) FROM employees`, nil},
		{&c.Departments, `SELECT COUNT(*) FROM departments`, nil},
		{&c.PayrollRecords, `SELECT COUNT(*) FROM payroll`, nil},
		{&c.AttendanceToday, `SELECT COUNT(*) FROM attendance WHERE DATE(date) = ?`,
			[]any{today.Format(dayFormat)}},
	}
	for _, cq := range counts {
		if err := r.q.QueryRow(ctx, cq.query, cq.args...).Scan(cq.dest); err != nil {
			return models.OverviewCounts{}, fmt.Errorf("repo/stats: count: %w", err)
		}
	}
	return c, nil
}

// AttendanceLastWeek returns seven consecutive days ending today, with
// zero counts filled in for days that have no rows.
func (r *statsRepo) AttendanceLastWeek(ctx context.Context, today time.Time) ([]models.DailyCount, error) {
	start := today.AddDate(0, 0, -6)

	rows, err := r.q.Query(ctx, `
		SELECT DATE(date), COUNT(*)
		FROM   attendance
		WHERE  date >= ?
		GROUP  BY DATE(date)`, start.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDay := make(map[string]int64, 7)
	for rows.Next() {
		var day string
		var n int64
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("repo/stats: scan: %w", err)
		}
		// MySQL with parseTime returns DATE() as a timestamp string;
		// the leading ten characters are the day either way.
		if len(day) > len(dayFormat) {
			day = day[:len(dayFormat)]
		}
		byDay[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.DailyCount, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format(dayFormat)
		out = append(out, models.DailyCount{Date: day, Count: byDay[day]})
	}
	return out, nil
}

var _ StatsRepository = (*statsRepo)(nil)
