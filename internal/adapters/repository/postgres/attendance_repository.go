package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	pgdb "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
)

const attendanceColumns = `id, employee_id, date, status, recorded_at`

// AttendanceRepository は PostgreSQL を利用した勤怠記録永続化の実装です。
type AttendanceRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(pool pgdb.Queryer) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Insert は勤怠記録を追加します。
// (employee_id, date) の一意制約に衝突した場合は行を返さず、ErrAlreadyMarked になります。
func (r *AttendanceRepository) Insert(ctx context.Context, rec *attendance.Record) (*attendance.Record, error) {
	if !isUUID(rec.EmployeeID) {
		return nil, attendance.ErrEmployeeNotFound
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO attendance_records (employee_id, date, status, recorded_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (employee_id, date) DO NOTHING
        RETURNING `+attendanceColumns,
		rec.EmployeeID,
		attendance.NormalizeDate(rec.Date),
		string(rec.Status),
		rec.RecordedAt,
	)

	inserted, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAlreadyMarked
		}
		return nil, translateAttendancePgError(err)
	}
	return inserted, nil
}

// ListByEmployee は社員の勤怠記録を日付順に取得します。
func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, order attendance.Order) ([]*attendance.Record, error) {
	if !isUUID(employeeID) {
		return []*attendance.Record{}, nil
	}

	direction := `ASC`
	if order == attendance.OrderDescending {
		direction = `DESC`
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE employee_id = $1 ORDER BY date `+direction, employeeID)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	defer rows.Close()

	records := make([]*attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, translateAttendancePgError(err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, translateAttendancePgError(err)
	}

	return records, nil
}

// DeleteByEmployee は社員の勤怠記録をすべて削除し、削除件数を返します。
func (r *AttendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int, error) {
	if !isUUID(employeeID) {
		return 0, nil
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM attendance_records WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, translateAttendancePgError(err)
	}
	return int(tag.RowsAffected()), nil
}

func scanRecord(row pgx.Row) (*attendance.Record, error) {
	var (
		rec        attendance.Record
		date       time.Time
		status     string
		recordedAt time.Time
	)

	if err := row.Scan(&rec.ID, &rec.EmployeeID, &date, &status, &recordedAt); err != nil {
		return nil, err
	}

	rec.Date = attendance.NormalizeDate(date)
	rec.Status = attendance.Status(status)
	rec.RecordedAt = recordedAt.UTC()
	return &rec, nil
}

func translateAttendancePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return attendance.ErrAlreadyMarked
		case foreignKeyViolationCode:
			return attendance.ErrEmployeeNotFound
		}
	}

	return err
}
