package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var recordRowColumns = []string{"id", "employee_id", "date", "status", "recorded_at"}

func newAttendanceMock(t *testing.T) (pgxmock.PgxPoolIface, *AttendanceRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewAttendanceRepository(mock)
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_Insert(t *testing.T) {
	t.Parallel()

	mock, repo := newAttendanceMock(t)
	recordedAt := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (employee_id, date) DO NOTHING`)).
		WithArgs(testEmployeeID, day(10), "Present", recordedAt).
		WillReturnRows(pgxmock.NewRows(recordRowColumns).
			AddRow("rec-1", testEmployeeID, day(10), "Present", recordedAt))

	rec, err := repo.Insert(context.Background(), &attendance.Record{
		EmployeeID: testEmployeeID,
		Date:       time.Date(2024, 1, 10, 18, 45, 0, 0, time.UTC),
		Status:     attendance.StatusPresent,
		RecordedAt: recordedAt,
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if rec.ID != "rec-1" || rec.DateKey() != "2024-01-10" || rec.Status != attendance.StatusPresent {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttendanceRepository_InsertConflictIsAlreadyMarked(t *testing.T) {
	t.Parallel()

	mock, repo := newAttendanceMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
		WithArgs(testEmployeeID, day(10), "Absent", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(recordRowColumns))

	_, err := repo.Insert(context.Background(), &attendance.Record{
		EmployeeID: testEmployeeID,
		Date:       day(10),
		Status:     attendance.StatusAbsent,
	})
	if !errors.Is(err, attendance.ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked, got %v", err)
	}
}

func TestAttendanceRepository_InsertTranslatesPgErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code string
		want error
	}{
		{name: "unique violation", code: "23505", want: attendance.ErrAlreadyMarked},
		{name: "foreign key violation", code: "23503", want: attendance.ErrEmployeeNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, repo := newAttendanceMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: tc.code})

			_, err := repo.Insert(context.Background(), &attendance.Record{EmployeeID: testEmployeeID, Date: day(1), Status: attendance.StatusPresent})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAttendanceRepository_InsertMalformedEmployeeID(t *testing.T) {
	t.Parallel()

	mock, repo := newAttendanceMock(t)
	_, err := repo.Insert(context.Background(), &attendance.Record{EmployeeID: "emp-1", Date: day(1), Status: attendance.StatusPresent})
	if !errors.Is(err, attendance.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}

func TestAttendanceRepository_ListByEmployee(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		order     attendance.Order
		direction string
	}{
		{name: "ascending", order: attendance.OrderAscending, direction: "ORDER BY date ASC"},
		{name: "descending", order: attendance.OrderDescending, direction: "ORDER BY date DESC"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, repo := newAttendanceMock(t)
			now := time.Now().UTC()
			mock.ExpectQuery(regexp.QuoteMeta(`FROM attendance_records WHERE employee_id = $1 `+tc.direction)).
				WithArgs(testEmployeeID).
				WillReturnRows(pgxmock.NewRows(recordRowColumns).
					AddRow("rec-1", testEmployeeID, day(1), "Present", now).
					AddRow("rec-2", testEmployeeID, day(2), "Absent", now))

			records, err := repo.ListByEmployee(context.Background(), testEmployeeID, tc.order)
			if err != nil {
				t.Fatalf("ListByEmployee returned error: %v", err)
			}
			if len(records) != 2 || records[1].Status != attendance.StatusAbsent {
				t.Fatalf("unexpected records: %+v", records)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestAttendanceRepository_ListByEmployeeQueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newAttendanceMock(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM attendance_records`)).
		WithArgs(testEmployeeID).
		WillReturnError(boom)

	if _, err := repo.ListByEmployee(context.Background(), testEmployeeID, attendance.OrderAscending); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestAttendanceRepository_DeleteByEmployee(t *testing.T) {
	t.Parallel()

	mock, repo := newAttendanceMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance_records WHERE employee_id = $1`)).
		WithArgs(testEmployeeID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteByEmployee(context.Background(), testEmployeeID)
	if err != nil {
		t.Fatalf("DeleteByEmployee returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deleted, got %d", n)
	}
}
