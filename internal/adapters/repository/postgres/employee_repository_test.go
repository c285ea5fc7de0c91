package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

const testEmployeeID = "4f9a3f6e-1c1f-4a43-9d55-2f0f0b7c5a11"

var employeeRowColumns = []string{"id", "employee_code", "full_name", "email", "department", "created_at"}

func newEmployeeMock(t *testing.T) (pgxmock.PgxPoolIface, *EmployeeRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewEmployeeRepository(mock)
}

func TestEmployeeRepository_Create(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO employees (employee_code, full_name, email, department, created_at)`)).
		WithArgs("EMP001", "Asha Rao", "asha@example.com", "Engineering", now).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow(testEmployeeID, "EMP001", "Asha Rao", "asha@example.com", "Engineering", now))

	created, err := repo.Create(context.Background(), &employee.Employee{
		EmployeeCode: "EMP001",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Department:   "Engineering",
		CreatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != testEmployeeID || !created.CreatedAt.Equal(now) {
		t.Fatalf("unexpected employee: %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_CreateUniqueViolation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "employee code", constraint: "employees_employee_code_key", want: employee.ErrEmployeeCodeAlreadyExists},
		{name: "email", constraint: "employees_email_key", want: employee.ErrEmailAlreadyExists},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, repo := newEmployeeMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO employees`)).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

			_, err := repo.Create(context.Background(), &employee.Employee{EmployeeCode: "EMP001"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEmployeeRepository_FindByID(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM employees WHERE id = $1 LIMIT 1`)).
		WithArgs(testEmployeeID).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow(testEmployeeID, "EMP001", "Asha Rao", "asha@example.com", "Engineering", now))

	found, err := repo.FindByID(context.Background(), testEmployeeID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found.EmployeeCode != "EMP001" {
		t.Fatalf("unexpected employee: %+v", found)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByCodeNotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM employees WHERE employee_code = $1`)).
		WithArgs("EMP404").
		WillReturnRows(pgxmock.NewRows(employeeRowColumns))

	if _, err := repo.FindByCode(context.Background(), "EMP404"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_MalformedIDIsNotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "not-a-uuid"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("FindByID: expected ErrEmployeeNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "not-a-uuid"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("Delete: expected ErrEmployeeNotFound, got %v", err)
	}
	if err := repo.Lock(ctx, "not-a-uuid", employee.LockShare); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("Lock: expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("malformed ids must not reach the database: %v", err)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM employees ORDER BY created_at ASC, id ASC`)).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow(testEmployeeID, "EMP001", "Asha Rao", "asha@example.com", "Engineering", now).
			AddRow("9d3c1c62-5a1d-4a3c-8a0e-3c6f1b2d7e44", "EMP002", "Ben Ito", "ben@example.com", "Sales", now.Add(time.Second)))

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(employees) != 2 || employees[0].EmployeeCode != "EMP001" || employees[1].EmployeeCode != "EMP002" {
		t.Fatalf("unexpected employees: %+v", employees)
	}
}

func TestEmployeeRepository_ListEmpty(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM employees`)).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns))

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if employees == nil || len(employees) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", employees)
	}
}

func TestEmployeeRepository_Lock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mode   employee.LockMode
		clause string
	}{
		{name: "share", mode: employee.LockShare, clause: "FOR SHARE"},
		{name: "exclusive", mode: employee.LockExclusive, clause: "FOR UPDATE"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, repo := newEmployeeMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM employees WHERE id = $1 ` + tc.clause)).
				WithArgs(testEmployeeID).
				WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(testEmployeeID))

			if err := repo.Lock(context.Background(), testEmployeeID, tc.mode); err != nil {
				t.Fatalf("Lock returned error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestEmployeeRepository_LockMissing(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM employees WHERE id = $1 FOR SHARE`)).
		WithArgs(testEmployeeID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	if err := repo.Lock(context.Background(), testEmployeeID, employee.LockShare); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_Delete(t *testing.T) {
	t.Parallel()

	mock, repo := newEmployeeMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1`)).
		WithArgs(testEmployeeID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1`)).
		WithArgs(testEmployeeID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), testEmployeeID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(context.Background(), testEmployeeID); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on second delete, got %v", err)
	}
}
