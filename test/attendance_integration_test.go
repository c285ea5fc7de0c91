//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/ogurasousui/hrms-lite/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/coreerr"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
	"github.com/ogurasousui/hrms-lite/internal/core/roster"
	"github.com/ogurasousui/hrms-lite/internal/platform/config"
	pg "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../assets/migrations"

type services struct {
	pool       *pgxpool.Pool
	employees  *employee.Service
	attendance *attendance.Service
	roster     *roster.Service
}

// setup はスキーマを作り直すため、このパッケージのテストは並列実行しません。
func setup(t *testing.T) *services {
	t.Helper()

	cfg, err := config.Load(configPathFromEnv())
	require.NoError(t, err, "failed to load config")

	require.NoError(t, resetMigrations(cfg.Database.DSN(), migrationsDir), "failed to migrate database")

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	require.NoError(t, err, "failed to create pool")
	t.Cleanup(pool.Close)

	tx := pg.NewTransactionManager(pool)
	empRepo := repo.NewEmployeeRepository(pool)
	attendanceSvc := attendance.NewService(repo.NewAttendanceRepository(pool), employee.NewDirectory(empRepo), nil, tx)
	employeeSvc := employee.NewService(empRepo, nil, tx, attendanceSvc)
	rosterSvc := roster.NewService(employeeSvc, attendanceSvc, tx, roster.ReporterFunc(func(_ context.Context, inc roster.Inconsistency) {
		t.Errorf("unexpected inconsistency: %+v", inc)
	}))

	return &services{pool: pool, employees: employeeSvc, attendance: attendanceSvc, roster: rosterSvc}
}

func (s *services) create(t *testing.T, code string) *employee.Employee {
	t.Helper()

	emp, err := s.employees.CreateEmployee(context.Background(), employee.CreateEmployeeInput{
		EmployeeCode: code,
		FullName:     "Employee " + code,
		Email:        code + "@example.com",
		Department:   "Engineering",
	})
	require.NoError(t, err)
	return emp
}

func mark(s *services, employeeID, date string, status attendance.Status) error {
	d, err := attendance.ParseDate(date)
	if err != nil {
		return err
	}
	_, err = s.attendance.MarkAttendance(context.Background(), attendance.MarkAttendanceInput{EmployeeID: employeeID, Date: d, Status: status})
	return err
}

func TestAttendanceLedgerIntegration(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	emp := s.create(t, "EMP001")

	_, err := s.employees.CreateEmployee(ctx, employee.CreateEmployeeInput{
		EmployeeCode: "EMP002", FullName: "Dup", Email: "EMP001@example.com", Department: "Ops",
	})
	require.ErrorIs(t, err, employee.ErrEmailAlreadyExists)

	require.NoError(t, mark(s, emp.ID, "2024-01-10", attendance.StatusPresent))
	require.ErrorIs(t, mark(s, emp.ID, "2024-01-10", attendance.StatusAbsent), attendance.ErrAlreadyMarked)
	require.NoError(t, mark(s, emp.ID, "2024-01-09", attendance.StatusAbsent))

	history, err := s.attendance.GetHistory(ctx, attendance.HistoryInput{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-01-09", history[0].DateKey())
	assert.Equal(t, attendance.StatusPresent, history[1].Status)

	result, err := s.roster.ListEmployeesWithHistory(ctx)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Len(t, result.Entries[0].History, 2)

	require.NoError(t, s.employees.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: emp.ID}))

	_, err = s.attendance.GetHistory(ctx, attendance.HistoryInput{EmployeeID: emp.ID})
	require.ErrorIs(t, err, coreerr.ErrNotFound)
	assert.Zero(t, countRecords(t, s.pool, emp.ID))

	require.ErrorIs(t, mark(s, "not-a-uuid", "2024-01-10", attendance.StatusPresent), coreerr.ErrNotFound)
}

func TestConcurrentMarksIntegration(t *testing.T) {
	s := setup(t)
	emp := s.create(t, "EMP001")

	const workers = 24
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mark(s, emp.ID, "2024-02-01", attendance.StatusPresent)
			if err != nil && !errors.Is(err, attendance.ErrAlreadyMarked) {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, countRecords(t, s.pool, emp.ID))
}

func TestDeleteRacingMarksIntegration(t *testing.T) {
	s := setup(t)

	for round := 0; round < 5; round++ {
		emp := s.create(t, fmt.Sprintf("EMP%03d", round))

		var wg sync.WaitGroup
		for d := 1; d <= 8; d++ {
			wg.Add(1)
			go func(d int) {
				defer wg.Done()
				err := mark(s, emp.ID, fmt.Sprintf("2024-03-%02d", d), attendance.StatusAbsent)
				if err != nil && !errors.Is(err, coreerr.ErrNotFound) {
					t.Errorf("unexpected mark error: %v", err)
				}
			}(d)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.employees.DeleteEmployee(context.Background(), employee.DeleteEmployeeInput{ID: emp.ID}))
		}()
		wg.Wait()

		assert.Zero(t, countRecords(t, s.pool, emp.ID), "orphan records after delete")
	}
}

func countRecords(t *testing.T, pool *pgxpool.Pool, employeeID string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM attendance_records WHERE employee_id = $1`, employeeID).Scan(&n)
	require.NoError(t, err)
	return n
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}
