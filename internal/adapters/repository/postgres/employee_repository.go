package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
	pgdb "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"

	employeeCodeUniqueConstraint  = "employees_employee_code_key"
	employeeEmailUniqueConstraint = "employees_email_key"
)

const employeeColumns = `id, employee_code, full_name, email, department, created_at`

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (employee_code, full_name, email, department, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+employeeColumns,
		e.EmployeeCode,
		e.FullName,
		e.Email,
		e.Department,
		e.CreatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Delete は社員を削除します。勤怠記録の削除は呼び出し側のトランザクションで先に行われます。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if !isUUID(id) {
		return nil, employee.ErrEmployeeNotFound
	}
	return r.findOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// FindByCode は社員コードで社員を取得します。
func (r *EmployeeRepository) FindByCode(ctx context.Context, employeeCode string) (*employee.Employee, error) {
	return r.findOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_code = $1`, employeeCode)
}

// FindByEmail はメールアドレスで社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return r.findOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
}

func (r *EmployeeRepository) findOne(ctx context.Context, query string, arg any) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanEmployee(exec.QueryRow(ctx, query+` LIMIT 1`, arg))
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は社員を登録順に取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

// Lock は社員行をロックします。トランザクション外で呼ばれた場合は存在確認のみになります。
func (r *EmployeeRepository) Lock(ctx context.Context, id string, mode employee.LockMode) error {
	if !isUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	clause := `FOR SHARE`
	if mode == employee.LockExclusive {
		clause = `FOR UPDATE`
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var locked string
	if err := exec.QueryRow(ctx, `SELECT id FROM employees WHERE id = $1 `+clause, id).Scan(&locked); err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		emp       employee.Employee
		createdAt time.Time
	)

	if err := row.Scan(
		&emp.ID,
		&emp.EmployeeCode,
		&emp.FullName,
		&emp.Email,
		&emp.Department,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	emp.CreatedAt = createdAt.UTC()
	return &emp, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case employeeCodeUniqueConstraint:
			return employee.ErrEmployeeCodeAlreadyExists
		case employeeEmailUniqueConstraint:
			return employee.ErrEmailAlreadyExists
		}
	}

	return err
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
