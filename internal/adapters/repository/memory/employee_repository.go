package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
)

// EmployeeRepository は Store を利用した社員永続化の実装です。
type EmployeeRepository struct {
	store *Store
}

// Create は社員を新規作成します。employee_code と email の一意性はここでも検査します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var created *employee.Employee
	err := r.store.write(ctx, func(onRollback func(func())) error {
		s := r.store
		if _, exists := s.byCode[e.EmployeeCode]; exists {
			return employee.ErrEmployeeCodeAlreadyExists
		}
		if _, exists := s.byEmail[e.Email]; exists {
			return employee.ErrEmailAlreadyExists
		}

		stored := *e
		stored.ID = uuid.NewString()
		s.employees[stored.ID] = &stored
		s.byCode[stored.EmployeeCode] = stored.ID
		s.byEmail[stored.Email] = stored.ID
		s.order = append(s.order, stored.ID)

		onRollback(func() { s.removeEmployee(stored.ID) })

		copied := stored
		created = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete は社員を削除します。勤怠記録が残っている場合は参照整合性違反として失敗します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func(onRollback func(func())) error {
		s := r.store
		emp, ok := s.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		if len(s.byEmployee[id]) > 0 {
			return errAttendanceRemains
		}

		idx := slices.Index(s.order, id)
		s.removeEmployee(id)
		onRollback(func() { s.restoreEmployee(emp, idx) })
		return nil
	})
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return r.find(ctx, func(s *Store) (string, bool) {
		_, ok := s.employees[id]
		return id, ok
	})
}

// FindByCode は社員コードで社員を取得します。
func (r *EmployeeRepository) FindByCode(ctx context.Context, employeeCode string) (*employee.Employee, error) {
	return r.find(ctx, func(s *Store) (string, bool) {
		id, ok := s.byCode[employeeCode]
		return id, ok
	})
}

// FindByEmail はメールアドレスで社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return r.find(ctx, func(s *Store) (string, bool) {
		id, ok := s.byEmail[email]
		return id, ok
	})
}

func (r *EmployeeRepository) find(ctx context.Context, lookup func(*Store) (string, bool)) (*employee.Employee, error) {
	var found *employee.Employee
	err := r.store.read(ctx, func() error {
		id, ok := lookup(r.store)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		copied := *r.store.employees[id]
		found = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List は社員を登録順に取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	employees := make([]*employee.Employee, 0)
	err := r.store.read(ctx, func() error {
		for _, id := range r.store.order {
			copied := *r.store.employees[id]
			employees = append(employees, &copied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Lock は社員の存在を確認します。
// 作業単位は Store 全体のロックを保持しているため、行単位のロックは不要です。
func (r *EmployeeRepository) Lock(ctx context.Context, id string, mode employee.LockMode) error {
	if tx, ok := txFromContext(ctx); ok && mode == employee.LockExclusive && !tx.writable {
		return ErrReadOnlyTransaction
	}
	return r.store.read(ctx, func() error {
		if _, ok := r.store.employees[id]; !ok {
			return employee.ErrEmployeeNotFound
		}
		return nil
	})
}

func (s *Store) removeEmployee(id string) {
	emp, ok := s.employees[id]
	if !ok {
		return
	}
	delete(s.employees, id)
	delete(s.byCode, emp.EmployeeCode)
	delete(s.byEmail, emp.Email)
	if idx := slices.Index(s.order, id); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}
}

func (s *Store) restoreEmployee(emp *employee.Employee, idx int) {
	s.employees[emp.ID] = emp
	s.byCode[emp.EmployeeCode] = emp.ID
	s.byEmail[emp.Email] = emp.ID
	if idx < 0 || idx > len(s.order) {
		idx = len(s.order)
	}
	s.order = slices.Insert(s.order, idx, emp.ID)
}
