package attendance

import "context"

// Repository は勤怠記録永続化の抽象です。
type Repository interface {
	// Insert は記録を追加します。(employee_id, date) が重複する場合は挿入せず ErrAlreadyMarked を返します。
	Insert(ctx context.Context, record *Record) (*Record, error)
	ListByEmployee(ctx context.Context, employeeID string, order Order) ([]*Record, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int, error)
}

// EmployeeDirectory は社員の存在確認を提供します。
type EmployeeDirectory interface {
	EnsureEmployeeExists(ctx context.Context, id string) error
	LockEmployee(ctx context.Context, id string) error
}
