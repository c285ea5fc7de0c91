package employee

import "context"

// Repository は社員永続化の抽象です。
// Create は employee_code と email の一意性をストレージ側でも保証し、違反時は
// ErrEmployeeCodeAlreadyExists または ErrEmailAlreadyExists を返す必要があります。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByCode(ctx context.Context, employeeCode string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	// Lock は現在のトランザクション内で社員行をロックします。存在しない場合は ErrEmployeeNotFound です。
	Lock(ctx context.Context, id string, mode LockMode) error
}

// AttendancePurger は社員削除時に勤怠記録を連鎖削除する協調先です。
type AttendancePurger interface {
	DeleteAllFor(ctx context.Context, employeeID string) (int, error)
}
