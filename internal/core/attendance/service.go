package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/coreerr"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は勤怠台帳のユースケースをまとめます。
type Service struct {
	repo      Repository
	employees EmployeeDirectory
	clock     Clock
	tx        TransactionManager
}

// UseCase は勤怠台帳ユースケースの公開インターフェースです。
type UseCase interface {
	MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Record, error)
	GetHistory(ctx context.Context, in HistoryInput) ([]*Record, error)
	DeleteAllFor(ctx context.Context, employeeID string) (int, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, employees EmployeeDirectory, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, employees: employees, clock: clock, tx: tx}
}

// MarkAttendanceInput は勤怠登録時の入力です。Date は呼び出し側のタイムゾーンで決めた暦日です。
type MarkAttendanceInput struct {
	EmployeeID string
	Date       time.Time
	Status     Status
}

// HistoryInput は履歴取得時の入力です。
type HistoryInput struct {
	EmployeeID string
	Order      Order
}

// MarkAttendance は社員の指定日の出欠を記録します。
// 同じ社員・同じ日付への同時登録は 1 件だけが成功し、残りは ErrAlreadyMarked になります。
func (s *Service) MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Record, error) {
	if in.Date.IsZero() {
		return nil, ErrInvalidDate
	}

	status, err := ParseStatus(string(in.Status))
	if err != nil {
		return nil, err
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("employee_id: %w", ErrEmployeeNotFound)
	}

	var created *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.employees.LockEmployee(txCtx, employeeID); err != nil {
			return translateDirectoryError(err)
		}

		result, err := s.repo.Insert(txCtx, &Record{
			EmployeeID: employeeID,
			Date:       NormalizeDate(in.Date),
			Status:     status,
			RecordedAt: s.clock.Now(),
		})
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetHistory は社員の勤怠履歴を返します。既定は日付の昇順です。
func (s *Service) GetHistory(ctx context.Context, in HistoryInput) ([]*Record, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("employee_id: %w", ErrEmployeeNotFound)
	}

	order := in.Order
	if order != OrderDescending {
		order = OrderAscending
	}

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.employees.EnsureEmployeeExists(txCtx, employeeID); err != nil {
			return translateDirectoryError(err)
		}

		found, err := s.repo.ListByEmployee(txCtx, employeeID, order)
		if err != nil {
			return err
		}
		records = found
		return nil
	}); err != nil {
		return nil, err
	}

	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

// DeleteAllFor は社員の勤怠記録をすべて削除し、削除件数を返します。
// 社員削除の連鎖処理から呼ばれ、呼び出し側のトランザクションに参加します。記録が無ければ 0 を返します。
func (s *Service) DeleteAllFor(ctx context.Context, employeeID string) (int, error) {
	trimmed := strings.TrimSpace(employeeID)
	if trimmed == "" {
		return 0, nil
	}

	var deleted int
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		n, err := s.repo.DeleteByEmployee(txCtx, trimmed)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	}); err != nil {
		return 0, err
	}

	return deleted, nil
}

func translateDirectoryError(err error) error {
	if errors.Is(err, coreerr.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}
