// Package memory はプロセス内で完結するストレージ実装です。
// 開発用とテスト用で、PostgreSQL 実装と同じ不変条件を守ります。
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
)

// ErrReadOnlyTransaction は読み取り専用トランザクション内で書き込もうとした場合に返却されます。
var ErrReadOnlyTransaction = errors.New("memory: write inside read-only transaction")

// Store は社員と勤怠記録を保持します。すべての状態は mu で保護されます。
type Store struct {
	mu sync.RWMutex

	employees  map[string]*employee.Employee
	order      []string
	byCode     map[string]string
	byEmail    map[string]string
	records    map[string]*attendance.Record
	byEmployee map[string]map[string]string
}

// NewStore は空の Store を生成します。
func NewStore() *Store {
	return &Store{
		employees:  make(map[string]*employee.Employee),
		byCode:     make(map[string]string),
		byEmail:    make(map[string]string),
		records:    make(map[string]*attendance.Record),
		byEmployee: make(map[string]map[string]string),
	}
}

// Ping は常に成功します。ヘルスチェック用です。
func (s *Store) Ping(context.Context) error {
	return nil
}

// Employees は社員リポジトリを返します。
func (s *Store) Employees() *EmployeeRepository {
	return &EmployeeRepository{store: s}
}

// Attendance は勤怠記録リポジトリを返します。
func (s *Store) Attendance() *AttendanceRepository {
	return &AttendanceRepository{store: s}
}

// Transactions はトランザクションマネージャを返します。
func (s *Store) Transactions() *TransactionManager {
	return &TransactionManager{store: s}
}

type txContextKey struct{}

// txState は実行中の作業単位です。ロックは作業単位の開始から終了まで保持されます。
type txState struct {
	writable bool
	undo     []func()
}

func (t *txState) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *txState) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func txFromContext(ctx context.Context) (*txState, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(*txState)
	return tx, ok
}

// TransactionManager は Store 全体のロックで作業単位を直列化します。
// 入れ子の呼び出しは外側の作業単位に参加します。
type TransactionManager struct {
	store *Store
}

// WithinReadOnly は読み取りロックを保持したまま fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.within(ctx, false, fn)
}

// WithinReadWrite は書き込みロックを保持したまま fn を実行します。fn が失敗した場合は変更を巻き戻します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.within(ctx, true, fn)
}

func (m *TransactionManager) within(ctx context.Context, writable bool, fn func(context.Context) error) (err error) {
	if fn == nil {
		return fmt.Errorf("memory: transaction function is required")
	}

	if outer, ok := txFromContext(ctx); ok {
		if writable && !outer.writable {
			return ErrReadOnlyTransaction
		}
		return fn(ctx)
	}

	if writable {
		m.store.mu.Lock()
		defer m.store.mu.Unlock()
	} else {
		m.store.mu.RLock()
		defer m.store.mu.RUnlock()
	}

	tx := &txState{writable: writable}
	committed := false
	defer func() {
		if !committed {
			tx.rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}

	committed = true
	return nil
}

// read は ctx の作業単位があればそれに参加し、無ければ読み取りロックを取って fn を実行します。
func (s *Store) read(ctx context.Context, fn func() error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// write は ctx の作業単位があればそれに参加し、無ければ単独の書き込みとして fn を実行します。
// 単独の書き込みは 1 手順で完結するため巻き戻しは記録しません。
func (s *Store) write(ctx context.Context, fn func(onRollback func(func())) error) error {
	if tx, ok := txFromContext(ctx); ok {
		if !tx.writable {
			return ErrReadOnlyTransaction
		}
		return fn(tx.onRollback)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(func(func()) {})
}
