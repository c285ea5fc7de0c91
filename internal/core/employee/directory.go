package employee

import (
	"context"
	"fmt"
	"strings"
)

// Directory は勤怠台帳から社員の存在を確認するための窓口です。
type Directory struct {
	repo Repository
}

// NewDirectory は Directory を生成します。
func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// EnsureEmployeeExists は社員が存在しなければ ErrEmployeeNotFound を返します。ロックは取りません。
func (d *Directory) EnsureEmployeeExists(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("id: %w", ErrEmployeeNotFound)
	}
	_, err := d.repo.FindByID(ctx, trimmed)
	return err
}

// LockEmployee は呼び出し側のトランザクション内で社員行に共有ロックを取ります。
// コミットまで社員の削除と競合するため、確認後に社員が消えることはありません。
func (d *Directory) LockEmployee(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("id: %w", ErrEmployeeNotFound)
	}
	return d.repo.Lock(ctx, trimmed, LockShare)
}
