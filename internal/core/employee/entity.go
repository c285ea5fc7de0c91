package employee

import "time"

// Employee は社員エンティティです。勤怠記録の集約ルートになります。
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	Department   string
	CreatedAt    time.Time
}

// LockMode は社員行のロック種別です。
type LockMode int

const (
	// LockShare は削除と競合する共有ロックです。勤怠登録時に使います。
	LockShare LockMode = iota
	// LockExclusive は排他ロックです。削除時に使います。
	LockExclusive
)
