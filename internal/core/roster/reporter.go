package roster

import (
	"context"
	"log"
)

// Reason は整合性違反の分類です。
type Reason string

const (
	// ReasonEmployeeVanished は一覧に含まれる社員の履歴取得が NotFound になったことを表します。
	ReasonEmployeeVanished Reason = "employee_vanished"
	// ReasonForeignRecord は他の社員の記録が混入していたことを表します。
	ReasonForeignRecord Reason = "foreign_record"
	// ReasonDuplicateDate は同一日付の記録が複数あったことを表します。
	ReasonDuplicateDate Reason = "duplicate_date"
	// ReasonOutOfOrder は履歴が日付昇順になっていなかったことを表します。
	ReasonOutOfOrder Reason = "out_of_order"
)

// Inconsistency は検出した整合性違反です。いずれも原子性の保証が破れたことを意味します。
type Inconsistency struct {
	EmployeeID string
	RecordID   string
	Reason     Reason
	Err        error
}

// ConsistencyReporter は整合性違反の通知先です。
type ConsistencyReporter interface {
	Report(ctx context.Context, inc Inconsistency)
}

// ReporterFunc は関数を ConsistencyReporter として扱うためのアダプタです。
type ReporterFunc func(ctx context.Context, inc Inconsistency)

// Report は f を呼び出します。
func (f ReporterFunc) Report(ctx context.Context, inc Inconsistency) {
	f(ctx, inc)
}

// Reporters は複数の通知先へ順に通知します。
func Reporters(reporters ...ConsistencyReporter) ConsistencyReporter {
	return ReporterFunc(func(ctx context.Context, inc Inconsistency) {
		for _, r := range reporters {
			if r != nil {
				r.Report(ctx, inc)
			}
		}
	})
}

// LogReporter はログへ警告を出力する通知先です。
type LogReporter struct {
	logger *log.Logger
}

// NewLogReporter は LogReporter を生成します。logger が nil の場合は標準ロガーを使います。
func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogReporter{logger: logger}
}

// Report は違反内容を ALERT として出力します。
func (r *LogReporter) Report(_ context.Context, inc Inconsistency) {
	r.logger.Printf("ALERT roster inconsistency: reason=%s employee_id=%s record_id=%s err=%v",
		inc.Reason, inc.EmployeeID, inc.RecordID, inc.Err)
}
