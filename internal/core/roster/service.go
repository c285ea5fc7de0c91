package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/coreerr"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
)

// EmployeeLister は社員一覧を提供します。
type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]*employee.Employee, error)
}

// HistoryReader は社員ごとの勤怠履歴を提供します。
type HistoryReader interface {
	GetHistory(ctx context.Context, in attendance.HistoryInput) ([]*attendance.Record, error)
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// EmployeeHistory は社員と勤怠履歴の組です。
type EmployeeHistory struct {
	Employee *employee.Employee
	History  []*attendance.Record
}

// ListResult は履歴付き社員一覧です。Inconsistencies は検出した整合性違反です。
type ListResult struct {
	Entries         []EmployeeHistory
	Inconsistencies []Inconsistency
}

// Service は社員一覧と勤怠履歴を結合する読み取り専用のユースケースです。
type Service struct {
	employees EmployeeLister
	history   HistoryReader
	tx        TransactionManager
	reporter  ConsistencyReporter
}

// NewService は Service を生成します。reporter が nil の場合は標準ロガーに出力します。
func NewService(employees EmployeeLister, history HistoryReader, tx TransactionManager, reporter ConsistencyReporter) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if reporter == nil {
		reporter = NewLogReporter(nil)
	}
	return &Service{employees: employees, history: history, tx: tx, reporter: reporter}
}

// ListEmployeesWithHistory は全社員を勤怠履歴付きで返します。
// 一社員の履歴に整合性違反があっても一覧全体は失敗させず、違反を報告したうえで結果に含めます。
func (s *Service) ListEmployeesWithHistory(ctx context.Context) (*ListResult, error) {
	result := &ListResult{Entries: []EmployeeHistory{}}

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		employees, err := s.employees.ListEmployees(txCtx)
		if err != nil {
			return err
		}

		entries := make([]EmployeeHistory, 0, len(employees))
		var found []Inconsistency
		for _, emp := range employees {
			records, err := s.history.GetHistory(txCtx, attendance.HistoryInput{EmployeeID: emp.ID})
			if err != nil {
				if !errors.Is(err, coreerr.ErrNotFound) {
					return fmt.Errorf("roster: history for %s: %w", emp.ID, err)
				}
				found = append(found, Inconsistency{
					EmployeeID: emp.ID,
					Reason:     ReasonEmployeeVanished,
					Err:        err,
				})
				records = nil
			}

			valid, problems := checkHistory(emp.ID, records)
			found = append(found, problems...)
			entries = append(entries, EmployeeHistory{Employee: emp, History: valid})
		}

		result.Entries = entries
		result.Inconsistencies = found
		return nil
	}); err != nil {
		return nil, err
	}

	for _, inc := range result.Inconsistencies {
		s.reporter.Report(ctx, inc)
	}

	return result, nil
}

// checkHistory は履歴を検査し、正しい記録と違反を分けて返します。
func checkHistory(employeeID string, records []*attendance.Record) ([]*attendance.Record, []Inconsistency) {
	valid := make([]*attendance.Record, 0, len(records))
	var problems []Inconsistency
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.EmployeeID != employeeID {
			problems = append(problems, Inconsistency{
				EmployeeID: employeeID,
				RecordID:   rec.ID,
				Reason:     ReasonForeignRecord,
				Err:        fmt.Errorf("record belongs to %q: %w", rec.EmployeeID, coreerr.ErrInconsistent),
			})
			continue
		}

		key := rec.DateKey()
		if _, dup := seen[key]; dup {
			problems = append(problems, Inconsistency{
				EmployeeID: employeeID,
				RecordID:   rec.ID,
				Reason:     ReasonDuplicateDate,
				Err:        fmt.Errorf("second record for %s: %w", key, coreerr.ErrInconsistent),
			})
			continue
		}
		seen[key] = struct{}{}

		if n := len(valid); n > 0 && rec.Date.Before(valid[n-1].Date) {
			problems = append(problems, Inconsistency{
				EmployeeID: employeeID,
				RecordID:   rec.ID,
				Reason:     ReasonOutOfOrder,
				Err:        fmt.Errorf("%s listed after %s: %w", key, valid[n-1].DateKey(), coreerr.ErrInconsistent),
			})
		}
		valid = append(valid, rec)
	}

	return valid, problems
}
