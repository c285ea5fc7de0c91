package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/coreerr"
)

var errAttendanceRemains = coreerr.New(coreerr.ErrInconsistent, "memory: employee still has attendance records")

// AttendanceRepository は Store を利用した勤怠記録永続化の実装です。
type AttendanceRepository struct {
	store *Store
}

// Insert は勤怠記録を追加します。同じ社員・同じ日付の記録があれば ErrAlreadyMarked を返します。
func (r *AttendanceRepository) Insert(ctx context.Context, rec *attendance.Record) (*attendance.Record, error) {
	var inserted *attendance.Record
	err := r.store.write(ctx, func(onRollback func(func())) error {
		s := r.store
		if _, ok := s.employees[rec.EmployeeID]; !ok {
			return attendance.ErrEmployeeNotFound
		}

		stored := *rec
		stored.ID = uuid.NewString()
		stored.Date = attendance.NormalizeDate(rec.Date)
		key := stored.DateKey()

		dates := s.byEmployee[stored.EmployeeID]
		if _, marked := dates[key]; marked {
			return attendance.ErrAlreadyMarked
		}
		if dates == nil {
			dates = make(map[string]string)
			s.byEmployee[stored.EmployeeID] = dates
		}

		dates[key] = stored.ID
		s.records[stored.ID] = &stored
		onRollback(func() { s.removeRecord(&stored) })

		copied := stored
		inserted = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// ListByEmployee は社員の勤怠記録を日付順に取得します。
func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, order attendance.Order) ([]*attendance.Record, error) {
	records := make([]*attendance.Record, 0)
	err := r.store.read(ctx, func() error {
		for _, id := range r.store.byEmployee[employeeID] {
			copied := *r.store.records[id]
			records = append(records, &copied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *attendance.Record) int {
		c := a.Date.Compare(b.Date)
		if order == attendance.OrderDescending {
			return -c
		}
		return c
	})
	return records, nil
}

// DeleteByEmployee は社員の勤怠記録をすべて削除し、削除件数を返します。
func (r *AttendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int, error) {
	var deleted int
	err := r.store.write(ctx, func(onRollback func(func())) error {
		s := r.store
		for _, id := range s.byEmployee[employeeID] {
			rec := s.records[id]
			s.removeRecord(rec)
			onRollback(func() { s.restoreRecord(rec) })
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *Store) removeRecord(rec *attendance.Record) {
	delete(s.records, rec.ID)
	dates := s.byEmployee[rec.EmployeeID]
	delete(dates, rec.DateKey())
	if len(dates) == 0 {
		delete(s.byEmployee, rec.EmployeeID)
	}
}

func (s *Store) restoreRecord(rec *attendance.Record) {
	s.records[rec.ID] = rec
	dates := s.byEmployee[rec.EmployeeID]
	if dates == nil {
		dates = make(map[string]string)
		s.byEmployee[rec.EmployeeID] = dates
	}
	dates[rec.DateKey()] = rec.ID
}
