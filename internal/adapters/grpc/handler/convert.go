package handler

import (
	"time"

	attendancev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/attendance/v1"
	employeev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/employee/v1"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
)

func toProtoEmployee(emp *employee.Employee) *employeev1.Employee {
	if emp == nil {
		return nil
	}

	return &employeev1.Employee{
		Id:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Email:        emp.Email,
		Department:   emp.Department,
		CreatedAt:    formatTimestamp(emp.CreatedAt),
	}
}

func toProtoRecord(rec *attendance.Record) *attendancev1.AttendanceRecord {
	if rec == nil {
		return nil
	}

	return &attendancev1.AttendanceRecord{
		Id:         rec.ID,
		EmployeeId: rec.EmployeeID,
		Date:       rec.DateKey(),
		Status:     string(rec.Status),
		RecordedAt: formatTimestamp(rec.RecordedAt),
	}
}

func toProtoRecords(records []*attendance.Record) []*attendancev1.AttendanceRecord {
	out := make([]*attendancev1.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, toProtoRecord(rec))
	}
	return out
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
