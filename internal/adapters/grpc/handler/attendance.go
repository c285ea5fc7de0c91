package handler

import (
	"context"

	attendancev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/attendance/v1"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MarkObserver は勤怠登録の結果を受け取ります。
type MarkObserver interface {
	ObserveMark(err error)
}

// AttendanceGrpcHandler は AttendanceService の gRPC 実装です。
type AttendanceGrpcHandler struct {
	svc      attendance.UseCase
	observer MarkObserver
	attendancev1.UnimplementedAttendanceServiceServer
}

// NewAttendanceGrpcHandler は AttendanceGrpcHandler を生成します。observer は nil でも構いません。
func NewAttendanceGrpcHandler(svc attendance.UseCase, observer MarkObserver) *AttendanceGrpcHandler {
	return &AttendanceGrpcHandler{svc: svc, observer: observer}
}

// MarkAttendance は指定日の出欠を記録します。
func (h *AttendanceGrpcHandler) MarkAttendance(ctx context.Context, req *attendancev1.MarkAttendanceRequest) (*attendancev1.MarkAttendanceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	rec, err := h.mark(ctx, req)
	if h.observer != nil {
		h.observer.ObserveMark(err)
	}
	if err != nil {
		return nil, toStatusError(err)
	}

	return &attendancev1.MarkAttendanceResponse{Record: toProtoRecord(rec)}, nil
}

func (h *AttendanceGrpcHandler) mark(ctx context.Context, req *attendancev1.MarkAttendanceRequest) (*attendance.Record, error) {
	date, err := attendance.ParseDate(req.GetDate())
	if err != nil {
		return nil, err
	}

	return h.svc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
		EmployeeID: req.GetEmployeeId(),
		Date:       date,
		Status:     attendance.Status(req.GetStatus()),
	})
}

// GetHistory は社員の勤怠履歴を返します。
func (h *AttendanceGrpcHandler) GetHistory(ctx context.Context, req *attendancev1.GetHistoryRequest) (*attendancev1.GetHistoryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	order := attendance.OrderAscending
	if req.GetDescending() {
		order = attendance.OrderDescending
	}

	records, err := h.svc.GetHistory(ctx, attendance.HistoryInput{EmployeeID: req.GetEmployeeId(), Order: order})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &attendancev1.GetHistoryResponse{Records: toProtoRecords(records)}, nil
}
