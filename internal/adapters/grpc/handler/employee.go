package handler

import (
	"context"

	employeev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/employee/v1"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
	"github.com/ogurasousui/hrms-lite/internal/core/roster"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// RosterLister は履歴付き社員一覧を提供します。
type RosterLister interface {
	ListEmployeesWithHistory(ctx context.Context) (*roster.ListResult, error)
}

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc    employee.UseCase
	roster RosterLister
	employeev1.UnimplementedEmployeeServiceServer
}

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase, roster RosterLister) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc, roster: roster}
}

// CreateEmployee は社員を作成します。
func (h *EmployeeGrpcHandler) CreateEmployee(ctx context.Context, req *employeev1.CreateEmployeeRequest) (*employeev1.CreateEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	created, err := h.svc.CreateEmployee(ctx, employee.CreateEmployeeInput{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &employeev1.CreateEmployeeResponse{Employee: toProtoEmployee(created)}, nil
}

// ListEmployees は全社員を勤怠履歴付きで返します。
func (h *EmployeeGrpcHandler) ListEmployees(ctx context.Context, _ *emptypb.Empty) (*employeev1.ListEmployeesResponse, error) {
	result, err := h.roster.ListEmployeesWithHistory(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	employees := make([]*employeev1.Employee, 0, len(result.Entries))
	for _, entry := range result.Entries {
		pb := toProtoEmployee(entry.Employee)
		pb.AttendanceHistory = toProtoRecords(entry.History)
		employees = append(employees, pb)
	}

	return &employeev1.ListEmployeesResponse{Employees: employees}, nil
}

// GetEmployee は社員を取得します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *employeev1.GetEmployeeRequest) (*employeev1.GetEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.GetId()})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &employeev1.GetEmployeeResponse{Employee: toProtoEmployee(found)}, nil
}

// DeleteEmployee は社員と勤怠記録を削除します。
func (h *EmployeeGrpcHandler) DeleteEmployee(ctx context.Context, req *employeev1.DeleteEmployeeRequest) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: req.GetId()}); err != nil {
		return nil, toStatusError(err)
	}

	return &emptypb.Empty{}, nil
}
