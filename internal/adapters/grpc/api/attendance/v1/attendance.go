// Package attendancev1 は hrms.attendance.v1.AttendanceService の型とサービス定義です。
package attendancev1

import (
	"context"

	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "hrms.attendance.v1.AttendanceService"

	AttendanceService_MarkAttendance_FullMethodName = "/" + ServiceName + "/MarkAttendance"
	AttendanceService_GetHistory_FullMethodName     = "/" + ServiceName + "/GetHistory"
)

// AttendanceRecord は勤怠記録です。Date は YYYY-MM-DD、RecordedAt は RFC 3339 です。
type AttendanceRecord struct {
	Id         string `json:"id"`
	EmployeeId string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	RecordedAt string `json:"recorded_at,omitempty"`
}

type MarkAttendanceRequest struct {
	EmployeeId string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (x *MarkAttendanceRequest) GetEmployeeId() string {
	if x == nil {
		return ""
	}
	return x.EmployeeId
}

func (x *MarkAttendanceRequest) GetDate() string {
	if x == nil {
		return ""
	}
	return x.Date
}

func (x *MarkAttendanceRequest) GetStatus() string {
	if x == nil {
		return ""
	}
	return x.Status
}

type MarkAttendanceResponse struct {
	Record *AttendanceRecord `json:"record"`
}

type GetHistoryRequest struct {
	EmployeeId string `json:"employee_id"`
	Descending bool   `json:"descending,omitempty"`
}

func (x *GetHistoryRequest) GetEmployeeId() string {
	if x == nil {
		return ""
	}
	return x.EmployeeId
}

func (x *GetHistoryRequest) GetDescending() bool {
	return x != nil && x.Descending
}

type GetHistoryResponse struct {
	Records []*AttendanceRecord `json:"records"`
}

// AttendanceServiceServer はサーバー側の実装が満たすインターフェースです。
type AttendanceServiceServer interface {
	MarkAttendance(context.Context, *MarkAttendanceRequest) (*MarkAttendanceResponse, error)
	GetHistory(context.Context, *GetHistoryRequest) (*GetHistoryResponse, error)
}

// UnimplementedAttendanceServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedAttendanceServiceServer struct{}

func (UnimplementedAttendanceServiceServer) MarkAttendance(context.Context, *MarkAttendanceRequest) (*MarkAttendanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkAttendance not implemented")
}

func (UnimplementedAttendanceServiceServer) GetHistory(context.Context, *GetHistoryRequest) (*GetHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetHistory not implemented")
}

// AttendanceService_ServiceDesc は AttendanceService の grpc.ServiceDesc です。
var AttendanceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AttendanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "MarkAttendance",
			Handler:    wire.UnaryHandler(AttendanceService_MarkAttendance_FullMethodName, AttendanceServiceServer.MarkAttendance),
		},
		{
			MethodName: "GetHistory",
			Handler:    wire.UnaryHandler(AttendanceService_GetHistory_FullMethodName, AttendanceServiceServer.GetHistory),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hrms/attendance/v1/attendance.proto",
}

// RegisterAttendanceServiceServer は srv を s に登録します。
func RegisterAttendanceServiceServer(s grpc.ServiceRegistrar, srv AttendanceServiceServer) {
	s.RegisterService(&AttendanceService_ServiceDesc, srv)
}

// AttendanceServiceClient は AttendanceService のクライアントです。
type AttendanceServiceClient interface {
	MarkAttendance(ctx context.Context, in *MarkAttendanceRequest, opts ...grpc.CallOption) (*MarkAttendanceResponse, error)
	GetHistory(ctx context.Context, in *GetHistoryRequest, opts ...grpc.CallOption) (*GetHistoryResponse, error)
}

type attendanceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAttendanceServiceClient は AttendanceServiceClient を生成します。
func NewAttendanceServiceClient(cc grpc.ClientConnInterface) AttendanceServiceClient {
	return &attendanceServiceClient{cc: cc}
}

func (c *attendanceServiceClient) MarkAttendance(ctx context.Context, in *MarkAttendanceRequest, opts ...grpc.CallOption) (*MarkAttendanceResponse, error) {
	return wire.Invoke[MarkAttendanceResponse](ctx, c.cc, AttendanceService_MarkAttendance_FullMethodName, in, opts...)
}

func (c *attendanceServiceClient) GetHistory(ctx context.Context, in *GetHistoryRequest, opts ...grpc.CallOption) (*GetHistoryResponse, error) {
	return wire.Invoke[GetHistoryResponse](ctx, c.cc, AttendanceService_GetHistory_FullMethodName, in, opts...)
}
