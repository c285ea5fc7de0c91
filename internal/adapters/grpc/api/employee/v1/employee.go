// Package employeev1 は hrms.employee.v1.EmployeeService の型とサービス定義です。
package employeev1

import (
	"context"

	attendancev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/attendance/v1"
	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	ServiceName = "hrms.employee.v1.EmployeeService"

	EmployeeService_CreateEmployee_FullMethodName = "/" + ServiceName + "/CreateEmployee"
	EmployeeService_ListEmployees_FullMethodName  = "/" + ServiceName + "/ListEmployees"
	EmployeeService_GetEmployee_FullMethodName    = "/" + ServiceName + "/GetEmployee"
	EmployeeService_DeleteEmployee_FullMethodName = "/" + ServiceName + "/DeleteEmployee"
)

// Employee は社員です。AttendanceHistory は一覧取得時のみ設定されます。
type Employee struct {
	Id                string                           `json:"id"`
	EmployeeCode      string                           `json:"employee_code"`
	FullName          string                           `json:"full_name"`
	Email             string                           `json:"email"`
	Department        string                           `json:"department"`
	CreatedAt         string                           `json:"created_at,omitempty"`
	AttendanceHistory []*attendancev1.AttendanceRecord `json:"attendance_history"`
}

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
}

type CreateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

type GetEmployeeRequest struct {
	Id string `json:"id"`
}

func (x *GetEmployeeRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

type GetEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type DeleteEmployeeRequest struct {
	Id string `json:"id"`
}

func (x *DeleteEmployeeRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

// EmployeeServiceServer はサーバー側の実装が満たすインターフェースです。
type EmployeeServiceServer interface {
	CreateEmployee(context.Context, *CreateEmployeeRequest) (*CreateEmployeeResponse, error)
	ListEmployees(context.Context, *emptypb.Empty) (*ListEmployeesResponse, error)
	GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error)
	DeleteEmployee(context.Context, *DeleteEmployeeRequest) (*emptypb.Empty, error)
}

// UnimplementedEmployeeServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedEmployeeServiceServer struct{}

func (UnimplementedEmployeeServiceServer) CreateEmployee(context.Context, *CreateEmployeeRequest) (*CreateEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) ListEmployees(context.Context, *emptypb.Empty) (*ListEmployeesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployees not implemented")
}

func (UnimplementedEmployeeServiceServer) GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) DeleteEmployee(context.Context, *DeleteEmployeeRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEmployee not implemented")
}

// EmployeeService_ServiceDesc は EmployeeService の grpc.ServiceDesc です。
var EmployeeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateEmployee",
			Handler:    wire.UnaryHandler(EmployeeService_CreateEmployee_FullMethodName, EmployeeServiceServer.CreateEmployee),
		},
		{
			MethodName: "ListEmployees",
			Handler:    wire.UnaryHandler(EmployeeService_ListEmployees_FullMethodName, EmployeeServiceServer.ListEmployees),
		},
		{
			MethodName: "GetEmployee",
			Handler:    wire.UnaryHandler(EmployeeService_GetEmployee_FullMethodName, EmployeeServiceServer.GetEmployee),
		},
		{
			MethodName: "DeleteEmployee",
			Handler:    wire.UnaryHandler(EmployeeService_DeleteEmployee_FullMethodName, EmployeeServiceServer.DeleteEmployee),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hrms/employee/v1/employee.proto",
}

// RegisterEmployeeServiceServer は srv を s に登録します。
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&EmployeeService_ServiceDesc, srv)
}

// EmployeeServiceClient は EmployeeService のクライアントです。
type EmployeeServiceClient interface {
	CreateEmployee(ctx context.Context, in *CreateEmployeeRequest, opts ...grpc.CallOption) (*CreateEmployeeResponse, error)
	ListEmployees(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListEmployeesResponse, error)
	GetEmployee(ctx context.Context, in *GetEmployeeRequest, opts ...grpc.CallOption) (*GetEmployeeResponse, error)
	DeleteEmployee(ctx context.Context, in *DeleteEmployeeRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type employeeServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEmployeeServiceClient は EmployeeServiceClient を生成します。
func NewEmployeeServiceClient(cc grpc.ClientConnInterface) EmployeeServiceClient {
	return &employeeServiceClient{cc: cc}
}

func (c *employeeServiceClient) CreateEmployee(ctx context.Context, in *CreateEmployeeRequest, opts ...grpc.CallOption) (*CreateEmployeeResponse, error) {
	return wire.Invoke[CreateEmployeeResponse](ctx, c.cc, EmployeeService_CreateEmployee_FullMethodName, in, opts...)
}

func (c *employeeServiceClient) ListEmployees(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListEmployeesResponse, error) {
	return wire.Invoke[ListEmployeesResponse](ctx, c.cc, EmployeeService_ListEmployees_FullMethodName, in, opts...)
}

func (c *employeeServiceClient) GetEmployee(ctx context.Context, in *GetEmployeeRequest, opts ...grpc.CallOption) (*GetEmployeeResponse, error) {
	return wire.Invoke[GetEmployeeResponse](ctx, c.cc, EmployeeService_GetEmployee_FullMethodName, in, opts...)
}

func (c *employeeServiceClient) DeleteEmployee(ctx context.Context, in *DeleteEmployeeRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return wire.Invoke[emptypb.Empty](ctx, c.cc, EmployeeService_DeleteEmployee_FullMethodName, in, opts...)
}
