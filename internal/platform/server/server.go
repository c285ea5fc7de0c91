package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	attendancev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/attendance/v1"
	employeev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/employee/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services は gRPC サーバーに登録するサービス実装です。
type Services struct {
	Employees  employeev1.EmployeeServiceServer
	Attendance attendancev1.AttendanceServiceServer
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// 標準のヘルスチェックサービスも登録され、各サービスは SERVING で開始します。
func New(listenAddr string, services Services, opts ...grpc.ServerOption) *Server {
	srv := grpc.NewServer(opts...)
	healthSrv := health.NewServer()

	healthpb.RegisterHealthServer(srv, healthSrv)
	if services.Employees != nil {
		employeev1.RegisterEmployeeServiceServer(srv, services.Employees)
		healthSrv.SetServingStatus(employeev1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	}
	if services.Attendance != nil {
		attendancev1.RegisterAttendanceServiceServer(srv, services.Attendance)
		healthSrv.SetServingStatus(attendancev1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	}

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。テストでは bufconn のリスナーを渡します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
