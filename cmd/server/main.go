package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/handler"
	"github.com/ogurasousui/hrms-lite/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/hrms-lite/internal/adapters/repository/memory"
	"github.com/ogurasousui/hrms-lite/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
	"github.com/ogurasousui/hrms-lite/internal/core/roster"
	"github.com/ogurasousui/hrms-lite/internal/platform/config"
	pg "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/ogurasousui/hrms-lite/internal/platform/metrics"
	"github.com/ogurasousui/hrms-lite/internal/platform/server"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// transactionManager は社員・勤怠の両ユースケースが要求するトランザクション制御です。
type transactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type storage struct {
	employees employee.Repository
	records   attendance.Repository
	tx        transactionManager
	pinger    server.Pinger
	close     func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer store.close()

	m := metrics.New()

	attendanceSvc := attendance.NewService(store.records, employee.NewDirectory(store.employees), nil, store.tx)
	employeeSvc := employee.NewService(store.employees, nil, store.tx, attendanceSvc)
	rosterSvc := roster.NewService(employeeSvc, attendanceSvc, store.tx, roster.Reporters(roster.NewLogReporter(nil), m))

	grpcServer := server.New(cfg.Server.ListenAddr, server.Services{
		Employees:  handler.NewEmployeeGrpcHandler(employeeSvc, rosterSvc),
		Attendance: handler.NewAttendanceGrpcHandler(attendanceSvc, m),
	}, grpc.ChainUnaryInterceptor(
		interceptor.Recovery(nil),
		interceptor.Logging(nil),
		interceptor.Metrics(m),
	))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("gRPC server listening on %s (storage=%s)", cfg.Server.ListenAddr, cfg.Storage.Driver)
		return grpcServer.Run(gctx)
	})

	if cfg.Admin.ListenAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		admin := server.NewAdmin(cfg.Admin.ListenAddr, store.pinger, m.Handler())
		g.Go(func() error {
			log.Printf("admin server listening on %s", cfg.Admin.ListenAddr)
			return admin.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		mem := memory.NewStore()
		log.Printf("using in-memory storage; data is lost on exit")
		return &storage{
			employees: mem.Employees(),
			records:   mem.Attendance(),
			tx:        mem.Transactions(),
			pinger:    mem,
			close:     func() {},
		}, nil
	case config.StorageDriverPostgres:
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &storage{
			employees: postgres.NewEmployeeRepository(dbPool),
			records:   postgres.NewAttendanceRepository(dbPool),
			tx:        pg.NewTransactionManager(dbPool),
			pinger:    dbPool,
			close:     dbPool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
