// Package interceptor は gRPC サーバーの単項インターセプタです。
package interceptor

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RPCObserver は RPC の結果を受け取ります。
type RPCObserver interface {
	ObserveRPC(method, code string, elapsed time.Duration)
}

// Recovery はハンドラの panic を Internal に変換します。
func Recovery(logger *log.Logger) grpc.UnaryServerInterceptor {
	logger = orDefault(logger)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("panic in %s: %v\n%s", info.FullMethod, r, debug.Stack())
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// Logging はメソッド名・ステータスコード・所要時間を出力します。
func Logging(logger *log.Logger) grpc.UnaryServerInterceptor {
	logger = orDefault(logger)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		if code == codes.OK {
			logger.Printf("grpc method=%s code=%s duration=%s", info.FullMethod, code, time.Since(start))
		} else {
			logger.Printf("grpc method=%s code=%s duration=%s err=%v", info.FullMethod, code, time.Since(start), status.Convert(err).Message())
		}
		return resp, err
	}
}

// Metrics は RPC の結果を observer へ渡します。
func Metrics(observer RPCObserver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		observer.ObserveRPC(info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}

func orDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
