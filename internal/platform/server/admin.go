package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	adminReadHeaderTimeout = 5 * time.Second
	adminShutdownTimeout   = 5 * time.Second
	healthCheckTimeout     = 2 * time.Second
)

// Pinger はストレージの疎通確認です。
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdminServer はヘルスチェックとメトリクスを公開する HTTP サーバーです。
type AdminServer struct {
	httpServer *http.Server
}

// NewAdmin は AdminServer を構築します。metrics が nil の場合 /metrics は登録しません。
func NewAdmin(listenAddr string, storage Pinger, metrics http.Handler) *AdminServer {
	return &AdminServer{
		httpServer: &http.Server{
			Addr:              listenAddr,
			Handler:           NewAdminHandler(storage, metrics),
			ReadHeaderTimeout: adminReadHeaderTimeout,
		},
	}
}

// NewAdminHandler は管理用エンドポイントのルーティングを返します。
func NewAdminHandler(storage Pinger, metrics http.Handler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if storage != nil {
			if err := storage.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "storage": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	return r
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *AdminServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve admin http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), adminShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown admin http: %w", err)
	}
	return nil
}
