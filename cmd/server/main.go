package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/janisto/go-microservice/internal/config"
	applog "github.com/janisto/go-microservice/internal/platform/logging"
	"github.com/janisto/go-microservice/internal/server"
)

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}
	applog.SetLevel(cfg.LogLevel)

	srv := server.Start(ctx, cfg)
	if err := server.Run(ctx, srv); err != nil {
		applog.LogFatal(ctx, "server failed", err, zap.String("addr", srv.Addr))
	}
}
