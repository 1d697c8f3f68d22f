// Package server assembles the router and runs the HTTP listener.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/go-microservice/internal/api"
	"github.com/janisto/go-microservice/internal/config"
	"github.com/janisto/go-microservice/internal/http/routes"
	applog "github.com/janisto/go-microservice/internal/platform/logging"
	appmiddleware "github.com/janisto/go-microservice/internal/platform/middleware"
	"github.com/janisto/go-microservice/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X github.com/janisto/go-microservice/internal/server.Version=1.2.3"
var Version = "dev"

// maxRequestBody bounds request bodies. No route reads one.
const maxRequestBody = 1 << 20

// NewRouter returns the complete handler: middleware, problem responses for
// unmatched requests, and the huma API with every route registered.
func NewRouter(cfg *config.Config) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// Trusts X-Forwarded-For / X-Real-IP; run behind a proxy that sets them.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBody),
		applog.RequestLogger(cfg.ProjectID),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	NewAPI(router, cfg)
	return router
}

// NewAPI mounts a huma API on router and registers the routes.
func NewAPI(router chi.Router, cfg *config.Config) huma.API {
	humaAPI := humachi.New(router, api.NewConfig(cfg.ServiceName, Version))
	routes.Register(humaAPI, cfg.ServiceName)
	return humaAPI
}

// Start logs the startup line and returns the server for cfg with the full router
// installed. It does not bind.
func Start(ctx context.Context, cfg *config.Config) *http.Server {
	applog.LogInfo(ctx, cfg.ServiceName+" is starting...",
		zap.String("version", Version),
		zap.String("logLevel", applog.Level().String()),
	)
	return New(cfg, NewRouter(cfg))
}

// New returns an http.Server for cfg.Addr() with the configured limits.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
}

// Listen binds srv.Addr. It fails immediately when the address is taken.
func Listen(srv *http.Server) (net.Listener, error) {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return ln, nil
}

// Run binds srv and serves until the listener fails or srv is closed. A bind
// failure is returned without retrying.
func Run(ctx context.Context, srv *http.Server) error {
	ln, err := Listen(srv)
	if err != nil {
		return err
	}
	return Serve(ctx, srv, ln)
}

// Serve logs the listening address and serves on ln. http.ErrServerClosed is not
// reported as an error.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	applog.LogInfo(ctx, "server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("url", "http://"+srv.Addr),
	)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
