package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/huma-users/internal/http/health"
	"github.com/janisto/huma-users/internal/http/v1/routes"
	"github.com/janisto/huma-users/internal/platform/config"
	applog "github.com/janisto/huma-users/internal/platform/logging"
	appmiddleware "github.com/janisto/huma-users/internal/platform/middleware"
	"github.com/janisto/huma-users/internal/platform/respond"
	usersvc "github.com/janisto/huma-users/internal/service/user"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "configuration error", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(context.Background(), "invalid log level, keeping info", zap.Error(err))
	}
	applog.SetProjectID(cfg.FirebaseProjectID)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		applog.LogFatal(ctx, "store init failed", err, zap.String("store", cfg.Store))
	}
	defer func() {
		if err := closeStore(); err != nil {
			applog.LogError(context.Background(), "store close error", err)
		}
	}()
	svc := usersvc.NewService(store, cfg.MajorityAge)
	applog.LogInfo(ctx, "user service ready",
		zap.String("store", cfg.Store),
		zap.Int("majorityAge", svc.MajorityAge()),
	)

	srv := newServer(":"+cfg.Port, newRouter(cfg, svc))

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		return
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// newRouter assembles the middleware stack, the health check and the API.
func newRouter(cfg *config.Config, svc *usersvc.UserService) http.Handler {
	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins()...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For; only deploy behind a
		// trusted proxy such as Cloud Run.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)
	router.Get("/health", health.Handler(svc))

	humaCfg := huma.DefaultConfig("Users API", Version)
	humaCfg.DocsPath = docsPath
	api := humachi.New(router, humaCfg)
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)

	routes.Register(api, svc)
	return router
}

// addCBORContent documents CBOR next to JSON for every request and response
// body.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}
