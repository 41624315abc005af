// Package server wires the itemkeeper server together: database, migrations,
// services, object storage and the gRPC and REST endpoints. It also handles
// graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
	"github.com/dmitrijs2005/itemkeeper/internal/server/storage"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/itemkeeper/internal/server/grpc"
	hs "github.com/dmitrijs2005/itemkeeper/internal/server/http"
)

// runner is a server that blocks until ctx is cancelled.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	servers map[string]runner
}

// Seams for tests.
var (
	openRepositories = repomanager.Open
	newPresigner     = func(ctx context.Context, s storage.S3Settings) (storage.ObjectPresigner, error) {
		return storage.NewS3Presigner(ctx, s)
	}
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, rm, err := openRepositories(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	presigner, err := newPresigner(ctx, storage.S3Settings{
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		logger.Warn(ctx, "object storage disabled", "error", err.Error())
		presigner = nil
	}

	codec := auth.NewTokenCodec(auth.TokenSettings{
		Secret: []byte(c.SecretKey),
		TTL:    c.AccessTokenValidityDuration,
	})
	hasher := auth.NewPasswordHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, hasher, codec)
	is := services.NewItemService(db, rm, presigner)
	gate := services.NewAuthGate(db, rm, codec)

	gin.SetMode(gin.ReleaseMode)

	httpServer := hs.NewHTTPServer(c.EndpointAddrHTTP, logger, us, is, gate)
	httpServer.SetAllowedOrigins(c.AllowedOrigins)

	servers := map[string]runner{
		"grpc": gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, is, gate),
		"http": httpServer,
	}

	return &App{config: c, logger: logger, db: db, servers: servers}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, name string, s runner) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err.Error())
		cancelFunc()
	}
}

// Run starts every endpoint and blocks until a signal arrives, ctx is
// cancelled or one of the endpoints fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	for name, s := range app.servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startServer(ctx, cancelFunc, name, s)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped")
}
