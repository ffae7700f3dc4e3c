// Package server wires the aura server together: PostgreSQL, the optional
// Redis principal cache, the S3 object store, the access gate, and the
// gRPC and HTTP endpoints. It handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/dmitrijs2005/aura/internal/server/broker"
	"github.com/dmitrijs2005/aura/internal/server/config"
	"github.com/dmitrijs2005/aura/internal/server/httpapi"
	"github.com/dmitrijs2005/aura/internal/server/principals"
	"github.com/dmitrijs2005/aura/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aura/internal/server/services"
	"github.com/dmitrijs2005/aura/internal/server/storage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/aura/internal/server/grpc"
)

// openDB is a seam for tests.
var openDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	redis           *redis.Client
	gate            *auth.Gate
	userService     *services.UserService
	resourceService *services.ResourceService
	broker          *broker.Broker
}

// newRepositoryManager and newRedisClient are seams for tests.
var (
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newRedisClient       = redis.NewClient
)

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var rdb *redis.Client
	fail := func(stage string, err error) (*App, error) {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = db.Close()
		return nil, fmt.Errorf("%s error: %w", stage, err)
	}

	m := newRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return fail("migration", err)
	}

	rdb, cache, err := newPrincipalCache(c)
	if err != nil {
		return fail("redis init", err)
	}

	store, err := newObjectStore(ctx, c)
	if err != nil {
		return fail("object storage init", err)
	}
	if store == nil {
		logger.Warn(ctx, "S3 bucket is not configured, transfer requests will be rejected")
	}

	verifier := auth.NewJWTVerifier([]byte(c.SecretKey), m.Users(db), cache, logger)
	us := services.NewUserService(db, m, cache, c, logger)
	rs := services.NewResourceService(db, m, logger)
	b := broker.New(broker.DefaultConfig(), store, m.Resources(db), logger)

	if err := us.EnsureAdmin(ctx, c.BootstrapAdminHandle, c.BootstrapAdminPassword); err != nil {
		return fail("bootstrap admin", err)
	}

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		redis:           rdb,
		gate:            auth.NewGate(verifier, logger),
		userService:     us,
		resourceService: rs,
		broker:          b,
	}, nil
}

// newPrincipalCache returns a nil cache when no Redis URL is configured.
func newPrincipalCache(c *config.Config) (*redis.Client, auth.PrincipalCache, error) {
	if c.RedisURL == "" {
		return nil, nil, nil
	}
	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := newRedisClient(opts)
	return rdb, principals.NewRedisCache(rdb, c.PrincipalCacheTTL), nil
}

// newObjectStore returns an untyped nil when no bucket is configured so the
// broker sees an unconfigured store.
func newObjectStore(ctx context.Context, c *config.Config) (broker.ObjectStore, error) {
	if c.S3Bucket == "" {
		return nil, nil
	}
	s, err := storage.NewS3Store(ctx, storage.Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		BaseEndpoint: c.S3BaseEndpoint,
		UsePathStyle: c.S3UsePathStyle,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.gate, app.userService, app.resourceService, app.broker)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	gin.SetMode(app.config.GinMode)

	opts := httpapi.Options{
		AllowedOrigins: app.config.CORSAllowedOrigins,
		MaxUploadSize:  broker.DefaultMaxUploadSize,
	}
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, opts, app.logger, app.gate, app.userService, app.resourceService, app.broker)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
