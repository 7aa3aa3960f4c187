package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/techchallenge/vehicle-api/internal/auth/http"
	authservice "github.com/techchallenge/vehicle-api/internal/auth/service"
	"github.com/techchallenge/vehicle-api/internal/common/clock"
	"github.com/techchallenge/vehicle-api/internal/common/config"
	"github.com/techchallenge/vehicle-api/internal/common/constants"
	commoncrypto "github.com/techchallenge/vehicle-api/internal/common/crypto"
	"github.com/techchallenge/vehicle-api/internal/common/db"
	commonhttp "github.com/techchallenge/vehicle-api/internal/common/http"
	"github.com/techchallenge/vehicle-api/internal/common/jwtverify"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	"github.com/techchallenge/vehicle-api/internal/common/resilience"
	userrepo "github.com/techchallenge/vehicle-api/internal/user/repository"
	"github.com/techchallenge/vehicle-api/internal/user/repository/migrations"
)

// App holds the process-wide dependencies. Nothing in it changes after
// NewApp returns.
type App struct {
	Log           *logger.Logger
	Config        config.Config
	Pool          *pgxpool.Pool
	Users         userrepo.Repository
	AuthService   *authservice.AuthService
	Authenticator *authservice.Authenticator
}

func NewApp(ctx context.Context, log *logger.Logger, cfg config.Config) (*App, error) {
	if cfg.UsingDevelopmentSecret {
		log.Warn("JWT_SECRET not set, using the development secret; never run like this in production")
	}

	pool, err := db.NewPool(ctx, log, cfg.AuthDatabaseURL, db.DefaultPoolOptions("auth"))
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, log, pool, migrations.FS); err != nil {
		pool.Close()
		return nil, err
	}

	db.StartPoolMetrics(ctx, pool, "auth", constants.DBPoolMetricsInterval)

	users := userrepo.NewBreakerRepository(userrepo.NewPgRepository(pool), resilience.CircuitBreakerConfig{
		Threshold:  constants.DefaultCircuitBreakerThreshold,
		Timeout:    constants.DefaultCircuitBreakerTimeout,
		ResetAfter: constants.DefaultCircuitBreakerReset,
		Name:       "users_store",
		Logger:     log,
	})

	app, err := newApp(log, cfg, users)
	if err != nil {
		pool.Close()
		return nil, err
	}
	app.Pool = pool
	return app, nil
}

// NewInMemoryApp wires the same services over a MemoryRepository, for local
// runs without Postgres.
func NewInMemoryApp(log *logger.Logger, cfg config.Config) (*App, error) {
	return newApp(log, cfg, userrepo.NewMemoryRepository(clock.NewRealClock()))
}

func newApp(log *logger.Logger, cfg config.Config, users userrepo.Repository) (*App, error) {
	hasher, err := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	codec, err := jwtverify.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	clk := clock.NewRealClock()
	return &App{
		Log:           log,
		Config:        cfg,
		Users:         users,
		AuthService:   authservice.NewAuthService(users, hasher, codec, clk, log),
		Authenticator: authservice.NewAuthenticator(users, codec, clk, log),
	}, nil
}

// Handler returns the full HTTP surface: auth routes, health and /metrics,
// behind the shared middleware.
func (a *App) Handler() http.Handler {
	authHandler := authhttp.NewHandler(a.AuthService, a.Authenticator, authhttp.Config{
		RequestTimeout: a.Config.RequestTimeout,
		ServiceName:    constants.ServiceName,
	}, a.Log)

	mux := http.NewServeMux()
	mux.Handle(constants.RouteMetrics, promhttp.Handler())
	mux.Handle("/", authHandler)

	return commonhttp.BuildBaseHandler(a.Log, mux)
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
