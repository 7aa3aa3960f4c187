package constants

import "time"

const (
	PasswordMinLength  = 6
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DefaultHTTPPort        = "8000"
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultBcryptCost      = 12
	DefaultRequestTimeout  = 5 * time.Second
	DevelopmentJWTSecret   = "development-secret-key-change-me-please"
	TokenTypeBearer        = "bearer"
	ServiceName            = "vehicle-management-api"
	DefaultApplicationName = "vehicle-api"

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerTimeout   = 10 * time.Second
	DefaultCircuitBreakerReset     = 10 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerMaxHeaderBytes    = 64 << 10

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

const (
	RouteHealth   = "/health"
	RouteMetrics  = "/metrics"
	RouteRegister = "/auth/register"
	RouteLogin    = "/auth/login"
	RouteMe       = "/auth/me"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
