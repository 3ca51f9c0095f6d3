package main

import (
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"hopskip/internal/auth"
	"hopskip/internal/cache"
	"hopskip/internal/capacity"
	"hopskip/internal/dashboard"
	"hopskip/internal/db"
	"hopskip/internal/domain/credits"
	"hopskip/internal/domain/storage"
	"hopskip/internal/lifecycle"
	"hopskip/internal/mailer"
	"hopskip/internal/notifications"
	"hopskip/internal/ratelimiter"
	"hopskip/internal/store"

	"github.com/9ssi7/exponent"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			Hopskip Admin API
//	@description	Administrative API for the Hopskip children's activity booking platform.

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	maxConnsStr := os.Getenv("DB_MAX_CONNS")
	maxConns, err := strconv.Atoi(maxConnsStr)
	if err != nil {
		log.Fatalf("Invalid value for DB_MAX_CONNS: %v", err)
	}

	cacheTTL := 30 * time.Second
	if ttlStr := os.Getenv("REPORT_CACHE_TTL"); ttlStr != "" {
		if d, err := time.ParseDuration(ttlStr); err == nil {
			cacheTTL = d
		}
	}

	cfg := config{
		addr:        os.Getenv("ADDR"),
		env:         os.Getenv("ENV"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		apiURL:      os.Getenv("EXTERNAL_URL"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    maxConns,
			maxIdleTime: os.Getenv("DB_MAX_IDLE_TIME"),
		},
		mail: mailConfig{
			fromEmail: os.Getenv("MAIL_FROM_EMAIL"),
			opsEmail:  os.Getenv("MAIL_OPS_EMAIL"),
			mailtrap: mailTrapConfig{
				apiKey: os.Getenv("MAILTRAP_API_KEY"),
			},
		},
		auth: authConfig{
			basic: basicConfig{
				user:     os.Getenv("AUTH_BASIC_USER"),
				passHash: os.Getenv("AUTH_BASIC_PASS_HASH"),
			},
			token: tokenConfig{
				secret:          os.Getenv("AUTH_TOKEN_SECRET"),
				refreshSecret:   os.Getenv("AUTH_TOKEN_REFRESH_SECRET"),
				accessTokenExp:  time.Hour * 24,
				refreshTokenExp: time.Hour * 24 * 7,
				iss:             "Hopskip",
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
		cacheTTL:    cacheTTL,
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Domain repositories run on pgx; the legacy activity store still goes
	// through database/sql.
	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	sqlDB, err := sql.Open("postgres", cfg.db.addr)
	if err != nil {
		logger.Fatal(err)
	}
	defer sqlDB.Close()

	container := storage.NewContainer(pool)
	activity := store.NewStorage(sqlDB)

	refGen, err := credits.NewReferenceGenerator(os.Getenv("CREDIT_REFERENCE_SALT"))
	if err != nil {
		logger.Fatal(err)
	}

	capacitySvc := capacity.NewService(container.Venues, container.Schedules, container.Bookings)
	dashboardSvc := dashboard.NewService(container.Schedules, container.Bookings, container.Widgets)
	lifecycleSvc := lifecycle.NewService(container, refGen)

	// Redis is optional; a nil client disables the report cache.
	redisClient := cache.NewRedisClient()
	if redisClient == nil {
		logger.Warn("redis unavailable, capacity report cache disabled")
	}
	reportCache := cache.NewReportCache(redisClient, cfg.cacheTTL, "capacity")

	mailtrap, err := mailer.NewMailTrapClient(cfg.mail.mailtrap.apiKey, cfg.mail.fromEmail)
	if err != nil {
		logger.Fatal(err)
	}

	expoClient := exponent.NewClient()
	push := notifications.NewExpoAdapter(expoClient)

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.refreshSecret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.accessTokenExp,
		cfg.auth.token.refreshTokenExp,
	)

	app := &application{
		config:        cfg,
		store:         container,
		activity:      activity,
		capacity:      capacitySvc,
		dashboard:     dashboardSvc,
		lifecycle:     lifecycleSvc,
		reportCache:   reportCache,
		logger:        logger,
		mailer:        mailtrap,
		push:          push,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
	}

	// Metrics collected at /v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return pool.Stat()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
