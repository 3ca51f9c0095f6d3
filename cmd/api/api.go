package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hopskip/docs" //required to generate swagger docs
	"hopskip/internal/auth"
	"hopskip/internal/cache"
	"hopskip/internal/capacity"
	"hopskip/internal/dashboard"
	"hopskip/internal/domain/storage"
	"hopskip/internal/lifecycle"
	"hopskip/internal/mailer"
	"hopskip/internal/notifications"
	"hopskip/internal/ratelimiter"
	"hopskip/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	activity      store.Storage
	capacity      *capacity.Service
	dashboard     *dashboard.Service
	lifecycle     *lifecycle.Service
	reportCache   *cache.ReportCache
	logger        *zap.SugaredLogger
	mailer        mailer.Client
	push          notifications.PushSender
	authenticator auth.Authenticator
	rateLimiter   *ratelimiter.FixedWindowRateLimiter
}

type config struct {
	addr        string
	env         string
	apiURL      string
	frontendURL string
	db          dbConfig
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	cacheTTL    time.Duration
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	// bcrypt hash of the ops password, not the password itself
	passHash string
}

type mailConfig struct {
	fromEmail string
	opsEmail  string
	mailtrap  mailTrapConfig
}

type mailTrapConfig struct {
	apiKey string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Request context deadline; handlers watch ctx.Done() through their
	// database calls.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/authentication", func(r chi.Router) {
			r.With(app.BasicAuthMiddleware()).Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getAllBookingsHandler)
			r.Route("/{bookingID}", func(r chi.Router) {
				r.Post("/freeze", app.freezeBookingHandler)
				r.Post("/reactivate", app.reactivateBookingHandler)
				r.Post("/cancel", app.cancelBookingHandler)
				r.Post("/waiting-list/promote", app.promoteWaitingListHandler)
				r.Delete("/waiting-list", app.removeWaitingListHandler)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/stats", app.getDashboardStatsHandler)
			r.Get("/widgets", app.getWidgetsHandler)
			r.Put("/widgets", app.updateWidgetsHandler)
		})

		r.Route("/credits", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/", app.createCreditHandler)
			r.Get("/booking/{bookingID}", app.getCreditsByBookingHandler)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getActivityHandler)
		})

		r.Route("/push-tokens", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/", app.savePushTokenHandler)
			r.Delete("/", app.removePushTokenHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
