package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/attendance-backend-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
	notificationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/notification"
	officeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/office"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logCloser := logger.New(cfg.Log, cfg.App.Env)
	defer logCloser.Close()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	policy, err := attendance.NewPolicy(
		cfg.Attendance.Timezone,
		cfg.Attendance.WorkStart,
		cfg.Attendance.WorkEnd,
		cfg.Attendance.LateAfter,
		cfg.Attendance.AutoCheckout,
	)
	if err != nil {
		return fmt.Errorf("attendance policy: %w", err)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	var holidayRepo holiday.HolidayRepository = postgresql.NewHolidayRepository(db)
	var officeLocationRepo office.OfficeLocationRepository = postgresql.NewOfficeLocationRepository(db)

	if addr := cfg.RedisAddr(); addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		c := cache.New(redisClient, cfg.Redis.TTL)
		holidayRepo = redisRepo.NewHolidayRepository(holidayRepo, c)
		officeLocationRepo = redisRepo.NewOfficeLocationRepository(officeLocationRepo, c)
		slog.Info("redis cache enabled", "addr", addr, "ttl", cfg.Redis.TTL.String())
	}

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(hub, notificationService.Config{})
	defer notifService.Stop()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		holidayRepo,
		officeLocationRepo,
		userRepo,
		notifService,
		policy,
	)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, policy.Location)
	officeSvc := officeService.NewOfficeLocationService(officeLocationRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         log,
			AllowedOrigins: cfg.App.AllowedOrigins,
			JWTService:     JWTService,
			RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		},
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewHolidayHandler(holidaySvc),
		appHTTP.NewOfficeLocationHandler(officeSvc),
		appHTTP.NewEventHandler(notifService),
	)

	// Request contexts derive from baseCtx so open event streams end on shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "timezone", cfg.Attendance.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
