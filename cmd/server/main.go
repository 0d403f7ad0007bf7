package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"

	"github.com/verdant/plantcare/internal/config"
	"github.com/verdant/plantcare/internal/handler"
	"github.com/verdant/plantcare/internal/notify"
	"github.com/verdant/plantcare/internal/repository"
	"github.com/verdant/plantcare/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		return err
	}
	slog.Info("database connected")

	reminderRepo := repository.NewReminderRepository(db)
	plantRepo := repository.NewPlantRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	center := notify.NewMemoryCenter(notify.AuthNotDetermined)
	if _, err := center.RequestAuthorization(context.Background()); err != nil {
		return fmt.Errorf("request notification authorization: %w", err)
	}
	projector := notify.NewProjector(center, reminderRepo)

	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	reminderSvc := service.NewReminderService(
		reminderRepo, plantRepo, settingsRepo, projector,
		service.StaticWeather(cfg.WeatherRainExpected), cfg.WeatherAdjustMaxDays,
	)
	plantSvc := service.NewPlantService(plantRepo, reminderRepo, projector)
	settingsSvc := service.NewSettingsService(settingsRepo)

	validate := handler.NewAppValidator()
	reminderHandler := handler.NewReminderHandler(reminderSvc, validate)
	plantHandler := handler.NewPlantHandler(plantSvc, validate)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, validate)

	r := chi.NewRouter()

	r.Use(handler.RequestID)
	r.Use(handler.Logger)
	r.Use(handler.Recover)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handler.JWTAuth(authSvc))

		r.Route("/reminders", func(r chi.Router) {
			r.Post("/", reminderHandler.Create)
			r.Get("/due", reminderHandler.Due)
			r.Post("/complete-overdue", reminderHandler.CompleteOverdue)
			r.Get("/{id}", reminderHandler.Get)
			r.Post("/{id}/complete", reminderHandler.Complete)
			r.Post("/{id}/snooze", reminderHandler.Snooze)
			r.Post("/{id}/toggle", reminderHandler.Toggle)
			r.Delete("/{id}", reminderHandler.Delete)
		})

		r.Route("/plants", func(r chi.Router) {
			r.Post("/", plantHandler.Create)
			r.Get("/", plantHandler.List)
			r.Delete("/{id}", plantHandler.Delete)
			r.Get("/{id}/reminders", reminderHandler.ListForPlant)
			r.Get("/{id}/suggestions", reminderHandler.Suggest)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Update)
		})
	})

	jobs, err := startJobs(cfg, center, projector)
	if err != nil {
		return err
	}
	defer jobs.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// startJobs schedules the badge resync and the delivery sweep.
func startJobs(cfg config.Config, center *notify.MemoryCenter, projector *notify.Projector) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.BadgeResyncInterval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := projector.Resync(ctx); err != nil {
			slog.Warn("badge resync failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule badge resync: %w", err)
	}

	_, err = c.AddFunc(fmt.Sprintf("@every %s", cfg.DeliveryInterval), func() {
		for _, req := range center.DeliverDue(time.Now()) {
			slog.Info("notification delivered",
				"notification_id", req.ID, "title", req.Title, "at", req.At)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule delivery sweep: %w", err)
	}

	c.Start()
	return c, nil
}
