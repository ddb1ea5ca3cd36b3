package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mehdi559/poe/internal/config"
	"github.com/mehdi559/poe/internal/handler"
	"github.com/mehdi559/poe/internal/logger"
	"github.com/mehdi559/poe/internal/model"
	"github.com/mehdi559/poe/internal/scheduler"
	"github.com/mehdi559/poe/internal/service"
	"github.com/mehdi559/poe/internal/store"
	"github.com/mehdi559/poe/pkg/datetime"
)

func main() {
	cfg := config.Load()
	slogger := logger.Logger()

	// Pick the persistence backend
	var persister store.Persister
	switch cfg.StorageBackend {
	case "sqlite":
		sqliteStore, err := store.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() { _ = sqliteStore.Close() }()
		persister = sqliteStore
	default:
		persister = store.NewFileStore(cfg.DataFile)
	}

	// Load the ledger, seeding defaults on first run
	ledger, err := persister.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}
	if ledger == nil {
		ledger = model.DefaultLedger()
		slogger.Info("No saved ledger found, starting from defaults")
	}

	st := store.New(ledger)

	// Persist every successful mutation
	st.Subscribe(func(snapshot model.Ledger) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := persister.Save(ctx, snapshot); err != nil {
			slogger.Error("Failed to persist ledger", slog.String("error", err.Error()))
		}
	})

	// Notification language follows the profile, re-read on every
	// notification so a settings change applies without a restart
	notifier := service.NewLogNotifier(func() string {
		if lang := st.Snapshot().Settings.Language; lang != "" {
			return lang
		}
		return cfg.DefaultLanguage
	})

	now := datetime.Today

	// Initialize services
	categoryService := service.NewCategoryService(st, notifier)
	expenseService := service.NewExpenseService(st, notifier)
	savingsService := service.NewSavingsService(st, notifier)
	debtService := service.NewDebtService(st, notifier)
	revenueService := service.NewRevenueService(st, notifier)
	recurringService := service.NewRecurringService(st, notifier)
	dashboardService := service.NewDashboardService(st)
	settingsService := service.NewSettingsService(st)
	exportService := service.NewExportService(st, notifier)

	// Initialize handlers
	categoryHandler := handler.NewCategoryHandler(categoryService, now)
	expenseHandler := handler.NewExpenseHandler(expenseService, now)
	savingsHandler := handler.NewSavingsHandler(savingsService, now)
	debtHandler := handler.NewDebtHandler(debtService, now)
	revenueHandler := handler.NewRevenueHandler(revenueService, now)
	recurringHandler := handler.NewRecurringHandler(recurringService, now)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, now)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	exportHandler := handler.NewExportHandler(exportService, time.Now)

	// Catch up on recurring charges that came due while the server was down
	if count, err := recurringService.ProcessDue(context.Background(), now()); err != nil {
		slogger.Error("Startup recurring processing failed", slog.String("error", err.Error()))
	} else if count > 0 {
		slogger.Info("Startup recurring processing completed", slog.Int("charges_processed", count))
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(handler.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Dashboard
	r.Get("/api/dashboard", dashboardHandler.Get)

	// Categories
	r.Get("/api/categories", categoryHandler.List)
	r.Post("/api/categories", categoryHandler.Create)
	r.Post("/api/categories/optimize", categoryHandler.Optimize)
	r.Put("/api/categories/{id}", categoryHandler.Update)
	r.Delete("/api/categories/{id}", categoryHandler.Delete)
	r.Put("/api/categories/{id}/budget", categoryHandler.SetBudget)

	// Expenses
	r.Get("/api/expenses", expenseHandler.List)
	r.Post("/api/expenses", expenseHandler.Create)
	r.Put("/api/expenses/{id}", expenseHandler.Update)
	r.Delete("/api/expenses/{id}", expenseHandler.Delete)

	// Savings goals
	r.Get("/api/savings-goals", savingsHandler.List)
	r.Post("/api/savings-goals", savingsHandler.Create)
	r.Put("/api/savings-goals/{id}", savingsHandler.Update)
	r.Delete("/api/savings-goals/{id}", savingsHandler.Delete)
	r.Post("/api/savings-goals/{id}/transactions", savingsHandler.AddTransaction)

	// Debts
	r.Get("/api/debts", debtHandler.List)
	r.Post("/api/debts", debtHandler.Create)
	r.Put("/api/debts/{id}", debtHandler.Update)
	r.Delete("/api/debts/{id}", debtHandler.Delete)
	r.Post("/api/debts/{id}/payment", debtHandler.MakePayment)
	r.Put("/api/debts/{id}/auto-debit", debtHandler.SetAutoDebit)
	r.Get("/api/debts/{id}/payoff-plan", debtHandler.GetPayoffPlan)

	// Revenues
	r.Get("/api/revenues", revenueHandler.List)
	r.Post("/api/revenues", revenueHandler.Create)
	r.Put("/api/revenues/{id}", revenueHandler.Update)
	r.Delete("/api/revenues/{id}", revenueHandler.Delete)
	r.Put("/api/revenues/{id}/active", revenueHandler.SetActive)
	r.Post("/api/revenues/{id}/transactions", revenueHandler.AddTransaction)

	// Recurring charges
	r.Get("/api/recurring", recurringHandler.List)
	r.Post("/api/recurring", recurringHandler.Create)
	r.Post("/api/recurring/process", recurringHandler.Process)
	r.Put("/api/recurring/{id}", recurringHandler.Update)
	r.Delete("/api/recurring/{id}", recurringHandler.Delete)
	r.Put("/api/recurring/{id}/active", recurringHandler.SetActive)

	// Settings
	r.Get("/api/settings", settingsHandler.Get)
	r.Put("/api/settings", settingsHandler.Update)

	// Backup and restore
	r.Get("/api/export", exportHandler.ExportJSON)
	r.Get("/api/export/csv", exportHandler.ExportCSV)
	r.Post("/api/import", exportHandler.Import)
	r.Post("/api/reset", exportHandler.Reset)

	// Start the recurring charge scheduler
	var recurringScheduler *scheduler.Scheduler
	if cfg.RecurringEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.RecurringSchedule,
			Timeout:  cfg.RecurringTimeout,
			Enabled:  cfg.RecurringEnabled,
		}
		recurringScheduler = scheduler.New(schedCfg, recurringService, slogger)
		if err := recurringScheduler.Start(); err != nil {
			slogger.Error("Failed to start scheduler", slog.String("error", err.Error()))
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slogger.Info("Shutting down server...")

		if recurringScheduler != nil {
			<-recurringScheduler.Stop().Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("Server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	slogger.Info("Server starting", slog.String("port", port), slog.String("storage", cfg.StorageBackend))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
