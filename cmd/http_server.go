package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/activity"
	activityPostgres "github.com/bccsims/asset-inventory/internal/activity/postgres"
	"github.com/bccsims/asset-inventory/internal/asset"
	assetPostgres "github.com/bccsims/asset-inventory/internal/asset/postgres"
	"github.com/bccsims/asset-inventory/internal/auth"
	authPostgres "github.com/bccsims/asset-inventory/internal/auth/postgres"
	"github.com/bccsims/asset-inventory/internal/department"
	departmentPostgres "github.com/bccsims/asset-inventory/internal/department/postgres"
	"github.com/bccsims/asset-inventory/internal/inventory"
	inventoryPostgres "github.com/bccsims/asset-inventory/internal/inventory/postgres"
	"github.com/bccsims/asset-inventory/internal/repairs"
	"github.com/bccsims/asset-inventory/internal/session"
	sessionPostgres "github.com/bccsims/asset-inventory/internal/session/postgres"
	"github.com/bccsims/asset-inventory/internal/stats"
	"github.com/bccsims/asset-inventory/internal/transport"
	"github.com/bccsims/asset-inventory/internal/transport/rest"
	"github.com/bccsims/asset-inventory/internal/user"
	userPostgres "github.com/bccsims/asset-inventory/internal/user/postgres"
	"github.com/bccsims/asset-inventory/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Sessions *session.Manager
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	deps.Sessions.StartSweeper(sweepCtx, deps.Config.Session.SweepInterval)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		stopSweeper()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopSweeper()
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Environment)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides the same pgx pool sqlx opened.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	base := transport.NewBaseHandler(lg, cfg.IsProduction())
	policy := auth.NewPolicy(base)

	sessionManager := session.NewManager(sessionPostgres.NewSessionStore(gormDB), cfg.Session.TTL, lg)

	authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), sessionManager, lg)
	authHandler := auth.NewHandler(base, authService, auth.CookieConfig{
		Name:       cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Production: cfg.IsProduction(),
	})

	activityService := activity.NewService(activityPostgres.NewActivityRepository(gormDB), lg)

	inventoryService := inventory.NewService(inventoryPostgres.NewInventoryRepository(gormDB), activityService, lg)
	assetService := asset.NewService(assetPostgres.NewAssetRepository(gormDB), activityService, lg, cfg.Asset.ReferencePrefix)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), activityService, lg)

	repairsClient := repairs.NewClient(cfg.Integration.RepairsBaseURL, cfg.Integration.RepairsTimeout, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Deps{
		Logger:         lg,
		AllowedOrigins: cfg.Server.AllowedOriginList(),

		Auth:        authHandler,
		Policy:      policy,
		Inventory:   inventory.NewHandler(base, inventoryService),
		Assets:      asset.NewHandler(base, assetService),
		Users:       user.NewHandler(base, userService),
		Activity:    activity.NewHandler(base, activityService),
		Departments: department.NewHandler(base, departmentPostgres.NewDepartmentRepository(gormDB)),
		Stats:       stats.NewHandler(base, stats.NewService(db, lg)),
		Repairs:     repairs.NewHandler(base, repairsClient, assetService, cfg.Integration.APIKey),
		Health:      rest.NewHealthHandler(base, db),
	})

	return &Dependencies{
		Config:   cfg,
		DB:       db,
		Router:   router,
		Sessions: sessionManager,
		Logger:   lg,
	}, nil
}

// initDB opens the pgx-backed pool used by both sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
