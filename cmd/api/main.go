package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
)

const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

func main() {
	// Fees and totals travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd := &cobra.Command{
		Use:   "clinic-scheduler",
		Short: "Clinic appointment scheduling API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sweepCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _ := cmd.Flags().GetString("store")
			migrate, _ := cmd.Flags().GetBool("migrate")
			return runServer(store, migrate)
		},
	}
	cmd.Flags().String("store", storePostgres, "Backing store: postgres or memory")
	cmd.Flags().Bool("migrate", false, "Run schema migrations before serving (postgres only)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Complete every active appointment whose end time has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}

			app, err := routes.NewApp(cmd.Context(), cfg, routes.GormStores(db), log)
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.Sweep.Execute(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			log.Info("status sweep finished", zap.Int("completed", n))
			return nil
		},
	}
}

func runServer(store string, migrate bool) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	var stores routes.Stores
	switch store {
	case storeMemory:
		log.Warn("using in-memory store, data is lost on exit")
		stores = routes.MemoryStores(log)
	case storePostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		if migrate {
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
		}
		stores = routes.GormStores(db)
	default:
		return fmt.Errorf("unknown store %q", store)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := routes.NewApp(ctx, cfg, stores, log)
	if err != nil {
		return err
	}
	defer app.Close()

	// ======================================================
	// ⏰ STATUS SWEEP
	// ======================================================
	scheduler := cron.New()
	if cfg.StatusSweepCron != "" {
		_, err := scheduler.AddFunc(cfg.StatusSweepCron, func() {
			n, err := app.Sweep.Execute(ctx, time.Now())
			if err != nil {
				log.Error("status sweep failed", zap.Error(err))
				return
			}
			if n > 0 {
				log.Info("status sweep completed appointments", zap.Int("completed", n))
			}
		})
		if err != nil {
			return fmt.Errorf("schedule status sweep %q: %w", cfg.StatusSweepCron, err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	app.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
