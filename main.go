package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/kahatra/tribe-widget/cliparse"
	"github.com/kahatra/tribe-widget/db"
	"github.com/kahatra/tribe-widget/hang"
	"github.com/kahatra/tribe-widget/metrics"
	"github.com/kahatra/tribe-widget/middleware"
	"github.com/kahatra/tribe-widget/router"
	"github.com/kahatra/tribe-widget/store"
)

// shutdownTimeout bounds how long in-flight requests get after Ctrl-C
const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "tribe-widget",
	Short: "Group hangout scheduling server",
	Long: `tribe-widget finds overlapping availability for a group, turns a chosen
slot into a plan, and tracks responses and potluck sign-ups.

Running it without a subcommand is the same as "serve".`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API. Flags override environment variables and .env:

  -p               PORT           (default 3318)
  -d               DATABASE_URL   (required)
  -t               DATABASE_TYPE  sqlite|postgres (default sqlite)
  -sync-interval   SYNC_INTERVAL  client refresh cadence (default 2s)
  -base-url        BASE_URL
  -log-level       LOG_LEVEL      debug|info|warn|error`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs a text handler on a terminal and JSON otherwise
func setupLogging(w io.Writer, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func serve(args []string) error {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return err
	}

	level, _ := cliparse.ParseLogLevel(cfg.LogLevel)
	setupLogging(os.Stderr, level)

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := hang.NewService(store.New(dbConn),
		hang.WithMetrics(m),
		hang.WithSyncInterval(cfg.SyncInterval),
	)

	mux := router.NewRouter(svc, cfg, m, reg)

	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	slog.Info("Listening", "port", cfg.Port, "base_url", cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}
