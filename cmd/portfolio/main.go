// Package main provides the portfolio command: the page as a local
// terminal UI, or served to remote visitors over SSH with `portfolio serve`.
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

	"github.com/Cyclone1070/portfolio/internal/analytics"
	"github.com/Cyclone1070/portfolio/internal/clipboard"
	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/sshserver"
	"github.com/Cyclone1070/portfolio/internal/ui"
	"github.com/Cyclone1070/portfolio/internal/ui/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Version information set at build time.
var version = "dev"

// Dependencies holds the components shared by both run modes.
type Dependencies struct {
	Config   *config.Config
	Site     *content.Site
	Renderer services.MarkdownRenderer
	Logger   *zap.Logger
}

// flagOverrides carries CLI values that win over the config file.
type flagOverrides struct {
	contentPath string
	sshAddr     string
	metricsAddr string
	logLevel    string
	watch       bool
}

func (f flagOverrides) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.Content.Path = f.contentPath
	}
	if flags.Changed("watch") {
		cfg.Content.Watch = f.watch
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("ssh-addr") {
		cfg.Server.SSHAddr = f.sshAddr
	}
	if flags.Changed("metrics-addr") {
		cfg.Server.MetricsAddr = f.metricsAddr
	}
}

// resolveConfig loads the config file, applies flag overrides and validates
// the result, so overridden values meet the same rules as file values.
func resolveConfig(cmd *cobra.Command, overrides *flagOverrides, load func() *config.Config) (*config.Config, error) {
	cfg := load()
	overrides.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	return cfg
}

// newLogger builds the process logger. Production mode logs JSON to stderr;
// otherwise logs go to file, or nowhere when file is empty, since the
// terminal belongs to the UI.
func newLogger(level, file string, production bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zcfg zap.Config
	switch {
	case production:
		zcfg = zap.NewProductionConfig()
	case file != "":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.OutputPaths = []string{file}
		zcfg.ErrorOutputPaths = []string{file}
	default:
		return zap.NewNop(), nil
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// newTracker wires the analytics sinks. The collector sink is added only
// when a measurement ID is configured; the metrics sink only with a
// registry.
func newTracker(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) *analytics.Tracker {
	var sinks []analytics.Sink
	if cfg.Analytics.MeasurementID != "" {
		client := &http.Client{Timeout: time.Duration(cfg.Analytics.TimeoutMs) * time.Millisecond}
		sink, err := analytics.NewMeasurementSink(cfg.Analytics.CollectorURL,
			cfg.Analytics.MeasurementID, cfg.Analytics.APISecret, client)
		if err != nil {
			logger.Warn("analytics collector disabled", zap.Error(err))
		} else {
			sinks = append(sinks, sink)
		}
	}
	if reg != nil {
		sinks = append(sinks, analytics.NewMetricsSink(reg, cfg.Analytics.MetricsPrefix))
	}
	sinks = append(sinks, analytics.NewLogSink(logger))
	return analytics.NewTracker(cfg, logger, sinks...)
}

func newDependencies(cfg *config.Config, logger *zap.Logger) (Dependencies, error) {
	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return Dependencies{}, fmt.Errorf("failed to load content: %w", err)
	}
	return Dependencies{
		Config:   cfg,
		Site:     site,
		Renderer: services.NewGlamourRenderer(cfg.UI.MarkdownStyle),
		Logger:   logger,
	}, nil
}

// startHub publishes the loaded content and, when watching is on, every
// valid edit of the content file. The returned stop func releases the
// watcher.
func startHub(ctx context.Context, deps Dependencies) (*content.Hub, func(), error) {
	hub := content.NewHub(deps.Site)
	if !deps.Config.Content.Watch {
		return hub, func() {}, nil
	}

	w, err := content.NewWatcher(deps.Config.Content.Path, deps.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, nil, err
	}
	go hub.Run(ctx, w.Updates())
	deps.Logger.Info("watching content", zap.String("path", deps.Config.Content.Path))
	return hub, w.Stop, nil
}

func newRootCmd(overrides *flagOverrides) *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "A personal portfolio page for the terminal",
		Long: `portfolio renders a personal portfolio page in the terminal.

Run without arguments to browse it locally, or use "portfolio serve" to
let visitors reach it with ssh.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, overrides, loadConfig)
			if err != nil {
				return err
			}
			return runLocal(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&overrides.contentPath, "content", "", "path to a YAML content file (default: embedded content)")
	pf.BoolVar(&overrides.watch, "watch", false, "reload the content file when it changes")
	pf.StringVar(&overrides.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newServeCmd(overrides))
	return root
}

func newServeCmd(overrides *flagOverrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over SSH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, overrides, loadConfig)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&overrides.sshAddr, "ssh-addr", "", "SSH listen address")
	cmd.Flags().StringVar(&overrides.metricsAddr, "metrics-addr", "", "metrics and health listen address (empty disables)")
	return cmd
}

func runLocal(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Log.Level, cfg.Log.File, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	deps, err := newDependencies(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub, stop, err := startHub(ctx, deps)
	if err != nil {
		return err
	}
	defer stop()
	updates, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	tracker := newTracker(cfg, logger, nil)
	defer tracker.Close()

	clip := clipboard.Chain{
		clipboard.NewSystem(),
		clipboard.NewTerminal(os.Stdout, os.Getenv("TMUX") != ""),
	}

	program := ui.NewUI(cfg, hub.Current(), ui.Services{
		Renderer:  deps.Renderer,
		Clipboard: clip,
		Tracker:   tracker,
		Updates:   updates,
		Logger:    logger,
	})
	return program.Start()
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Log.Level, cfg.Log.File, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	deps, err := newDependencies(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	hub, stop, err := startHub(ctx, deps)
	if err != nil {
		return err
	}
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tracker := newTracker(cfg, logger, reg)
	defer tracker.Close()

	server := &sshserver.Server{
		Config:      cfg,
		Addr:        cfg.Server.SSHAddr,
		HostKeyPath: cfg.Server.HostKeyPath,
		Hub:         hub,
		Renderer:    deps.Renderer,
		Tracker:     tracker,
		Logger:      logger,
	}
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: cfg.Analytics.MetricsPrefix,
		Name:      "ssh_sessions_active",
		Help:      "Open SSH sessions.",
	}, func() float64 { return float64(server.Active()) }))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	if cfg.Server.MetricsAddr != "" {
		g.Go(func() error {
			return serveHTTP(ctx, cfg.Server.MetricsAddr, newRouter(reg, server), logger)
		})
	}
	return g.Wait()
}

// newRouter exposes metrics and a health check. sessions reports the live
// session count for /healthz.
func newRouter(reg *prometheus.Registry, sessions interface{ Active() int64 }) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok sessions=%d\n", sessions.Active())
	})
	return r
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("metrics server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func main() {
	if err := newRootCmd(&flagOverrides{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
