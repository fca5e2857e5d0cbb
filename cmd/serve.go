package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fincalc/advice"
	"fincalc/config"
	httpLayer "fincalc/http"
	"fincalc/observability"
	"fincalc/service"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator and entitlement API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func buildServices(cfg config.Config, st *openedStore, logger *slog.Logger) httpLayer.Services {
	entitlements := service.NewEntitlementService(st, logger)

	var client service.AdviceClient
	if cfg.Advice.URL != "" {
		client = advice.NewClient(cfg.Advice.URL, cfg.Advice.APIKey, cfg.Advice.Timeout.Duration)
	} else {
		logger.Info("advice endpoint not configured; tips are disabled")
	}

	return httpLayer.Services{
		Calculator:   service.NewCalculatorService(st, logger),
		Entitlements: entitlements,
		Advice:       service.NewAdviceService(client, entitlements, logger),
		Preferences:  service.NewPreferencesService(st, logger),
		Ping:         st.ping,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	logger := observability.NewLogger(cfg.Server.Env, cfg.Log.Level)
	slog.SetDefault(logger)

	st, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	rateLimiter := httpLayer.NewRateLimiter(map[httpLayer.Scope]httpLayer.Limit{
		httpLayer.ScopeAPI:    {Burst: cfg.RateLimit.Capacity, Window: cfg.RateLimit.Window.Duration},
		httpLayer.ScopeAdvice: {Burst: cfg.RateLimit.AdviceCapacity, Window: cfg.RateLimit.AdviceWindow.Duration},
	})
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(buildServices(cfg, st, logger), rateLimiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "storage", cfg.Storage.Driver, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
