package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/armon/go-metrics"
	metricsprom "github.com/armon/go-metrics/prometheus"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/uniongov/union-core/api"
	"github.com/uniongov/union-core/app"
	"github.com/uniongov/union-core/config"
)

const shutdownTimeout = 10 * time.Second

// StartCmd returns the command that runs a union
func StartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the union: deliver scheduled tasks and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverCtx := GetServerContext(cmd)

			a, closeDB, err := openApp(serverCtx)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			if !a.IsInitialized(cmd.Context()) {
				path := config.Path(serverCtx.Home, serverCtx.Config.GenesisFile)
				genesis, err := readGenesis(path)
				if err != nil {
					return err
				}

				if err := a.InitGenesis(cmd.Context(), genesis); err != nil {
					return err
				}

				serverCtx.Logger.Info("imported genesis", "file", path)
			}

			return run(cmd.Context(), a, serverCtx.Config, serverCtx.Logger)
		},
	}
}

func run(ctx context.Context, a *app.App, conf config.Config, logger log.Logger) error {
	metricsHandler, err := initMetrics(conf.API)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         conf.API.ListenAddress,
		Handler:      api.NewRouter(a, metricsHandler, logger),
		ReadTimeout:  conf.API.ReadTimeout,
		WriteTimeout: conf.API.WriteTimeout,
	}

	eGroup, ctx := errgroup.WithContext(ctx)
	eGroup.Go(func() error {
		logger.Info("serving API", "address", conf.API.ListenAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "API server failed")
		}

		return nil
	})
	eGroup.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
	eGroup.Go(func() error {
		tick(ctx, a, conf.TickInterval, logger)
		return nil
	})

	return eGroup.Wait()
}

// tick delivers due scheduled tasks until the context is done
func tick(ctx context.Context, a *app.App, interval time.Duration, logger log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.Tick(ctx); n > 0 {
				logger.Debug("delivered scheduled tasks", "count", n)
				metrics.IncrCounter([]string{"app", "scheduler", "delivered"}, float32(n))
			}
		}
	}
}

// initMetrics installs the prometheus sink. Returns a nil handler if metrics are disabled.
func initMetrics(conf config.APIConfig) (http.Handler, error) {
	if !conf.MetricsEnabled {
		return nil, nil
	}

	sink, err := metricsprom.NewPrometheusSink()
	if err != nil {
		return nil, err
	}

	metricsConf := metrics.DefaultConfig(AppName)
	metricsConf.EnableHostname = false
	metricsConf.ProfileInterval = conf.MetricsInterval

	if _, err := metrics.NewGlobal(metricsConf, sink); err != nil {
		return nil, err
	}

	return promhttp.Handler(), nil
}
