// Command trader runs the live strategy: it connects to the venue,
// streams book updates through the decision engine and serves metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"

	"ready-trade-go/config"
	"ready-trade-go/engine"
	"ready-trade-go/gateway"
	"ready-trade-go/infrastructure/logger"
	"ready-trade-go/inventory"
	"ready-trade-go/monitor"
	"ready-trade-go/strategy"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the config file")
	metricsAddr := flag.String("metricsAddr", "", "metrics listen address, overrides config")
	watch := flag.Bool("watch", true, "reload strategy policy when the config file changes")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Close()

	mon := monitor.New(monitor.DefaultConfig())
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, mon, zl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zl.Info("shutdown signal received")
		_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
		cancel()
	}()

	inv := inventory.NewTracker(cfg.Strategy.PositionLimit)
	events := make(chan engine.Event, 1024)
	client, err := gateway.Dial(ctx, gateway.Config{
		URL:    cfg.Venue.URL,
		Team:   cfg.Venue.Team,
		Secret: cfg.Venue.Secret,
	}, events, zl)
	if err != nil {
		zl.Fatal("connect to venue", zap.Error(err))
	}
	defer client.Close()

	eng, err := engine.New(engine.DefaultConfig(), engine.Components{
		Venue:     client,
		Inventory: inv,
		Pricer:    strategy.NewPricer(cfg.Strategy.PricerConfig()),
		Arbitrage: strategy.NewArbitrage(cfg.Strategy.ArbConfig()),
		Logger:    zl,
		Monitor:   mon,
	})
	if err != nil {
		zl.Fatal("build engine", zap.Error(err))
	}

	if *watch {
		w := config.Watcher{Path: *cfgPath, Cooldown: 2 * time.Second}
		go func() {
			err := w.Start(ctx, func(next config.AppConfig) {
				zl.Info("config file changed, applying policy")
				select {
				case events <- engine.Reconfigure{
					Pricer: next.Strategy.PricerConfig(),
					Arb:    next.Strategy.ArbConfig(),
				}:
				case <-ctx.Done():
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				zl.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	zl.Info("trader started",
		zap.String("venue", cfg.Venue.URL),
		zap.String("env", cfg.Env))

	if err := eng.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("engine stopped", zap.Error(err))
	}

	st := eng.Stats()
	zl.Info("session summary",
		zap.Int64("book_updates", st.BookUpdates),
		zap.Int64("inserts", st.Inserts),
		zap.Int64("cancels", st.Cancels),
		zap.Int64("fills", st.Fills),
		zap.Int64("hedge_orders", st.HedgeOrders),
		zap.Int64("arb_orders", st.ArbOrders),
		zap.Int64("data_faults", st.DataFaults),
		zap.Int64("position", inv.Position()))
}

func serveMetrics(addr string, mon *monitor.Monitor, zl *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", mon.Handler())
	zl.Info("metrics listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		zl.Warn("metrics server stopped", zap.Error(err))
	}
}
