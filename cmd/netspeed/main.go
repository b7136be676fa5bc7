package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"netspeed-monitor/internal/autostart"
	"netspeed-monitor/internal/config"
	"netspeed-monitor/internal/core"
	"netspeed-monitor/internal/core/metrics/collector/network"
	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/metrics"
	"netspeed-monitor/internal/pkg"
	"netspeed-monitor/internal/presenter"
	httptransport "netspeed-monitor/internal/transport/http"
	"netspeed-monitor/internal/transport/websocket"
)

const appName = "netspeed"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Show network throughput near the taskbar",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, logger.New(cfg))
		},
	}

	root.AddCommand(newSampleCmd(), newAutostartCmd(), newTokenCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSampler(cfg *config.Config, clock clockwork.Clock, log logger.Logger) (*network.Sampler, error) {
	var src network.Source
	switch cfg.AdapterSource {
	case config.SourceNetlink:
		s, err := network.NewNetlinkSource()
		if err != nil {
			return nil, err
		}
		src = s
	default:
		src = network.NewGopsutilSource()
	}

	reader := network.NewReader(src, network.NewFilter(cfg.ExcludeAdapters), clock, log)
	return network.NewSampler(reader, log), nil
}

func run(parent context.Context, cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	sampler, err := newSampler(cfg, clock, log)
	if err != nil {
		return err
	}

	store := core.NewSnapshotStore()
	hub := websocket.NewHub(log)

	presenters := []domain.Presenter{store, hub, metrics.Presenter{}}
	if cfg.Console {
		presenters = append(presenters, presenter.NewOverlay(os.Stdout))
	}

	monitor := core.NewMonitor(core.MonitorOptions{
		Interval:        cfg.Interval,
		SmoothingWindow: cfg.SmoothingWindow,
	}, sampler, clock, log, presenters...)

	log.Info("netspeed: starting",
		"interval", cfg.Interval,
		"source", cfg.AdapterSource,
		"http_addr", cfg.Address,
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return monitor.Start(gCtx)
	})

	g.Go(func() error {
		return hub.Run(gCtx)
	})

	if cfg.Address != "" {
		server := httptransport.NewServer(cfg, store, websocket.NewHandler(hub, log, cfg.AllowedOrigins), log)
		g.Go(func() error {
			return server.Start(gCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("netspeed: stopped with error", "error", err)
		return err
	}

	if cfg.Console {
		fmt.Fprintln(os.Stdout)
	}
	log.Info("netspeed: stopped gracefully")
	return nil
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Take one measurement over a single interval and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg)
			clock := clockwork.NewRealClock()

			sampler, err := newSampler(cfg, clock, log)
			if err != nil {
				return err
			}
			if err := sampler.Prime(cmd.Context()); err != nil {
				return err
			}

			select {
			case <-clock.After(cfg.Interval):
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}

			m, ok := sampler.OnTick(cmd.Context())
			if !ok {
				return errors.New("no measurement this interval")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "↓ %s  ↑ %s\n", core.FormatRate(m.DownloadBytesPerSecond), core.FormatRate(m.UploadBytesPerSecond))
			return nil
		},
	}
}

func newAutostartCmd() *cobra.Command {
	manager := func() (*autostart.Manager, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		exe, err := os.Executable()
		if err != nil {
			return nil, err
		}
		return autostart.NewManager(cfg.AutostartDir, appName, exe), nil
	}

	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Inspect or toggle starting at login",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print whether start at login is enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			enabled, err := m.Enabled()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enabled=%t (%s)\n", enabled, m.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Enable start at login if disabled, disable it otherwise",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			enabled, err := m.Toggle()
			if err != nil {
				return err
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Enabled start at login.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Disabled start at login.")
			}
			return nil
		},
	})

	return cmd
}

func newTokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set; the API is unauthenticated")
			}

			tok, err := pkg.IssueToken(cfg.JWTSecret, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "viewer", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
