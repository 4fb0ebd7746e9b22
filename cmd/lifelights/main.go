// cmd/lifelights/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/lifelights/internal/capture"
	"github.com/tamzrod/lifelights/internal/config"
	"github.com/tamzrod/lifelights/internal/detect"
	"github.com/tamzrod/lifelights/internal/frame"
	"github.com/tamzrod/lifelights/internal/logger"
	"github.com/tamzrod/lifelights/internal/metrics"
	"github.com/tamzrod/lifelights/internal/status"
	"github.com/tamzrod/lifelights/internal/statusapi"
	"github.com/tamzrod/lifelights/internal/watcher"
)

func main() {
	config.LoadEnv()

	var arg string
	if len(os.Args) > 1 {
		arg = os.Args[1]
	}
	cfgPath := config.ResolvePath(arg)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	config.ApplyEnv(cfg)

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	logger.Init(level, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --------------------
	// Shared collaborators
	// --------------------

	board := status.NewBoard()
	m := metrics.New()

	provider, err := frame.NewFileProvider(cfg.Capture.Path, cfg.Capture.Scale)
	if err != nil {
		log.Fatalf("frame provider failed: %v", err)
	}

	capturer, err := capture.New(capture.Config{
		Interval: time.Duration(cfg.ScanInterval * float64(time.Second)),
	}, provider)
	if err != nil {
		log.Fatalf("capture build failed: %v", err)
	}

	// --------------------
	// Build watchers
	// --------------------

	watchers, err := watcher.Build(cfg, watcher.Deps{
		Detector: detect.NewColorDetector(),
		Board:    board,
		Metrics:  m,
	})
	if err != nil {
		log.Fatalf("watcher build failed: %v", err)
	}
	defer func() {
		for _, w := range watchers {
			if err := w.Close(); err != nil {
				logger.Warn("main", "close failed (watcher=%s): %v", w.Name(), err)
			}
		}
	}()

	// --------------------
	// Status surface (optional)
	// --------------------

	if cfg.Status.Listen != "" {
		srv := statusapi.New(cfg.Status.Listen, board, m)
		go func() {
			logger.Info("main", "status api listening on %s", cfg.Status.Listen)
			if err := srv.Run(ctx); err != nil {
				logger.Error("main", "status api failed: %v", err)
			}
		}()
	}

	logger.Info("main", "watching %s every %.2fs (watchers=%d)", cfg.Capture.Path, cfg.ScanInterval, len(watchers))

	// --------------------
	// Driving loop
	// --------------------

	out := make(chan capture.Result)
	go capturer.Run(ctx, out)

	drive(ctx, out, watchers, m)

	logger.Info("main", "shutting down")
}

// drive feeds every usable frame to each watcher in turn: Scan, then Process.
// Watchers run sequentially; a target's delay stalls the whole loop.
// Returns when ctx is cancelled.
func drive(ctx context.Context, in <-chan capture.Result, watchers []watcher.Watcher, m *metrics.Metrics) {
	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			if res.Err != nil {
				logger.Warn("main", "frame capture failed: %v", res.Err)
			}
			if res.Skip() {
				if m != nil {
					m.SkippedFrames.Inc()
				}
				continue
			}

			for _, w := range watchers {
				w.Scan(res.Frame)
				// errors are logged by the watcher; the loop never stops on them
				_ = w.Process(ctx)
			}
		}
	}
}
