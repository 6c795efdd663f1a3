package daemon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/livp123/loglens/internal/classify"
	"github.com/livp123/loglens/internal/config"
	"github.com/livp123/loglens/internal/metrics"
	"github.com/livp123/loglens/internal/tailer"
	"github.com/livp123/loglens/internal/utils/fileutil"
	"github.com/livp123/loglens/internal/utils/logger"
)

// Options configures a watch run beyond what the config file provides.
type Options struct {
	// Paths are tailed in addition to the configured auto-tail files.
	Paths []string
	// Position overrides the configured start position when non-empty.
	Position string
	// Filter overrides the configured filter expression when non-empty.
	Filter string
	// Out receives rendered output lines.
	Out io.Writer
	// Color enables ANSI coloring of rendered lines.
	Color bool
}

// Run tails the requested files until ctx is cancelled, classifying every
// appended delta and writing rendered lines to opts.Out. Teardown stops all
// sessions exactly once, closes the checkpoint manager and shuts the metrics
// server down.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	log := logger.Get(ctx)
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	rules := classify.NewRuleSet(cfg.Colors)
	cls := classify.NewClassifier(rules)
	renderer := NewRenderer(rules, opts.Color)

	filterSrc := cfg.Filter
	if opts.Filter != "" {
		filterSrc = opts.Filter
	}
	filter, err := classify.CompileFilter(filterSrc)
	if err != nil {
		return err
	}

	var checkpoint *tailer.CheckpointManager
	if cfg.Tail.Checkpoint.Enabled {
		checkpoint = tailer.NewCheckpointManager(cfg.Tail.Checkpoint.Path, cfg.CheckpointInterval(), log)
		checkpoint.Start()
		defer checkpoint.Stop()
	}

	position := cfg.Tail.Position
	if opts.Position != "" {
		position = opts.Position
	}

	registry, err := tailer.NewRegistry(tailer.Options{
		Position:   position,
		Checkpoint: checkpoint,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	defer registry.StopAll()

	paths := opts.Paths
	if cfg.AutoTail {
		paths = append(paths, cfg.Tail.Files...)
	}
	started := 0
	for _, path := range paths {
		// A path listed both on the command line and in the auto-tail
		// config must not toggle its own session back off.
		if registry.Active(path) {
			continue
		}
		if _, err := registry.Toggle(path); err != nil {
			log.Warnf("cannot tail %s: %v", path, err)
			continue
		}
		started++
	}
	if started == 0 {
		return fmt.Errorf("no files could be tailed")
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Infof("metrics listening on %s", cfg.Metrics.Listen)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warnf("metrics server failed: %v", err)
			}
		}()
	}

	// Partial trailing lines are carried per path until the next delta.
	carry := make(map[string]string)

	defer func() {
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-registry.Events():
			if !ok {
				return nil
			}
			handleEvent(ev, cls, filter, renderer, opts.Out, carry, log)
		}
	}
}

func handleEvent(ev tailer.Event, cls *classify.Classifier, filter *classify.Filter, renderer *Renderer, out io.Writer, carry map[string]string, log *zap.SugaredLogger) {
	switch ev.Kind {
	case tailer.EventAppended:
		chunk := carry[ev.Path] + string(ev.Bytes)
		lines, rest := splitComplete(chunk)
		carry[ev.Path] = rest
		for _, line := range lines {
			res := cls.Classify(line)
			if res.Primary == classify.LevelNone {
				metrics.LinesUnmatched.Inc()
			} else {
				metrics.LinesClassified.WithLabelValues(string(res.Primary)).Inc()
			}
			if !filter.Accept(line, ev.Path, res) {
				continue
			}
			fmt.Fprintln(out, renderer.Line(line, res))
		}
	case tailer.EventTruncated:
		delete(carry, ev.Path)
		log.Infof("%s truncated, offset reset to %d", ev.Path, ev.Offset)
	case tailer.EventError:
		delete(carry, ev.Path)
		log.Warnf("tailing %s stopped: %v", ev.Path, ev.Err)
	}
}

// splitComplete splits a chunk into complete lines and the unterminated tail.
func splitComplete(chunk string) ([]string, string) {
	if chunk == "" {
		return nil, ""
	}
	lastNL := -1
	for i := len(chunk) - 1; i >= 0; i-- {
		if chunk[i] == '\n' {
			lastNL = i
			break
		}
	}
	if lastNL == -1 {
		return nil, chunk
	}
	return fileutil.SplitLines(chunk[:lastNL+1]), chunk[lastNL+1:]
}
