package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/config"
	"github.com/aretw0/rewind/pkg/adapters/file"
	apihttp "github.com/aretw0/rewind/pkg/adapters/http"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/adapters/redis"
	"github.com/aretw0/rewind/pkg/books"
	"github.com/aretw0/rewind/pkg/observability"
	"github.com/aretw0/rewind/pkg/persistence/middleware"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SampleTexts seeds the memory library so a fresh shell has something to print.
var SampleTexts = map[string]string{
	"poem": "Roses are red, violets are blue..",
	"tale": "Once upon a time...",
}

// Stack is everything a command needs, built from one Config.
type Stack struct {
	Config  config.Config
	Logger  *slog.Logger
	Library ports.WritableLibrary
	Factory *books.Factory
	Engine  *rewind.Engine
	Desk    *books.Desk

	// Events fans engine history events out to /events subscribers.
	Events *apihttp.StreamManager

	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	closers []io.Closer
}

// BuildOptions tweaks NewStack for a command.
type BuildOptions struct {
	Debug bool

	// Logger overrides the logger derived from Config.LogLevel.
	Logger *slog.Logger
}

// NewStack wires library, factory, engine and desk according to cfg.
func NewStack(cfg config.Config, opts BuildOptions) (*Stack, error) {
	logger := opts.Logger
	if logger == nil {
		var err error
		if logger, err = createLogger(cfg.LogLevel, opts.Debug); err != nil {
			return nil, err
		}
	}

	lib, closer, err := OpenLibrary(cfg.Library)
	if err != nil {
		return nil, err
	}
	s := &Stack{Config: cfg, Logger: logger, Library: lib}
	if closer != nil {
		s.closers = append(s.closers, closer)
	}

	s.Events = apihttp.NewStreamManager()
	hooks := s.Events.Hooks()
	if opts.Debug {
		hooks = hooks.Merge(observability.LoggingHooks(logger))
	}
	if cfg.Metrics.Enabled {
		s.Registry = prometheus.NewRegistry()
		s.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		if s.Metrics, err = observability.NewMetrics(s.Registry); err != nil {
			s.Close()
			return nil, err
		}
		hooks = hooks.Merge(s.Metrics.Hooks())
	}

	s.Factory = books.NewFactory(lib, books.WithLogger(logger))

	engineOpts := []rewind.Option{
		rewind.WithCapacity(cfg.Capacity),
		rewind.WithLogger(logger),
		rewind.WithLifecycleHooks(hooks),
		rewind.WithRecordEviction(cfg.RecordEviction),
	}
	if cfg.UndoablesCount > 0 {
		engineOpts = append(engineOpts, rewind.WithUndoablesCount(cfg.UndoablesCount))
	}

	s.Engine, err = rewind.New(s.Factory, engineOpts...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	s.Desk = books.NewDesk(s.Factory, s.Engine)

	logger.Debug("stack ready",
		"library", cfg.Library.Kind,
		"capacity", cfg.Capacity,
		"metrics", cfg.Metrics.Enabled,
	)
	return s, nil
}

// MetricsHandler serves the stack registry, or nil when metrics are disabled.
func (s *Stack) MetricsHandler() http.Handler {
	if s.Registry == nil {
		return nil
	}
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}

// Close releases library connections.
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenLibrary creates the library backend selected by cfg.Kind, encrypted when a key is configured.
// The returned closer is nil for backends holding no connection.
func OpenLibrary(cfg config.Library) (ports.WritableLibrary, io.Closer, error) {
	var (
		lib    ports.WritableLibrary
		closer io.Closer
		seed   map[string]string
	)
	switch strings.ToLower(cfg.Kind) {
	case "", config.LibraryMemory:
		lib, seed = memory.NewLibrary(nil), SampleTexts
	case config.LibraryFile:
		lib = file.New(cfg.Path)
	case config.LibraryRedis:
		var opts []redis.Option
		if cfg.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Prefix))
		}
		r := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)
		lib, closer = r, r
	default:
		return nil, nil, fmt.Errorf("%w: unknown library kind %q", config.ErrInvalidConfig, cfg.Kind)
	}

	if cfg.EncryptionKey != "" {
		mw, err := encryptionMiddleware(cfg)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, err
		}
		lib = middleware.Chain(lib, mw)
	}

	// Seed through the chain so samples are stored the way the library reads them.
	for _, source := range slices.Sorted(maps.Keys(seed)) {
		if err := lib.Put(context.Background(), source, seed[source]); err != nil {
			return nil, nil, fmt.Errorf("failed to seed library: %w", err)
		}
	}
	return lib, closer, nil
}

func encryptionMiddleware(cfg config.Library) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: library encryption_key: %w", config.ErrInvalidConfig, err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("%w: library fallback_keys[%d]: %w", config.ErrInvalidConfig, i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(enc)
}
