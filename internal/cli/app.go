package cli

import (
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/auth"
	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/config"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/metrics"
	"github.com/taaha3244/quicktools/internal/permissions"
	"github.com/taaha3244/quicktools/internal/providers"
	"github.com/taaha3244/quicktools/internal/tools"
	"github.com/taaha3244/quicktools/internal/tools/ai"
	"github.com/taaha3244/quicktools/internal/tools/calc"
	"github.com/taaha3244/quicktools/internal/tools/imaging"
	"github.com/taaha3244/quicktools/internal/tools/pdf"
)

// app is everything a command needs to run tools.
type app struct {
	cfg         *config.Config
	log         *zap.Logger
	store       *catalog.Store
	generator   *providers.Generator
	permissions *permissions.Manager
	dispatcher  *tools.Dispatcher
	metrics     metrics.Recorder
	registry    *prometheus.Registry
}

type appOptions struct {
	prompt  permissions.PromptFunc
	metrics bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

func newApp(opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewNoopMetrics(),
	}
	if opts.metrics {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.NewPrometheusMetrics(a.registry)
	}

	a.store, err = loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	a.store.OnChange(a.metrics.SetCatalogTools)

	keys, err := newAuthStore()
	if err != nil {
		return nil, err
	}
	a.generator = newGenerator(cfg, newProviderRegistry(cfg, keys, log), log, a.metrics)

	transformer, err := imaging.New(cfg.Imaging)
	if err != nil {
		return nil, err
	}

	reg := tools.NewRegistry()
	reg.Register(ai.New(a.generator, cfg.AI.LegacyErrorText))
	reg.Register(transformer)
	reg.Register(pdf.New(cfg.PDF))
	reg.Register(calc.New())

	a.permissions = permissions.NewManager(&cfg.Permissions, opts.prompt)
	a.dispatcher = tools.NewDispatcher(reg,
		tools.WithGate(a.permissions),
		tools.WithObserver(a.metrics))

	return a, nil
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Store, error) {
	if cfg.Path == "" {
		return catalog.NewDefaultStore()
	}

	list, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	store := catalog.NewStore()
	if err := store.Replace(list); err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.Path, err)
	}
	return store, nil
}

// newAuthStore opens the key store kept beside the active config file.
func newAuthStore() (*auth.Store, error) {
	path, err := config.Path(cfgFile)
	if err != nil {
		return nil, err
	}
	return auth.NewStore(filepath.Dir(path)), nil
}

// newProviderRegistry registers every provider that can be built from the
// config and stored keys.
func newProviderRegistry(cfg *config.Config, store *auth.Store, log *zap.Logger) *providers.Registry {
	reg := providers.NewRegistry()
	for _, name := range providerNames {
		provider, err := newProvider(cfg, store, name)
		if err != nil {
			log.Debug("provider skipped", zap.String("provider", name), zap.Error(err))
			continue
		}
		reg.Register(name, provider)
	}
	return reg
}

// newGenerator picks the provider named by ai.model. Without that provider
// the generator has none, and AI tools report the missing API key.
func newGenerator(cfg *config.Config, reg *providers.Registry, log *zap.Logger, observer providers.RequestObserver) *providers.Generator {
	name, model := providers.ParseModelString(cfg.AI.Model)
	pc := cfg.Provider(name)
	if model == "" {
		model = pc.DefaultModel
	}

	maxTokens := cfg.AI.MaxTokens
	if maxTokens == 0 {
		maxTokens = pc.MaxTokens
	}

	provider, err := reg.Get(name)
	if err != nil {
		log.Warn("AI provider unavailable, AI tools will fail",
			zap.String("provider", name),
			zap.Strings("available", reg.List()),
			zap.Error(err))
	}

	return providers.NewGenerator(provider, providers.GeneratorConfig{
		Model:             model,
		MaxTokens:         maxTokens,
		Temperature:       cfg.AI.Temperature,
		Timeout:           cfg.AI.Timeout,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
	}, providers.WithRequestObserver(observer))
}
