package brandkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/brandkit/brandkit/modules/brands"
	"github.com/brandkit/brandkit/modules/catalog"
	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/blob"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/bulk"
	"github.com/brandkit/brandkit/pkg/config"
	"github.com/brandkit/brandkit/pkg/httpserver"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/brandkit/brandkit/pkg/pg"
	"github.com/brandkit/brandkit/pkg/redis"
	"github.com/brandkit/brandkit/pkg/requestid"
)

// Config holds platform-level settings. Component-specific settings
// (database, HTTP listener, blob storage) load separately through the
// same env-driven loader.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"brandkit"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// SharedBrandCache switches the brand lookup cache from per-process
	// memory to Redis so replicas see control-status changes together.
	SharedBrandCache bool `env:"BRAND_CACHE_SHARED" envDefault:"false"`

	// BulkSafetyConfig optionally overlays the built-in bulk safety
	// thresholds from a YAML file.
	BulkSafetyConfig string `env:"BULK_SAFETY_CONFIG"`

	// BlobDriver selects export artifact storage: "s3" or "local".
	BlobDriver       string `env:"BLOB_DRIVER" envDefault:"s3"`
	BlobLocalDir     string `env:"BLOB_LOCAL_DIR" envDefault:"./artifacts"`
	BlobLocalBaseURL string `env:"BLOB_LOCAL_BASE_URL" envDefault:"http://localhost:8080/artifacts"`
}

// App wires the platform together: database, migrations, caches, blob
// storage, the catalog module, and the HTTP surface. Identity
// verification stays external; the embedding service supplies an
// access.IdentitySource for whatever session or token scheme it uses.
type App struct {
	Config  Config
	Log     *slog.Logger
	DB      *pgxpool.Pool
	Redis   *goredis.Client
	Storage blob.Storage
	Brands  *brands.Service
	Router  chi.Router

	server *httpserver.Server
}

// New loads configuration from the environment and assembles the
// platform. The returned App owns the database pool and Redis client;
// call Close when done.
func New(ctx context.Context, identity access.IdentitySource) (*App, error) {
	if identity == nil {
		panic("brandkit: access.IdentitySource is required")
	}

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, err
	}
	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return nil, err
	}

	log := logger.New(
		logger.WithService(cfg.ServiceName, cfg.Environment),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			brand.LoggerExtractor(),
			access.LoggerExtractor(),
		),
	)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		pool.Close()
		return nil, err
	}

	app := &App{Config: cfg, Log: log, DB: pool}

	catalogStore := catalog.NewStore(pool)
	brandStore := brands.NewStore(pool, catalogStore.SKUCount)
	app.Brands = brands.NewService(pool, log)

	brandCache := brand.NewInMemoryCache()
	if cfg.SharedBrandCache {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			app.Close()
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Redis = client
		brandCache = brand.NewRedisCache(client, brand.DefaultRedisKeyPrefix)
	}

	safety := bulk.DefaultConfigs()
	if cfg.BulkSafetyConfig != "" {
		safety, err = bulk.LoadConfigs(cfg.BulkSafetyConfig)
		if err != nil {
			app.Close()
			return nil, err
		}
	}
	validator, err := bulk.NewValidator(safety)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Storage, err = newStorage(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	exporter := catalog.NewExporter(catalogStore, app.Storage, log)
	runner := catalog.NewExportRunner(exporter, log)

	handler := catalog.NewHandler(catalogStore, validator, runner, log)

	accessOpts := []access.Option{
		access.WithBrandCache(brandCache),
		access.WithLogger(log),
	}
	deps := catalog.Deps{
		Identity: identity,
		Brands:   brandStore,
		Resolver: brand.NewCompositeResolver(
			brand.NewHeaderResolver(""),
			brand.NewQueryResolver(""),
		),
		Memberships: brandStore,
		Snapshots:   brandStore,
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/healthz", httpserver.Healthcheck(log))
	r.Get("/readyz", httpserver.Healthcheck(log, app.readinessProbes()...))
	r.Mount("/api/v1", catalog.Router(handler, deps, accessOpts...))
	app.Router = r

	app.server = httpserver.New(httpCfg, log)

	return app, nil
}

// Run serves the HTTP surface until ctx is cancelled or a termination
// signal arrives.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx, a.Router)
}

// Close releases the database pool and Redis client.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) readinessProbes() []func(context.Context) error {
	probes := []func(context.Context) error{pg.Healthcheck(a.DB)}
	if a.Redis != nil {
		probes = append(probes, redis.Healthcheck(a.Redis))
	}
	return probes
}

func newStorage(ctx context.Context, cfg Config) (blob.Storage, error) {
	switch cfg.BlobDriver {
	case "local":
		return blob.NewLocalStorage(cfg.BlobLocalDir, cfg.BlobLocalBaseURL)
	case "s3":
		var s3Cfg blob.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return nil, err
		}
		return blob.NewS3Storage(ctx, s3Cfg)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
	}
}
