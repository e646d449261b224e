package server

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"socialmetrics-backend/internal/analytics"
	"socialmetrics-backend/internal/llm"
	"socialmetrics-backend/internal/llm/gemini"
	"socialmetrics-backend/internal/llm/openai"
	"socialmetrics-backend/internal/services/health"
	"socialmetrics-backend/internal/shared/config"
	"socialmetrics-backend/internal/shared/metrics"
	"socialmetrics-backend/internal/shared/server/middleware"
	"socialmetrics-backend/internal/shared/storage/db"
	"socialmetrics-backend/internal/shared/telemetry"
	"socialmetrics-backend/internal/shared/util"
	"socialmetrics-backend/internal/sproutsocial"
	"socialmetrics-backend/internal/strategies"
	"socialmetrics-backend/internal/usage"
)

const strategyRateGroup = "STRATEGY"

// Deps are the collaborators the HTTP facade is built from.
type Deps struct {
	Provider  analytics.Provider
	Generator llm.Generator
	Usage     *usage.Service
}

// NewRouter wires dependencies from cfg and returns the engine with a cleanup func.
func NewRouter(ctx context.Context, cfg config.Config) (*gin.Engine, func()) {
	deps, cleanup := BuildDeps(ctx, cfg)
	return Routes(cfg, deps), cleanup
}

// Routes constructs the Gin engine with middleware and routes registered.
func Routes(cfg config.Config, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateGroup,
			Rules:    rateRules(cfg),
		}),
	)

	if deps.Usage == nil {
		deps.Usage = usage.NewService(usage.NewMemoryStore(), cfg.UsageWarnTokens)
	}

	status, _ := deps.Generator.(llm.StatusChecker)
	pipeline := strategies.NewPipeline(deps.Generator, cfg.LLMModel, cfg.LLMTemperature, cfg.LLMTokenLadder)

	health.NewService().RegisterRoutes(r)
	analytics.NewHandler(analytics.NewService(deps.Provider)).RegisterRoutes(r)
	strategies.NewHandler(pipeline, status, cfg.LLMProvider).RegisterRoutes(r)
	usage.NewHandler(deps.Usage).RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	return r
}

func rateGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/generate_strategy", "/strategy", "/api_status":
		return strategyRateGroup
	}
	return ""
}

func rateRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.HTTPRateLimitRPS <= 0 || cfg.HTTPRateLimitBurst <= 0 {
		return nil
	}
	strategyBurst := cfg.HTTPRateLimitBurst / 4
	if strategyBurst < 1 {
		strategyBurst = 1
	}
	return map[string]middleware.RateLimitRule{
		"DEFAULT":         {Rate: cfg.HTTPRateLimitRPS, Burst: cfg.HTTPRateLimitBurst},
		strategyRateGroup: {Rate: cfg.HTTPRateLimitRPS / 4, Burst: strategyBurst},
	}
}

// BuildDeps constructs the provider client, the model generator and the usage store.
// Failures degrade to the unconfigured or in-process variants and are logged.
func BuildDeps(ctx context.Context, cfg config.Config) (Deps, func()) {
	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}

	usageSvc, usageCloser := buildUsage(ctx, cfg)
	if usageCloser != nil {
		closers = append(closers, usageCloser)
	}

	deps := Deps{Usage: usageSvc}
	if cfg.SproutAPIKey != "" {
		client, err := sproutsocial.NewClient(cfg.SproutAPIKey, sproutsocial.WithBaseURL(cfg.SproutBaseURL))
		if err != nil {
			telemetry.Error("sprout.init_failed", map[string]any{"error": err.Error()})
		} else {
			deps.Provider = client
		}
	} else {
		telemetry.Warn("sprout.not_configured", nil)
	}

	base, closer := buildGenerator(ctx, cfg)
	if closer != nil {
		closers = append(closers, closer)
	}
	limiter := llm.NewWindowLimiter(cfg.LLMRateLimitCalls, cfg.LLMRateLimitWindow, llm.SystemClock())
	deps.Generator = llm.Throttled(llm.Tracked(base, cfg.LLMProvider, usageSvc), limiter)

	return deps, cleanup
}

func buildGenerator(ctx context.Context, cfg config.Config) (llm.Generator, io.Closer) {
	key := cfg.LLMAPIKey()
	if key == "" {
		telemetry.Warn("llm.not_configured", map[string]any{"provider": cfg.LLMProvider})
		return llm.Unconfigured{}, nil
	}
	fields := map[string]any{"provider": cfg.LLMProvider, "model": cfg.LLMModel, "api_key": util.MaskSecret(key)}
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(ctx, key, cfg.LLMModel)
		if err != nil {
			fields["error"] = err.Error()
			telemetry.Error("llm.init_failed", fields)
			return llm.Unconfigured{}, nil
		}
		telemetry.Info("llm.init", fields)
		return client, client
	default:
		var opts []openai.Option
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		client, err := openai.NewClient(key, cfg.LLMModel, opts...)
		if err != nil {
			fields["error"] = err.Error()
			telemetry.Error("llm.init_failed", fields)
			return llm.Unconfigured{}, nil
		}
		telemetry.Info("llm.init", fields)
		return client, nil
	}
}

func buildUsage(ctx context.Context, cfg config.Config) (*usage.Service, io.Closer) {
	switch cfg.UsageStore {
	case "memory":
		return usage.NewService(usage.NewMemoryStore(), cfg.UsageWarnTokens), nil
	case "postgres":
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Error("usage.store_fallback", map[string]any{"store": "postgres", "error": err.Error()})
			break
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			telemetry.Error("usage.store_fallback", map[string]any{"store": "postgres", "error": err.Error()})
			_ = sqlDB.Close()
			break
		}
		return usage.NewService(usage.NewPGStore(sqlDB), cfg.UsageWarnTokens), sqlDB
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			telemetry.Error("usage.store_fallback", map[string]any{"store": "redis", "error": err.Error()})
			break
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			telemetry.Error("usage.store_fallback", map[string]any{"store": "redis", "error": err.Error()})
			_ = client.Close()
			break
		}
		return usage.NewService(usage.NewRedisStore(client), cfg.UsageWarnTokens), client
	}
	return usage.NewService(usage.NewFileStore(cfg.UsageFile), cfg.UsageWarnTokens), nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
