package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/audit"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/cache"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/config"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/generator"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/query"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sqlCachePrefix = "sql_cache:"

var defaultCORSOrigins = []string{
	"https://clarenceze.com",
	"https://www.clarenceze.com",
	"https://clarenceze.github.io",
}

type Config struct {
	Port               string
	LogLevel           string
	DatabaseURL        string
	DBMaxRetries       int
	DBMaxConns         int
	StatementTimeout   time.Duration
	LLMProvider        string
	AWSRegion          string
	ClaudeModelID      string
	OpenAIKey          string
	OpenAIModelID      string
	RedisAddr          string
	RedisPassword      string
	RedisMaxRetries    int
	SQLCacheTTL        time.Duration
	AuditStream        string
	AuditStreamMaxLen  int
	CORSAllowedOrigins []string
}

type Dependencies struct {
	Service  *query.Service
	Stats    *audit.Stats
	SQLCache cache.SQLCache
	DB       *database.DB
	Redis    *goredis.Client
	Logger   *zerolog.Logger
}

// Close releases the database pool and the Redis client when present.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}

func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("APP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBMaxRetries:       getEnvInt("DB_MAX_RETRIES", 5),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 4),
		StatementTimeout:   getEnvDuration("STATEMENT_TIMEOUT", 5*time.Second),
		LLMProvider:        getEnv("LLM_PROVIDER", llm.ProviderBedrock),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:      getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:          getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:      getEnv("OPEN_AI_MODEL_ID", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisMaxRetries:    getEnvInt("REDIS_MAX_RETRIES", 5),
		SQLCacheTTL:        getEnvDuration("SQL_CACHE_TTL", 30*time.Minute),
		AuditStream:        getEnv("AUDIT_STREAM", ""),
		AuditStreamMaxLen:  getEnvInt("AUDIT_STREAM_MAXLEN", 10000),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
	}
}

// LoadGate builds the SQL gate from the policy file.
func LoadGate() (*sqlgate.Gate, error) {
	policy, err := config.LoadGatePolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to load gate policy: %w", err)
	}
	return sqlgate.New(policy.ToPolicy())
}

// ConnectDatabase opens the pool for cfg.DatabaseURL and waits for it to
// answer.
func ConnectDatabase(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*database.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, query.ErrDatabaseNotConfigured
	}

	return database.NewWithBackoff(ctx, database.Config{
		URL:              cfg.DatabaseURL,
		MaxConns:         int32(cfg.DBMaxConns),
		StatementTimeout: cfg.StatementTimeout,
	}, cfg.DBMaxRetries, logger)
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	gate, err := LoadGate()
	if err != nil {
		return nil, err
	}

	llmClient, err := createLLMClient(ctx, cfg.LLMProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLMProvider, err)
	}
	logger.Info().Str("provider", cfg.LLMProvider).Str("model", llmClient.ModelName()).Msg("LLM client ready")

	gen := generator.NewGenerator(llmClient, gate.Policy().AllowedRelation, logger)
	var sqlGenerator query.SQLGenerator = gen

	deps.Stats = audit.NewStats()
	recorders := audit.MultiRecorder{audit.NewLogRecorder(logger), deps.Stats}

	if cfg.RedisAddr != "" {
		client, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisMaxRetries, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.Redis = client

		sqlCache := cache.NewRedisSQLCache(client, sqlCachePrefix, cfg.SQLCacheTTL, logger)
		deps.SQLCache = sqlCache
		sqlGenerator = generator.NewCachedGenerator(gen, sqlCache, logger)

		if cfg.AuditStream != "" {
			recorders = append(recorders, audit.NewStreamRecorder(client, cfg.AuditStream, int64(cfg.AuditStreamMaxLen), logger))
		}
	} else {
		logger.Info().Msg("REDIS_ADDR not set, sql cache disabled")
	}

	var executor query.Executor
	if cfg.DatabaseURL != "" {
		db, err := ConnectDatabase(ctx, cfg, logger)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.DB = db
		executor = db
	} else {
		logger.Warn().Msg("DATABASE_URL not set, running without a database")
	}

	deps.Service = query.NewService(gate, sqlGenerator, executor, recorders, logger)

	return deps, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		value = defaultValue
	}

	return value
}

func getEnvList(key string, defaultValue []string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}

	return values
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case llm.ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case llm.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", provider)
	}
}
