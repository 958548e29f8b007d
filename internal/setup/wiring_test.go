package setup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/query"
	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DATABASE_URL", "SQL_CACHE_TTL", "CORS_ALLOWED_ORIGINS", "LLM_PROVIDER", "DB_MAX_RETRIES"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "" || cfg.DBMaxRetries != 5 {
		t.Errorf("Unexpected database defaults %+v", cfg)
	}
	if cfg.SQLCacheTTL != 30*time.Minute {
		t.Errorf("Expected 30m ttl, got %s", cfg.SQLCacheTTL)
	}
	if cfg.LLMProvider != "bedrock" {
		t.Errorf("Expected bedrock, got %s", cfg.LLMProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 3 {
		t.Errorf("Expected default origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SQL_CACHE_TTL", "5m")
	t.Setenv("DB_MAX_RETRIES", "notanumber")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := LoadConfig()

	if cfg.Port != "9000" || cfg.SQLCacheTTL != 5*time.Minute || cfg.DBMaxRetries != 5 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestCreateLLMClient(t *testing.T) {
	cfg := &Config{OpenAIKey: "sk-test", OpenAIModelID: "gpt-4o-mini"}

	client, err := createLLMClient(context.Background(), "openai", cfg)
	if err != nil {
		t.Fatalf("createLLMClient: %v", err)
	}
	if client.ModelName() != "gpt-4o-mini" {
		t.Errorf("Expected gpt-4o-mini, got %s", client.ModelName())
	}

	if _, err := createLLMClient(context.Background(), "gemini", cfg); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func TestWire_WithoutDatabaseOrRedis(t *testing.T) {
	t.Setenv("GATE_POLICY_PATH", "")
	t.Chdir(t.TempDir())

	logger := zerolog.Nop()
	cfg := &Config{LLMProvider: "openai", OpenAIKey: "sk-test", OpenAIModelID: "gpt-4o-mini"}

	deps, err := Wire(context.Background(), cfg, &logger)
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}
	defer deps.Close()

	if deps.DB != nil || deps.Redis != nil || deps.SQLCache != nil {
		t.Errorf("Expected no optional backends, got %+v", deps)
	}
	if got := deps.Service.Health(context.Background()); got.DB != query.DBNotConfigured {
		t.Errorf("Expected not_configured, got %s", got.DB)
	}
	if deps.Service.Policy().AllowedRelation != "vgs_view" {
		t.Errorf("Expected default policy, got %+v", deps.Service.Policy())
	}
}

func TestConnectDatabase_NotConfigured(t *testing.T) {
	logger := zerolog.Nop()
	if _, err := ConnectDatabase(context.Background(), &Config{}, &logger); !errors.Is(err, query.ErrDatabaseNotConfigured) {
		t.Errorf("Expected ErrDatabaseNotConfigured, got %v", err)
	}
}
