package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
	"go.yaml.in/yaml/v3"
)

const defaultGatePolicyPath = "configs/gate.yaml"

// LoadGatePolicy reads the policy from GATE_POLICY_PATH. When the variable is
// unset and the default file does not exist, the built-in policy is used.
func LoadGatePolicy() (*GatePolicy, error) {
	path, explicit := os.LookupEnv("GATE_POLICY_PATH")
	if !explicit || path == "" {
		path = defaultGatePolicyPath
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := &GatePolicy{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read gate policy %s: %w", path, err)
	}

	var cfg GatePolicy
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gate policy %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *GatePolicy) {
	if cfg.AllowedRelation == "" {
		cfg.AllowedRelation = sqlgate.DefaultRelation
	}
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = sqlgate.DefaultLimit
	}
}

func (g *GatePolicy) Validate() error {
	if err := g.ToPolicy().Validate(); err != nil {
		return fmt.Errorf("invalid gate policy: %w", err)
	}
	return nil
}

func (g *GatePolicy) ToPolicy() sqlgate.Policy {
	return sqlgate.Policy{
		AllowedRelation: g.AllowedRelation,
		DefaultLimit:    g.DefaultLimit,
	}
}
