package config

// GatePolicy is the on-disk form of the SQL gate policy.
type GatePolicy struct {
	AllowedRelation string `yaml:"allowed_relation"`
	DefaultLimit    int    `yaml:"default_limit"`
}
