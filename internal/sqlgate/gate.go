// Package sqlgate decides whether a model-generated SQL string may run
// against the analytical view, and in what exact form.
//
// The gate is a fixed chain: normalize, tokenize, then the statement type,
// target scope, keyword and statement shape gates, and finally the LIMIT
// enforcer. The first
// failing gate determines the verdict. Gates work on tokens rather than raw
// text, so keywords inside string literals or quoted identifiers do not
// trigger them.
package sqlgate

import (
	"fmt"
)

const (
	DefaultRelation = "vgs_view"
	DefaultLimit    = 20
)

// Policy configures the allow-listed relation and the appended row bound.
type Policy struct {
	AllowedRelation string
	DefaultLimit    int
}

func DefaultPolicy() Policy {
	return Policy{
		AllowedRelation: DefaultRelation,
		DefaultLimit:    DefaultLimit,
	}
}

func (p Policy) Validate() error {
	if !isPlainIdentifier(p.AllowedRelation) {
		return fmt.Errorf("allowed relation %q is not a plain identifier", p.AllowedRelation)
	}
	if p.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", p.DefaultLimit)
	}
	return nil
}

// Gate validates statements against a Policy. A Gate is immutable and safe
// for concurrent use.
type Gate struct {
	policy Policy
}

func New(policy Policy) (*Gate, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Gate{policy: policy}, nil
}

func (g *Gate) Policy() Policy {
	return g.policy
}

// Validate runs the full gate chain over sql.
func (g *Gate) Validate(sql string) Verdict {
	normalized := Normalize(sql)
	tokens := Tokenize(normalized)

	if v := CheckStatementType(tokens); v != nil {
		return *v
	}
	if v := CheckTargetScope(tokens, g.policy.AllowedRelation); v != nil {
		return *v
	}
	if v := CheckKeywords(tokens); v != nil {
		return *v
	}
	if v := CheckStatementShape(tokens); v != nil {
		return *v
	}

	return pass(EnforceLimit(normalized, tokens, g.policy.DefaultLimit))
}

var defaultGate = &Gate{policy: DefaultPolicy()}

// Validate runs sql through a gate using DefaultPolicy.
func Validate(sql string) Verdict {
	return defaultGate.Validate(sql)
}

func isPlainIdentifier(s string) bool {
	tokens := Tokenize(s)
	return len(tokens) == 1 && tokens[0].Kind == TokenWord && tokens[0].Start == 0 && tokens[0].End == len(s)
}
