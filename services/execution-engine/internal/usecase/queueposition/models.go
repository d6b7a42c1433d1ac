package queueposition

import (
	"fmt"
	"math"
	"strings"

	queuev1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/queue/v1"
)

const (
	// DefaultPowerExponent is k in (1 - ahead/level)^k.
	DefaultPowerExponent = 2.0
	// DefaultRiskAversion scales PowerProb down for pessimistic planning.
	DefaultRiskAversion = 0.7
)

// PowerProb favors orders near the front of the queue.
type PowerProb struct {
	Exponent float64
}

func (PowerProb) Name() string { return "power" }

// Probability returns (1 - ahead/levelTotal)^k.
func (p PowerProb) Probability(ahead, levelTotal float64) float64 {
	if levelTotal <= 0 {
		return 1
	}
	k := p.Exponent
	if k <= 0 {
		k = DefaultPowerExponent
	}
	return clamp01(math.Pow(1-clamp01(ahead/levelTotal), k))
}

// RiskAverse is PowerProb scaled by a conservatism factor.
type RiskAverse struct {
	Power  PowerProb
	Factor float64
}

func (RiskAverse) Name() string { return "risk_averse" }

// Probability returns PowerProb's result times Factor.
func (r RiskAverse) Probability(ahead, levelTotal float64) float64 {
	return clamp01(r.Power.Probability(ahead, levelTotal) * r.Factor)
}

// LogProb decays logarithmically with the quantity ahead.
type LogProb struct{}

func (LogProb) Name() string { return "log" }

// Probability returns 1 - ln(1+ahead)/ln(2+levelTotal), clamped to [0, 1].
func (LogProb) Probability(ahead, levelTotal float64) float64 {
	ahead = math.Max(ahead, 0)
	levelTotal = math.Max(levelTotal, 0)
	return clamp01(1 - math.Log1p(ahead)/math.Log(2+levelTotal))
}

// ModelByName builds a model from its configuration name.
func ModelByName(name string, exponent, riskAversion float64) (queuev1.ProbabilityModel, error) {
	switch strings.ToLower(name) {
	case "", "power":
		return PowerProb{Exponent: exponent}, nil
	case "risk_averse":
		return RiskAverse{Power: PowerProb{Exponent: exponent}, Factor: riskAversion}, nil
	case "log":
		return LogProb{}, nil
	}
	return nil, fmt.Errorf("unknown queue model %q", name)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
