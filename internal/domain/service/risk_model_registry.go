package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// DefaultModelID is used when an assessment does not name a model.
const DefaultModelID = "comprehensive"

var (
	weightSumTolerance = decimal.RequireFromString("0.001")
	hundred            = decimal.NewFromInt(100)
)

// RiskModelPreset is a named weighting-and-threshold profile over the scoring
// factors. BaseAccuracy and LatencyMillis are display metadata only and never
// take part in a decision.
type RiskModelPreset struct {
	ID                string                                 `json:"id"`
	DisplayName       string                                 `json:"display_name"`
	Description       string                                 `json:"description,omitempty"`
	BaseAccuracy      decimal.Decimal                        `json:"base_accuracy"`
	LatencyMillis     int                                    `json:"latency_ms"`
	Weights           map[valueobject.Factor]decimal.Decimal `json:"weights"`
	ApprovalThreshold decimal.Decimal                        `json:"approval_threshold"`
}

// Validate checks that weights cover only known factors, are non-negative and
// sum to 1 within tolerance, and that the threshold lies in [0,100].
func (p RiskModelPreset) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return valueobject.Validationf("risk model id is required")
	}
	if len(p.Weights) == 0 {
		return valueobject.Validationf("risk model %s has no weights", p.ID)
	}

	sum := decimal.Zero
	for factor, w := range p.Weights {
		if !factor.IsValid() {
			return valueobject.Validationf("risk model %s weights unknown factor %q", p.ID, factor)
		}
		if w.IsNegative() {
			return valueobject.Validationf("risk model %s has negative weight for %s", p.ID, factor)
		}
		sum = sum.Add(w)
	}
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(weightSumTolerance) {
		return valueobject.Validationf("risk model %s weights sum to %s, want 1", p.ID, sum.String())
	}

	if p.ApprovalThreshold.IsNegative() || p.ApprovalThreshold.GreaterThan(hundred) {
		return valueobject.Validationf("risk model %s threshold %s outside [0,100]", p.ID, p.ApprovalThreshold.String())
	}
	return nil
}

// Weight returns the weight of factor, zero when the preset ignores it.
func (p RiskModelPreset) Weight(factor valueobject.Factor) decimal.Decimal {
	return p.Weights[factor]
}

// DefaultPresets returns the built-in model presets.
func DefaultPresets() []RiskModelPreset {
	w := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []RiskModelPreset{
		{
			ID:            "comprehensive",
			DisplayName:   "Comprehensive Credit Model",
			Description:   "Balanced weighting across repayment, utilization, history, diversity, social trust and KYC",
			BaseAccuracy:  w("94.2"),
			LatencyMillis: 120,
			Weights: map[valueobject.Factor]decimal.Decimal{
				valueobject.FactorPaymentHistory:    w("0.35"),
				valueobject.FactorCreditUtilization: w("0.15"),
				valueobject.FactorHistoryLength:     w("0.15"),
				valueobject.FactorLoanDiversity:     w("0.10"),
				valueobject.FactorSocialTrust:       w("0.10"),
				valueobject.FactorKYCVerification:   w("0.15"),
			},
			ApprovalThreshold: w("65"),
		},
		{
			ID:            "rapid",
			DisplayName:   "Rapid Assessment Model",
			Description:   "Repayment-led screen for small, short-term loans",
			BaseAccuracy:  w("87.5"),
			LatencyMillis: 15,
			Weights: map[valueobject.Factor]decimal.Decimal{
				valueobject.FactorPaymentHistory:    w("0.50"),
				valueobject.FactorCreditUtilization: w("0.20"),
				valueobject.FactorHistoryLength:     w("0.10"),
				valueobject.FactorKYCVerification:   w("0.20"),
			},
			ApprovalThreshold: w("60"),
		},
		{
			ID:            "conservative",
			DisplayName:   "Conservative Risk Model",
			Description:   "High bar favouring long, clean repayment records",
			BaseAccuracy:  w("96.1"),
			LatencyMillis: 200,
			Weights: map[valueobject.Factor]decimal.Decimal{
				valueobject.FactorPaymentHistory:    w("0.40"),
				valueobject.FactorCreditUtilization: w("0.20"),
				valueobject.FactorHistoryLength:     w("0.20"),
				valueobject.FactorLoanDiversity:     w("0.05"),
				valueobject.FactorKYCVerification:   w("0.15"),
			},
			ApprovalThreshold: w("75"),
		},
	}
}

// ParsePresets decodes a JSON array of presets.
func ParsePresets(data []byte) ([]RiskModelPreset, error) {
	var presets []RiskModelPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, valueobject.Validationf("invalid risk model presets: %v", err)
	}
	return presets, nil
}

// RiskModelRegistry holds the selectable presets. It is safe for concurrent use.
type RiskModelRegistry struct {
	mu        sync.RWMutex
	presets   map[string]RiskModelPreset
	defaultID string
}

// NewRiskModelRegistry validates and registers presets. defaultID must be
// among them; empty means DefaultModelID.
func NewRiskModelRegistry(defaultID string, presets ...RiskModelPreset) (*RiskModelRegistry, error) {
	if defaultID == "" {
		defaultID = DefaultModelID
	}
	r := &RiskModelRegistry{presets: make(map[string]RiskModelPreset, len(presets)), defaultID: defaultID}
	for _, p := range presets {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	if _, ok := r.presets[defaultID]; !ok {
		return nil, fmt.Errorf("%w: default model %q is not registered", valueobject.ErrUnknownModel, defaultID)
	}
	return r, nil
}

// Register adds or replaces a preset after validating it.
func (r *RiskModelRegistry) Register(p RiskModelPreset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.ID] = p
	return nil
}

// Get resolves a model id. An empty id selects the default model; an
// unregistered id fails with ErrUnknownModel.
func (r *RiskModelRegistry) Get(id string) (RiskModelPreset, error) {
	if id == "" {
		id = r.defaultID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[id]
	if !ok {
		return RiskModelPreset{}, fmt.Errorf("%w: %q", valueobject.ErrUnknownModel, id)
	}
	return p, nil
}

// List returns all presets ordered by id.
func (r *RiskModelRegistry) List() []RiskModelPreset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RiskModelPreset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *RiskModelRegistry) DefaultModelID() string { return r.defaultID }
