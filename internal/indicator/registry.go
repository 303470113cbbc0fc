package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Column is a computed indicator series keyed by its label.
type Column struct {
	Label  string
	Values []float64
}

// IndicatorRegistry resolves indicator kinds to their implementations.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(kind types.IndicatorKind) (Indicator, error)
	ListIndicators() []types.IndicatorKind
	RemoveIndicator(kind types.IndicatorKind) error
	// Compute parses label and computes its column over the input.
	// An unknown kind is a configuration error.
	Compute(label string, in Input) (Column, error)
}

// IndicatorRegistryV1 keeps indicators in registration order.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorKind]Indicator
	order      []types.IndicatorKind
	mu         sync.RWMutex
}

// NewEmptyIndicatorRegistry creates a registry without any indicator.
func NewEmptyIndicatorRegistry() *IndicatorRegistryV1 {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorKind]Indicator),
		order:      nil,
		mu:         sync.RWMutex{},
	}
}

// NewIndicatorRegistry creates a registry holding every built-in indicator.
func NewIndicatorRegistry() IndicatorRegistry {
	registry := NewEmptyIndicatorRegistry()

	for _, ind := range []Indicator{NewSMA(), NewEMA(), NewHiLo(), NewStochK(), NewATR(), NewTrend()} {
		// built-in kinds are distinct
		_ = registry.RegisterIndicator(ind)
	}

	return registry
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := indicator.Name()
	if _, exists := r.indicators[kind]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator %s already registered", kind)
	}

	r.indicators[kind] = indicator
	r.order = append(r.order, kind)

	return nil
}

// GetIndicator retrieves an indicator by kind.
func (r *IndicatorRegistryV1) GetIndicator(kind types.IndicatorKind) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[kind]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator %s not found", kind)
	}

	return indicator, nil
}

// ListIndicators returns the registered kinds in registration order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]types.IndicatorKind, len(r.order))
	copy(kinds, r.order)

	return kinds
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(kind types.IndicatorKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[kind]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator %s not found", kind)
	}

	delete(r.indicators, kind)

	for i, k := range r.order {
		if k == kind {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

// Compute implements IndicatorRegistry.
func (r *IndicatorRegistryV1) Compute(label string, in Input) (Column, error) {
	parsed, err := ParseLabel(label)
	if err != nil {
		return Column{}, err
	}

	indicator, err := r.GetIndicator(parsed.Kind)
	if err != nil {
		return Column{}, errors.Wrapf(errors.ErrCodeIndicatorNotFound, err, "no indicator registered for label %q", label)
	}

	values, err := indicator.Compute(in, parsed.Param)
	if err != nil {
		return Column{}, errors.Wrapf(errors.GetCode(err), err, "failed to compute %q", label)
	}

	return Column{Label: label, Values: values}, nil
}
