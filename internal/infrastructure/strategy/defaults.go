package strategy

import (
	"github.com/erp/lpcore/internal/infrastructure/strategy/batch"
)

// NewRegistryWithDefaults creates a registry with the FIFO and FEFO batch strategies
// registered and defaultPolicy as the default. An empty defaultPolicy selects FIFO.
func NewRegistryWithDefaults(defaultPolicy string) (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	fifoBatch := batch.NewFIFOBatchStrategy()
	if err := r.RegisterBatchStrategy(fifoBatch); err != nil {
		return nil, err
	}

	fefoBatch := batch.NewFEFOBatchStrategy()
	if err := r.RegisterBatchStrategy(fefoBatch); err != nil {
		return nil, err
	}

	if defaultPolicy == "" {
		defaultPolicy = fifoBatch.Name()
	}
	if err := r.SetDefault(defaultPolicy); err != nil {
		return nil, err
	}

	return r, nil
}
