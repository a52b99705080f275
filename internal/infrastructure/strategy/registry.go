package strategy

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/domain/shared/strategy"
)

// StrategyRegistry manages batch selection strategy registrations.
// Names are matched case-insensitively so "FIFO" and "fifo" resolve the same strategy.
type StrategyRegistry struct {
	mu              sync.RWMutex
	batchStrategies map[string]strategy.BatchManagementStrategy
	defaultBatch    string
}

// NewStrategyRegistry creates a new strategy registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		batchStrategies: make(map[string]strategy.BatchManagementStrategy),
	}
}

// RegisterBatchStrategy registers a batch management strategy
func (r *StrategyRegistry) RegisterBatchStrategy(s strategy.BatchManagementStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := normalizeName(s.Name())
	if _, exists := r.batchStrategies[name]; exists {
		return shared.NewValidationError("STRATEGY_EXISTS", fmt.Sprintf("batch strategy '%s' already registered", name))
	}
	r.batchStrategies[name] = s
	return nil
}

// GetBatchStrategy returns a batch strategy by name, or the default if name is empty
func (r *StrategyRegistry) GetBatchStrategy(name string) (strategy.BatchManagementStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = normalizeName(name)
	if name == "" {
		name = r.defaultBatch
		if name == "" {
			return nil, shared.NewDomainError(shared.KindNotFound, "STRATEGY_NOT_FOUND", "no default batch strategy set")
		}
	}

	s, exists := r.batchStrategies[name]
	if !exists {
		return nil, shared.NewValidationError("UNKNOWN_SORT_POLICY", fmt.Sprintf("unknown sort policy '%s'", name)).
			WithDetail("policy", name)
	}
	return s, nil
}

// GetBatchStrategyOrDefault returns a batch strategy by name, or the default if not found
func (r *StrategyRegistry) GetBatchStrategyOrDefault(name string) strategy.BatchManagementStrategy {
	s, err := r.GetBatchStrategy(name)
	if err != nil {
		s, _ = r.GetBatchStrategy("")
	}
	return s
}

// ListBatchStrategies returns all registered batch strategy names
func (r *StrategyRegistry) ListBatchStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.batchStrategies))
	for name := range r.batchStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnregisterBatchStrategy removes a batch strategy
func (r *StrategyRegistry) UnregisterBatchStrategy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = normalizeName(name)
	if _, exists := r.batchStrategies[name]; !exists {
		return shared.NewDomainError(shared.KindNotFound, "STRATEGY_NOT_FOUND", fmt.Sprintf("batch strategy '%s' not found", name))
	}
	delete(r.batchStrategies, name)

	if r.defaultBatch == name {
		r.defaultBatch = ""
	}
	return nil
}

// SetDefault sets the default batch strategy
func (r *StrategyRegistry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = normalizeName(name)
	if _, exists := r.batchStrategies[name]; !exists {
		return shared.NewDomainError(shared.KindNotFound, "STRATEGY_NOT_FOUND", fmt.Sprintf("batch strategy '%s' not registered", name))
	}
	r.defaultBatch = name
	return nil
}

// GetDefault returns the default batch strategy name
func (r *StrategyRegistry) GetDefault() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultBatch
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
