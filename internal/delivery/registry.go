package delivery

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xelth-com/eckshipgo/internal/models"
)

// Registry maps carrier types to their label generators
type Registry struct {
	mu         sync.RWMutex
	generators map[string]ShippingLabelGenerator
	fallback   ShippingLabelGenerator
}

// NewRegistry creates a registry whose fallback is the base generator
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]ShippingLabelGenerator),
		fallback:   BaseGenerator{},
	}
}

// Register adds a generator for its carrier type
func (r *Registry) Register(gen ShippingLabelGenerator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	carrierType := gen.CarrierType()
	if carrierType == "" {
		return fmt.Errorf("generator carrier type cannot be empty")
	}

	if _, exists := r.generators[carrierType]; exists {
		return fmt.Errorf("generator for %s is already registered", carrierType)
	}

	r.generators[carrierType] = gen
	return nil
}

// For returns the generator serving the picking's carrier, or the base
// generator when the picking has no carrier or its type is unknown.
func (r *Registry) For(picking *models.StockPicking) ShippingLabelGenerator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if picking.Carrier == nil {
		return r.fallback
	}
	if gen, ok := r.generators[picking.Carrier.Type.String()]; ok {
		return gen
	}
	return r.fallback
}

// Has checks if a carrier type has a generator
func (r *Registry) Has(carrierType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.generators[carrierType]
	return exists
}

// Types returns the registered carrier types, sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
