package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery so emit paths avoid per-call type switches.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onPoolInitialized   []OnPoolInitialized
	onCreditsPurchased  []OnCreditsPurchased
	onPriceStepped      []OnPriceStepped
	onHeritagePreserved []OnHeritagePreserved
	onPlantingSubmitted []OnPlantingSubmitted
	onPlantingVerified  []OnPlantingVerified
	onPlanterVerified   []OnPlanterVerified
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnPoolInitialized); ok {
		r.onPoolInitialized = append(r.onPoolInitialized, v)
	}
	if v, ok := p.(OnCreditsPurchased); ok {
		r.onCreditsPurchased = append(r.onCreditsPurchased, v)
	}
	if v, ok := p.(OnPriceStepped); ok {
		r.onPriceStepped = append(r.onPriceStepped, v)
	}
	if v, ok := p.(OnHeritagePreserved); ok {
		r.onHeritagePreserved = append(r.onHeritagePreserved, v)
	}
	if v, ok := p.(OnPlantingSubmitted); ok {
		r.onPlantingSubmitted = append(r.onPlantingSubmitted, v)
	}
	if v, ok := p.(OnPlantingVerified); ok {
		r.onPlantingVerified = append(r.onPlantingVerified, v)
	}
	if v, ok := p.(OnPlanterVerified); ok {
		r.onPlanterVerified = append(r.onPlanterVerified, v)
	}

	return nil
}

// Plugins returns the registered plugins.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// emit runs a hook across plugins, logging failures. Hook errors never fail
// the operation that emitted them.
func (r *Registry) emit(name, plugin string, fn func() error) {
	if err := fn(); err != nil {
		r.logger.Warn("plugin hook failed",
			"hook", name,
			"plugin", plugin,
			"error", err,
		)
	}
}

// EmitInit dispatches the OnInit hook.
func (r *Registry) EmitInit(ctx context.Context, l interface{}) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onInit {
		r.emit("on_init", p.Name(), func() error { return p.OnInit(ctx, l) })
	}
}

// EmitShutdown dispatches the OnShutdown hook.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onShutdown {
		r.emit("on_shutdown", p.Name(), func() error { return p.OnShutdown(ctx) })
	}
}

// EmitPoolInitialized dispatches the OnPoolInitialized hook.
func (r *Registry) EmitPoolInitialized(ctx context.Context, pl interface{}) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onPoolInitialized {
		r.emit("on_pool_initialized", p.Name(), func() error { return p.OnPoolInitialized(ctx, pl) })
	}
}

// EmitCreditsPurchased dispatches the OnCreditsPurchased hook.
func (r *Registry) EmitCreditsPurchased(ctx context.Context, buyer string, amount, cost uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onCreditsPurchased {
		r.emit("on_credits_purchased", p.Name(), func() error {
			return p.OnCreditsPurchased(ctx, buyer, amount, cost)
		})
	}
}

// EmitPriceStepped dispatches the OnPriceStepped hook.
func (r *Registry) EmitPriceStepped(ctx context.Context, oldPrice, newPrice, totalSupply uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onPriceStepped {
		r.emit("on_price_stepped", p.Name(), func() error {
			return p.OnPriceStepped(ctx, oldPrice, newPrice, totalSupply)
		})
	}
}

// EmitHeritagePreserved dispatches the OnHeritagePreserved hook.
func (r *Registry) EmitHeritagePreserved(ctx context.Context, owner, heritageType string, creditCost, treesFunded uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onHeritagePreserved {
		r.emit("on_heritage_preserved", p.Name(), func() error {
			return p.OnHeritagePreserved(ctx, owner, heritageType, creditCost, treesFunded)
		})
	}
}

// EmitPlantingSubmitted dispatches the OnPlantingSubmitted hook.
func (r *Registry) EmitPlantingSubmitted(ctx context.Context, record interface{}) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onPlantingSubmitted {
		r.emit("on_planting_submitted", p.Name(), func() error {
			return p.OnPlantingSubmitted(ctx, record)
		})
	}
}

// EmitPlantingVerified dispatches the OnPlantingVerified hook.
func (r *Registry) EmitPlantingVerified(ctx context.Context, record interface{}, payment uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onPlantingVerified {
		r.emit("on_planting_verified", p.Name(), func() error {
			return p.OnPlantingVerified(ctx, record, payment)
		})
	}
}

// EmitPlanterVerified dispatches the OnPlanterVerified hook.
func (r *Registry) EmitPlanterVerified(ctx context.Context, planterOwner string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.onPlanterVerified {
		r.emit("on_planter_verified", p.Name(), func() error {
			return p.OnPlanterVerified(ctx, planterOwner)
		})
	}
}
