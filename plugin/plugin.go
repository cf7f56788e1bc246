// Package plugin provides an extensible plugin system for Pyebwa.
// Plugins can hook into operation lifecycle events to extend functionality.
package plugin

import "context"

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Operation hooks
// ──────────────────────────────────────────────────

// OnPoolInitialized is called when the pool singleton is created.
type OnPoolInitialized interface {
	Plugin
	OnPoolInitialized(ctx context.Context, p interface{}) error
}

// OnCreditsPurchased is called after a successful credit purchase.
type OnCreditsPurchased interface {
	Plugin
	OnCreditsPurchased(ctx context.Context, buyer string, amount, cost uint64) error
}

// OnPriceStepped is called when a purchase lands on a repricing boundary.
type OnPriceStepped interface {
	Plugin
	OnPriceStepped(ctx context.Context, oldPrice, newPrice, totalSupply uint64) error
}

// OnHeritagePreserved is called after a successful heritage preservation.
type OnHeritagePreserved interface {
	Plugin
	OnHeritagePreserved(ctx context.Context, owner, heritageType string, creditCost, treesFunded uint64) error
}

// OnPlantingSubmitted is called after planting evidence is recorded.
type OnPlantingSubmitted interface {
	Plugin
	OnPlantingSubmitted(ctx context.Context, record interface{}) error
}

// OnPlantingVerified is called after an evidence record is verified.
type OnPlantingVerified interface {
	Plugin
	OnPlantingVerified(ctx context.Context, record interface{}, payment uint64) error
}

// OnPlanterVerified is called after a planter's identity is verified.
type OnPlanterVerified interface {
	Plugin
	OnPlanterVerified(ctx context.Context, planterOwner string) error
}
