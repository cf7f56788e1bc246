// Package audithook bridges Pyebwa lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on a
// specific audit system. Callers inject a RecorderFunc adapter that bridges
// to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pyebwa/pyebwa/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnPoolInitialized   = (*Extension)(nil)
	_ plugin.OnCreditsPurchased  = (*Extension)(nil)
	_ plugin.OnPriceStepped      = (*Extension)(nil)
	_ plugin.OnHeritagePreserved = (*Extension)(nil)
	_ plugin.OnPlantingSubmitted = (*Extension)(nil)
	_ plugin.OnPlantingVerified  = (*Extension)(nil)
	_ plugin.OnPlanterVerified   = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that this package does not import any
// particular audit module — callers inject the concrete backend
// at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Pyebwa lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Pool lifecycle hooks
// ──────────────────────────────────────────────────

// OnPoolInitialized implements plugin.OnPoolInitialized.
func (e *Extension) OnPoolInitialized(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPoolInitialized, SeverityInfo, OutcomeSuccess,
		ResourcePool, "", CategoryPool, nil,
		"event", "pool_initialized",
	)
}

// OnPriceStepped implements plugin.OnPriceStepped.
func (e *Extension) OnPriceStepped(ctx context.Context, oldPrice, newPrice, totalSupply uint64) error {
	return e.record(ctx, ActionPriceStepped, SeverityInfo, OutcomeSuccess,
		ResourcePool, "", CategoryPool, nil,
		"old_price", oldPrice,
		"new_price", newPrice,
		"total_supply", totalSupply,
	)
}

// ──────────────────────────────────────────────────
// Purchase lifecycle hooks
// ──────────────────────────────────────────────────

// OnCreditsPurchased implements plugin.OnCreditsPurchased.
func (e *Extension) OnCreditsPurchased(ctx context.Context, buyer string, amount, cost uint64) error {
	return e.record(ctx, ActionCreditsPurchased, SeverityInfo, OutcomeSuccess,
		ResourceCredits, buyer, CategoryPurchase, nil,
		"buyer", buyer,
		"amount", amount,
		"cost", cost,
	)
}

// ──────────────────────────────────────────────────
// Heritage lifecycle hooks
// ──────────────────────────────────────────────────

// OnHeritagePreserved implements plugin.OnHeritagePreserved.
func (e *Extension) OnHeritagePreserved(ctx context.Context, owner, heritageType string, creditCost, treesFunded uint64) error {
	return e.record(ctx, ActionHeritagePreserved, SeverityInfo, OutcomeSuccess,
		ResourceHeritage, owner, CategoryPreservation, nil,
		"owner", owner,
		"heritage_type", heritageType,
		"credit_cost", creditCost,
		"trees_funded", treesFunded,
	)
}

// ──────────────────────────────────────────────────
// Planting lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlantingSubmitted implements plugin.OnPlantingSubmitted.
func (e *Extension) OnPlantingSubmitted(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPlantingSubmitted, SeverityInfo, OutcomeSuccess,
		ResourcePlanting, "", CategoryPlanting, nil,
		"event", "planting_submitted",
	)
}

// OnPlantingVerified implements plugin.OnPlantingVerified.
func (e *Extension) OnPlantingVerified(ctx context.Context, _ interface{}, payment uint64) error {
	return e.record(ctx, ActionPlantingVerified, SeverityInfo, OutcomeSuccess,
		ResourcePlanting, "", CategoryPlanting, nil,
		"event", "planting_verified",
		"payment", payment,
	)
}

// OnPlanterVerified implements plugin.OnPlanterVerified.
func (e *Extension) OnPlanterVerified(ctx context.Context, planterOwner string) error {
	return e.record(ctx, ActionPlanterVerified, SeverityInfo, OutcomeSuccess,
		ResourcePlanter, planterOwner, CategoryPlanting, nil,
		"planter", planterOwner,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
