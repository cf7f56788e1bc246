// Package observability provides a metrics extension for Pyebwa that records
// lifecycle event counts via a pluggable MetricFactory.
package observability

import (
	"context"

	"github.com/pyebwa/pyebwa/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnInit              = (*MetricsExtension)(nil)
	_ plugin.OnPoolInitialized   = (*MetricsExtension)(nil)
	_ plugin.OnCreditsPurchased  = (*MetricsExtension)(nil)
	_ plugin.OnPriceStepped      = (*MetricsExtension)(nil)
	_ plugin.OnHeritagePreserved = (*MetricsExtension)(nil)
	_ plugin.OnPlantingSubmitted = (*MetricsExtension)(nil)
	_ plugin.OnPlantingVerified  = (*MetricsExtension)(nil)
	_ plugin.OnPlanterVerified   = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Pyebwa plugin to automatically track credit activity.
type MetricsExtension struct {
	factory MetricFactory

	// Pool metrics
	PoolInitialized Counter
	PriceSteps      Counter
	CreditPrice     Histogram

	// Purchase metrics
	Purchases      Counter
	PurchaseAmount Histogram
	PurchaseCost   Histogram

	// Heritage metrics
	Preservations   Counter
	PreservationFee Histogram
	TreesFunded     Counter

	// Planting metrics
	Submissions        Counter
	Verifications      Counter
	PlantersVerified   Counter
	VerificationPayout Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Pool metrics
		PoolInitialized: factory.Counter("pyebwa.pool.initialized"),
		PriceSteps:      factory.Counter("pyebwa.pool.price.steps"),
		CreditPrice:     factory.Histogram("pyebwa.pool.price.current"),

		// Purchase metrics
		Purchases:      factory.Counter("pyebwa.purchase.count"),
		PurchaseAmount: factory.Histogram("pyebwa.purchase.amount"),
		PurchaseCost:   factory.Histogram("pyebwa.purchase.cost"),

		// Heritage metrics
		Preservations:   factory.Counter("pyebwa.heritage.preserved"),
		PreservationFee: factory.Histogram("pyebwa.heritage.credit_cost"),
		TreesFunded:     factory.Counter("pyebwa.heritage.trees_funded"),

		// Planting metrics
		Submissions:        factory.Counter("pyebwa.planting.submitted"),
		Verifications:      factory.Counter("pyebwa.planting.verified"),
		PlantersVerified:   factory.Counter("pyebwa.planter.verified"),
		VerificationPayout: factory.Histogram("pyebwa.planting.payout"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// OnPoolInitialized implements plugin.OnPoolInitialized.
func (m *MetricsExtension) OnPoolInitialized(_ context.Context, _ interface{}) error {
	m.PoolInitialized.Inc()
	return nil
}

// OnCreditsPurchased implements plugin.OnCreditsPurchased.
func (m *MetricsExtension) OnCreditsPurchased(_ context.Context, _ string, amount, cost uint64) error {
	m.Purchases.Inc()
	m.PurchaseAmount.Observe(float64(amount))
	m.PurchaseCost.Observe(float64(cost))
	return nil
}

// OnPriceStepped implements plugin.OnPriceStepped.
func (m *MetricsExtension) OnPriceStepped(_ context.Context, _, newPrice, _ uint64) error {
	m.PriceSteps.Inc()
	m.CreditPrice.Observe(float64(newPrice))
	return nil
}

// OnHeritagePreserved implements plugin.OnHeritagePreserved.
func (m *MetricsExtension) OnHeritagePreserved(_ context.Context, _, _ string, creditCost, treesFunded uint64) error {
	m.Preservations.Inc()
	m.PreservationFee.Observe(float64(creditCost))
	m.TreesFunded.Add(float64(treesFunded))
	return nil
}

// OnPlantingSubmitted implements plugin.OnPlantingSubmitted.
func (m *MetricsExtension) OnPlantingSubmitted(_ context.Context, _ interface{}) error {
	m.Submissions.Inc()
	return nil
}

// OnPlantingVerified implements plugin.OnPlantingVerified.
func (m *MetricsExtension) OnPlantingVerified(_ context.Context, _ interface{}, payment uint64) error {
	m.Verifications.Inc()
	m.VerificationPayout.Observe(float64(payment))
	return nil
}

// OnPlanterVerified implements plugin.OnPlanterVerified.
func (m *MetricsExtension) OnPlanterVerified(_ context.Context, _ string) error {
	m.PlantersVerified.Inc()
	return nil
}
