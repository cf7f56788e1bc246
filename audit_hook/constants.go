package audithook

// Action constants for audit events.
const (
	// Pool actions
	ActionPoolInitialized = "pool.initialized"
	ActionPriceStepped    = "pool.price_stepped"

	// Purchase actions
	ActionCreditsPurchased = "credits.purchased"

	// Heritage actions
	ActionHeritagePreserved = "heritage.preserved"

	// Planting actions
	ActionPlantingSubmitted = "planting.submitted"
	ActionPlantingVerified  = "planting.verified"
	ActionPlanterVerified   = "planter.verified"
)

// Resource constants for audit events.
const (
	ResourcePool     = "pool"
	ResourceCredits  = "credits"
	ResourceHeritage = "heritage"
	ResourcePlanting = "planting"
	ResourcePlanter  = "planter"
)

// Category constants for audit events.
const (
	CategoryPool         = "pool"
	CategoryPurchase     = "purchase"
	CategoryPreservation = "preservation"
	CategoryPlanting     = "planting"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
