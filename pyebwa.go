package pyebwa

import (
	"context"
	"log/slog"
	"time"

	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/plugin"
	"github.com/pyebwa/pyebwa/pool"
	"github.com/pyebwa/pyebwa/store"
)

// Ledger is the restoration-credit accounting engine.
//
// Each operation executes as a single atomic step: preconditions and checked
// arithmetic are evaluated on staged copies of the entities, and nothing is
// persisted until every fallible step has passed. The one deliberate
// exception is SubmitPlanting, which persists a newly created planter
// account before the verification gate.
type Ledger struct {
	store    store.Store
	treasury Treasury
	plugins  *plugin.Registry
	logger   *slog.Logger
	clock    func() time.Time
}

// New creates a new Ledger instance.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    s,
		treasury: nopTreasury{},
		plugins:  plugin.NewRegistry(),
		logger:   slog.Default(),
		clock:    func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithTreasury sets the native-currency settlement collaborator used by
// PurchaseCredits. Defaults to a no-op.
func WithTreasury(t Treasury) Option {
	return func(l *Ledger) {
		l.treasury = t
	}
}

// WithClock sets the external time source. Defaults to time.Now in UTC.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)
	l.logger.Info("pyebwa ledger started")

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	l.plugins.EmitShutdown(context.Background())

	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Read operations
// ──────────────────────────────────────────────────

// Pool retrieves the pool singleton.
func (l *Ledger) Pool(ctx context.Context) (*pool.Pool, error) {
	return l.store.GetPool(ctx)
}

// Participant retrieves a participant account by owner identity.
func (l *Ledger) Participant(ctx context.Context, owner string) (*participant.Participant, error) {
	return l.store.GetParticipant(ctx, owner)
}

// Planter retrieves a planter account by owner identity.
func (l *Ledger) Planter(ctx context.Context, owner string) (*planter.Planter, error) {
	return l.store.GetPlanter(ctx, owner)
}

// Evidence retrieves a planting evidence record by planter and sequence.
func (l *Ledger) Evidence(ctx context.Context, planterOwner string, sequence uint32) (*evidence.Record, error) {
	return l.store.GetEvidence(ctx, planterOwner, sequence)
}

// ListEvidence lists a planter's evidence records.
func (l *Ledger) ListEvidence(ctx context.Context, planterOwner string, opts evidence.ListOpts) ([]*evidence.Record, error) {
	return l.store.ListEvidenceByPlanter(ctx, planterOwner, opts)
}

// ListPlanters lists planter accounts.
func (l *Ledger) ListPlanters(ctx context.Context, opts planter.ListOpts) ([]*planter.Planter, error) {
	return l.store.ListPlanters(ctx, opts)
}

// ListParticipants lists participant accounts.
func (l *Ledger) ListParticipants(ctx context.Context, opts participant.ListOpts) ([]*participant.Participant, error) {
	return l.store.ListParticipants(ctx, opts)
}
