package store

import (
	"context"

	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/pool"
)

// Store is the unified storage interface for all Pyebwa entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
//
// Drivers stand in for the external ledger runtime's durable per-entity
// storage: deterministic addressing by (entity kind, owner identity, and for
// evidence records owner + sequence), with creation rejecting duplicates.
type Store interface {
	// Pool methods
	CreatePool(ctx context.Context, p *pool.Pool) error
	GetPool(ctx context.Context) (*pool.Pool, error)
	UpdatePool(ctx context.Context, p *pool.Pool) error

	// Participant methods
	CreateParticipant(ctx context.Context, p *participant.Participant) error
	GetParticipant(ctx context.Context, owner string) (*participant.Participant, error)
	UpdateParticipant(ctx context.Context, p *participant.Participant) error
	ListParticipants(ctx context.Context, opts participant.ListOpts) ([]*participant.Participant, error)

	// Planter methods
	CreatePlanter(ctx context.Context, p *planter.Planter) error
	GetPlanter(ctx context.Context, owner string) (*planter.Planter, error)
	UpdatePlanter(ctx context.Context, p *planter.Planter) error
	ListPlanters(ctx context.Context, opts planter.ListOpts) ([]*planter.Planter, error)

	// Evidence methods
	CreateEvidence(ctx context.Context, r *evidence.Record) error
	GetEvidence(ctx context.Context, planterOwner string, sequence uint32) (*evidence.Record, error)
	UpdateEvidence(ctx context.Context, r *evidence.Record) error
	ListEvidenceByPlanter(ctx context.Context, planterOwner string, opts evidence.ListOpts) ([]*evidence.Record, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
