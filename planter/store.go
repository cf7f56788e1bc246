package planter

import "context"

// Store is the persistence interface for planter accounts,
// keyed by owner identity.
type Store interface {
	Create(ctx context.Context, p *Planter) error
	Get(ctx context.Context, owner string) (*Planter, error)
	Update(ctx context.Context, p *Planter) error
	List(ctx context.Context, opts ListOpts) ([]*Planter, error)
}

// ListOpts controls planter listing.
type ListOpts struct {
	VerifiedOnly bool
	Limit        int
	Offset       int
}
