package evidence

import "context"

// Store is the persistence interface for planting evidence records,
// keyed by (planter owner, sequence).
type Store interface {
	Create(ctx context.Context, r *Record) error
	Get(ctx context.Context, planterOwner string, sequence uint32) (*Record, error)
	Update(ctx context.Context, r *Record) error
	ListByPlanter(ctx context.Context, planterOwner string, opts ListOpts) ([]*Record, error)
}

// ListOpts controls evidence listing.
type ListOpts struct {
	UnverifiedOnly bool
	Limit          int
	Offset         int
}
