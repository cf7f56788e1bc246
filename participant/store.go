package participant

import "context"

// Store is the persistence interface for participant accounts,
// keyed by owner identity.
type Store interface {
	Create(ctx context.Context, p *Participant) error
	Get(ctx context.Context, owner string) (*Participant, error)
	Update(ctx context.Context, p *Participant) error
	List(ctx context.Context, opts ListOpts) ([]*Participant, error)
}

// ListOpts controls participant listing.
type ListOpts struct {
	Limit  int
	Offset int
}
