package pool

import "context"

// Store is the persistence interface for the pool singleton.
type Store interface {
	Create(ctx context.Context, p *Pool) error
	Get(ctx context.Context) (*Pool, error)
	Update(ctx context.Context, p *Pool) error
}
