package pyebwa

import "context"

// Treasury moves native currency between accounts. It is the external
// settlement collaborator: PurchaseCredits calls it exactly once,
// synchronously, and a failure aborts the whole operation before any
// entity is persisted.
type Treasury interface {
	Transfer(ctx context.Context, from, to string, amount uint64) error
}

// TreasuryFunc is an adapter to use a plain function as a Treasury.
type TreasuryFunc func(ctx context.Context, from, to string, amount uint64) error

// Transfer implements Treasury.
func (f TreasuryFunc) Transfer(ctx context.Context, from, to string, amount uint64) error {
	return f(ctx, from, to, amount)
}

// nopTreasury records nothing; the default when no Treasury is wired.
type nopTreasury struct{}

func (nopTreasury) Transfer(context.Context, string, string, uint64) error { return nil }
