package pool

import (
	"github.com/pyebwa/pyebwa/id"
	"github.com/pyebwa/pyebwa/types"
)

// PriceStepInterval is the supply boundary at which the credit price steps.
// Each time TotalSupply lands exactly on a multiple of this value, the price
// increases by 0.01% (x10001/10000, integer truncation).
const PriceStepInterval uint64 = 1_000_000

// Pool is the global credit pool: supply, pricing, and aggregate program
// statistics. There is exactly one Pool per deployment; the store enforces
// singleton semantics on creation.
type Pool struct {
	types.Entity
	ID                id.PoolID         `json:"id"`
	Authority         string            `json:"authority"`
	TotalSupply       uint64            `json:"total_supply"`
	TreesFunded       uint64            `json:"trees_funded"`
	HeritagePreserved uint64            `json:"heritage_preserved"`
	CreditPrice       uint64            `json:"credit_price"`
	TreeFundRate      types.BasisPoints `json:"tree_fund_rate"`
	TreePaymentRate   uint64            `json:"tree_payment_rate"`
}

// NextPrice returns the stepped credit price: price * 10001 / 10000 with
// integer truncation. The multiply is checked; at small prices the step
// truncates to no visible change (100 -> 100).
func NextPrice(price uint64) (uint64, bool) {
	stepped, ok := types.MulU64(price, 10001)
	if !ok {
		return 0, false
	}
	return stepped / 10000, true
}

// AtPriceStep reports whether the supply sits exactly on a step boundary.
// A purchase that straddles a boundary without landing on it does not step.
func AtPriceStep(totalSupply uint64) bool {
	return totalSupply%PriceStepInterval == 0
}

// Clone returns a deep copy. Handlers mutate clones and persist only after
// every fallible step has passed, so a failed operation leaves the stored
// entity untouched.
func (p *Pool) Clone() *Pool {
	cp := *p
	return &cp
}
