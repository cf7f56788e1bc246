// Package pyebwa provides an embeddable reforestation credit ledger for Go
// applications.
//
// Pyebwa is designed as a library, not a service. Import it directly into
// your Go application. It provides:
//
//   - A shared credit pool with supply-driven pricing
//   - Participant accounts that spend credits on heritage preservation
//   - Planter accounts that earn credits for verified tree planting
//   - GPS-bounded planting evidence with authority verification
//   - Pluggable storage (memory, SQLite, Postgres, MongoDB)
//   - Lifecycle plugins for metrics and audit trails
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/pyebwa/pyebwa"
//	    "github.com/pyebwa/pyebwa/store/memory"
//	)
//
//	l := pyebwa.New(memory.New())
//
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// The pool is a singleton holding the credit price, supply counters, and the
// basis-point rate that routes preservation fees into tree funding:
//
//	l.Initialize(ctx, authority, pyebwa.InitializeParams{
//	    CreditPrice:     100,
//	    TreeFundRate:    1000, // 10% of every preservation fee
//	    TreePaymentRate: 200,  // credits paid per verified tree
//	})
//
// Participants buy credits and spend them preserving heritage items:
//
//	receipt, err := l.PurchaseCredits(ctx, owner, 5_000)
//	_, err = l.PreserveHeritage(ctx, owner, hash, participant.HeritagePhoto, 2_000)
//
// Planters submit GPS-tagged planting evidence; the pool authority verifies
// it and releases payment:
//
//	_, err := l.SubmitPlanting(ctx, planterOwner, 25, 19.0, -72.0, hash)
//	receipt, err := l.VerifyPlanting(ctx, authority, planterOwner, seq)
//
// The credit price rises one basis point each time total supply crosses a
// million-credit boundary, so credits become gradually more expensive as the
// pool grows.
//
// All credit arithmetic is integer-only and overflow-checked; operations that
// would wrap return ErrMathOverflow instead of corrupting balances.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	pool_01h2xcejqtf2nbrexx3vqjhp41  // Pool ID
//	fam_01h2xcejqtf2nbrexx3vqjhp41   // Participant ID
//	pltr_01h455vb4pex5vsknk084sn02q  // Planter ID
//	evd_01h455vb4pex5vsknk084sn02q   // Evidence ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package pyebwa
