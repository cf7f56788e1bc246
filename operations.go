package pyebwa

import (
	"context"
	"fmt"
	"math"

	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/id"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/pool"
	"github.com/pyebwa/pyebwa/types"
)

// InitializeParams configures the pool singleton at creation time.
type InitializeParams struct {
	CreditPrice     uint64            `json:"credit_price"`
	TreeFundRate    types.BasisPoints `json:"tree_fund_rate"`
	TreePaymentRate uint64            `json:"tree_payment_rate"`
}

// PurchaseReceipt is the structured result of PurchaseCredits.
type PurchaseReceipt struct {
	Buyer  string `json:"buyer"`
	Amount uint64 `json:"amount"`
	Cost   uint64 `json:"cost"`
}

// PreserveReceipt is the structured result of PreserveHeritage.
type PreserveReceipt struct {
	Owner       string                   `json:"owner"`
	Type        participant.HeritageType `json:"type"`
	CreditCost  uint64                   `json:"credit_cost"`
	TreeFunding uint64                   `json:"tree_funding"`
	TreesFunded uint64                   `json:"trees_funded"`
}

// VerifyReceipt is the structured result of VerifyPlanting.
type VerifyReceipt struct {
	Planter   string `json:"planter"`
	Sequence  uint32 `json:"sequence"`
	TreeCount uint16 `json:"tree_count"`
	Payment   uint64 `json:"payment"`
}

// ──────────────────────────────────────────────────
// Initialize
// ──────────────────────────────────────────────────

// Initialize creates the pool singleton. The caller becomes the pool
// authority. Fails with ErrPoolExists if the pool was already created;
// re-initialization is a caller error, not an idempotent retry.
func (l *Ledger) Initialize(ctx context.Context, authority string, params InitializeParams) (*pool.Pool, error) {
	if authority == "" {
		return nil, ValidationError{Field: "authority", Message: "must not be empty"}
	}
	if params.CreditPrice == 0 {
		return nil, ValidationError{Field: "credit_price", Message: "must be greater than zero"}
	}
	if !params.TreeFundRate.Valid() {
		return nil, ValidationError{Field: "tree_fund_rate", Message: "must not exceed 10000 basis points"}
	}
	if params.TreePaymentRate == 0 {
		return nil, ValidationError{Field: "tree_payment_rate", Message: "must be greater than zero"}
	}

	p := &pool.Pool{
		Entity:          types.NewEntityAt(l.clock()),
		ID:              id.NewPoolID(),
		Authority:       authority,
		CreditPrice:     params.CreditPrice,
		TreeFundRate:    params.TreeFundRate,
		TreePaymentRate: params.TreePaymentRate,
	}

	if err := l.store.CreatePool(ctx, p); err != nil {
		return nil, err
	}

	l.logger.Info("pool initialized",
		"authority", authority,
		"credit_price", params.CreditPrice,
		"tree_fund_rate", uint16(params.TreeFundRate),
		"tree_payment_rate", params.TreePaymentRate,
	)
	l.plugins.EmitPoolInitialized(ctx, p)

	return p, nil
}

// ──────────────────────────────────────────────────
// Purchase Credits
// ──────────────────────────────────────────────────

// PurchaseCredits sells amount credits to the buyer at the current pool
// price, moving the cost in native currency through the Treasury. The
// buyer's participant account is created lazily on first purchase.
//
// A zero amount flows through like any other: the account is still
// created and zero currency moves. When the new total supply lands
// exactly on a million-credit boundary the price steps by x10001/10000.
func (l *Ledger) PurchaseCredits(ctx context.Context, buyer string, amount uint64) (*PurchaseReceipt, error) {
	if buyer == "" {
		return nil, ValidationError{Field: "buyer", Message: "must not be empty"}
	}

	p, err := l.store.GetPool(ctx)
	if err != nil {
		return nil, err
	}

	cost, ok := types.MulU64(amount, p.CreditPrice)
	if !ok {
		return nil, ErrMathOverflow
	}

	now := l.clock()

	fam, err := l.store.GetParticipant(ctx, buyer)
	created := false
	switch {
	case err == nil:
		fam = fam.Clone()
	case IsNotFound(err):
		fam = &participant.Participant{
			Entity: types.NewEntityAt(now),
			ID:     id.NewParticipantID(),
			Owner:  buyer,
		}
		created = true
	default:
		return nil, err
	}

	// Stage all arithmetic before the treasury call: there is no runtime
	// rollback to undo a transfer if a later step overflows.
	fam.CreditBalance, ok = types.AddU64(fam.CreditBalance, amount)
	if !ok {
		return nil, ErrMathOverflow
	}

	pp := p.Clone()
	pp.TotalSupply, ok = types.AddU64(pp.TotalSupply, amount)
	if !ok {
		return nil, ErrMathOverflow
	}

	priceBefore := pp.CreditPrice
	stepped := false
	if pool.AtPriceStep(pp.TotalSupply) {
		pp.CreditPrice, ok = pool.NextPrice(pp.CreditPrice)
		if !ok {
			return nil, ErrMathOverflow
		}
		stepped = true
	}

	if err := l.treasury.Transfer(ctx, buyer, p.ID.String(), cost); err != nil {
		return nil, fmt.Errorf("pyebwa: purchase transfer: %w", err)
	}

	if created {
		if err := l.store.CreateParticipant(ctx, fam); err != nil {
			return nil, err
		}
	} else {
		fam.Touch(now)
		if err := l.store.UpdateParticipant(ctx, fam); err != nil {
			return nil, err
		}
	}

	pp.Touch(now)
	if err := l.store.UpdatePool(ctx, pp); err != nil {
		return nil, err
	}

	l.logger.Info("purchased credits",
		"buyer", buyer,
		"amount", amount,
		"cost", cost,
	)
	l.plugins.EmitCreditsPurchased(ctx, buyer, amount, cost)
	if stepped {
		l.plugins.EmitPriceStepped(ctx, priceBefore, pp.CreditPrice, pp.TotalSupply)
	}

	return &PurchaseReceipt{Buyer: buyer, Amount: amount, Cost: cost}, nil
}

// ──────────────────────────────────────────────────
// Preserve Heritage
// ──────────────────────────────────────────────────

// PreserveHeritage spends creditCost of the participant's balance to
// preserve one heritage item, routing tree_fund_rate basis points of the
// spend into tree funding. Fractional trees truncate: funding that does
// not cover a whole tree at the current payment rate is dropped, not
// carried forward.
func (l *Ledger) PreserveHeritage(ctx context.Context, owner, evidenceHash string, heritageType participant.HeritageType, creditCost uint64) (*PreserveReceipt, error) {
	if len(evidenceHash) > evidence.MaxHashLen {
		return nil, ErrHashTooLong
	}
	if !heritageType.Valid() {
		return nil, ErrInvalidHeritageType
	}

	fam, err := l.store.GetParticipant(ctx, owner)
	if err != nil {
		return nil, err
	}

	p, err := l.store.GetPool(ctx)
	if err != nil {
		return nil, err
	}

	if fam.CreditBalance < creditCost {
		return nil, ErrInsufficientBalance
	}

	treeFunding, ok := p.TreeFundRate.ApplyTo(creditCost)
	if !ok {
		return nil, ErrMathOverflow
	}

	ff := fam.Clone()

	ff.CreditBalance, ok = types.SubU64(ff.CreditBalance, creditCost)
	if !ok {
		return nil, ErrMathOverflow
	}
	ff.HeritageItems, ok = types.AddU32(ff.HeritageItems, 1)
	if !ok {
		return nil, ErrMathOverflow
	}
	ff.TotalSpent, ok = types.AddU64(ff.TotalSpent, creditCost)
	if !ok {
		return nil, ErrMathOverflow
	}

	if p.TreePaymentRate == 0 {
		return nil, ErrMathOverflow
	}
	treesFunded := treeFunding / p.TreePaymentRate
	if treesFunded > math.MaxUint32 {
		return nil, ErrMathOverflow
	}
	ff.TreesFunded, ok = types.AddU32(ff.TreesFunded, uint32(treesFunded))
	if !ok {
		return nil, ErrMathOverflow
	}

	pp := p.Clone()
	pp.HeritagePreserved, ok = types.AddU64(pp.HeritagePreserved, 1)
	if !ok {
		return nil, ErrMathOverflow
	}
	pp.TreesFunded, ok = types.AddU64(pp.TreesFunded, treesFunded)
	if !ok {
		return nil, ErrMathOverflow
	}

	now := l.clock()
	ff.Touch(now)
	if err := l.store.UpdateParticipant(ctx, ff); err != nil {
		return nil, err
	}
	pp.Touch(now)
	if err := l.store.UpdatePool(ctx, pp); err != nil {
		return nil, err
	}

	l.logger.Info("preserved heritage",
		"owner", owner,
		"type", string(heritageType),
		"credit_cost", creditCost,
		"trees_funded", treesFunded,
	)
	l.plugins.EmitHeritagePreserved(ctx, owner, string(heritageType), creditCost, treesFunded)

	return &PreserveReceipt{
		Owner:       owner,
		Type:        heritageType,
		CreditCost:  creditCost,
		TreeFunding: treeFunding,
		TreesFunded: treesFunded,
	}, nil
}

// ──────────────────────────────────────────────────
// Submit Planting
// ──────────────────────────────────────────────────

// SubmitPlanting records planting evidence for a planter. The planter
// account is created lazily on first submission and persists even when the
// submission itself is then rejected by the verification gate: a brand-new
// planter's first call creates the account, fails with
// ErrPlanterNotVerified, and records no evidence.
func (l *Ledger) SubmitPlanting(ctx context.Context, planterOwner string, treeCount uint16, lat, lon float64, evidenceHash string) (*evidence.Record, error) {
	if treeCount < evidence.MinTreeCount || treeCount > evidence.MaxTreeCount {
		return nil, ErrInvalidTreeCount
	}
	if len(evidenceHash) > evidence.MaxHashLen {
		return nil, ErrHashTooLong
	}
	if !evidence.InBounds(lat, lon) {
		return nil, ErrInvalidGPSCoordinates
	}

	now := l.clock()

	plt, err := l.store.GetPlanter(ctx, planterOwner)
	switch {
	case err == nil:
	case IsNotFound(err):
		plt = &planter.Planter{
			Entity: types.NewEntityAt(now),
			ID:     id.NewPlanterID(),
			Owner:  planterOwner,
			GPSLat: lat,
			GPSLon: lon,
		}
		// The account is durable before the gate below: a failed first
		// submission still leaves the planter registered, unverified.
		if err := l.store.CreatePlanter(ctx, plt); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !plt.Verified {
		return nil, ErrPlanterNotVerified
	}

	pl := plt.Clone()
	var ok bool
	pl.TreesPlanted, ok = types.AddU32(pl.TreesPlanted, uint32(treeCount))
	if !ok {
		return nil, ErrMathOverflow
	}

	rec := &evidence.Record{
		Entity:       types.NewEntityAt(now),
		ID:           id.NewEvidenceID(),
		Planter:      planterOwner,
		Sequence:     plt.TreesPlanted, // pre-update running total
		TreeCount:    treeCount,
		GPSLat:       lat,
		GPSLon:       lon,
		EvidenceHash: evidenceHash,
		SubmittedAt:  now,
	}

	if err := l.store.CreateEvidence(ctx, rec); err != nil {
		return nil, err
	}

	pl.Touch(now)
	if err := l.store.UpdatePlanter(ctx, pl); err != nil {
		return nil, err
	}

	l.logger.Info("submitted planting evidence",
		"planter", planterOwner,
		"tree_count", treeCount,
		"lat", lat,
		"lon", lon,
		"sequence", rec.Sequence,
	)
	l.plugins.EmitPlantingSubmitted(ctx, rec)

	return rec, nil
}

// ──────────────────────────────────────────────────
// Verify Planting
// ──────────────────────────────────────────────────

// VerifyPlanting marks an evidence record verified and credits the planter:
// trees_verified and earnings grow by the record's worth, reputation bumps
// by 10 up to the 1000 cap, and the payment flag is set in the same step.
// Only the pool authority may verify. Re-verification fails with
// ErrAlreadyVerified and changes nothing.
//
// Records are addressed by explicit sequence; evidence.DeriveSequence
// reproduces the original running-total derivation for FIFO callers.
func (l *Ledger) VerifyPlanting(ctx context.Context, verifier, planterOwner string, sequence uint32) (*VerifyReceipt, error) {
	p, err := l.store.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	if verifier != p.Authority {
		return nil, ErrUnauthorized
	}

	rec, err := l.store.GetEvidence(ctx, planterOwner, sequence)
	if err != nil {
		return nil, err
	}
	if rec.Verified {
		return nil, ErrAlreadyVerified
	}

	plt, err := l.store.GetPlanter(ctx, rec.Planter)
	if err != nil {
		return nil, err
	}

	pl := plt.Clone()
	var ok bool
	pl.TreesVerified, ok = types.AddU32(pl.TreesVerified, uint32(rec.TreeCount))
	if !ok {
		return nil, ErrMathOverflow
	}
	if pl.TreesVerified > pl.TreesPlanted {
		return nil, fmt.Errorf("pyebwa: trees verified %d exceeds trees planted %d: %w",
			pl.TreesVerified, pl.TreesPlanted, ErrInvalidInput)
	}

	payment, ok := types.MulU64(uint64(rec.TreeCount), p.TreePaymentRate)
	if !ok {
		return nil, ErrMathOverflow
	}
	pl.Earnings, ok = types.AddU64(pl.Earnings, payment)
	if !ok {
		return nil, ErrMathOverflow
	}
	pl.AwardReputation()

	now := l.clock()
	rr := rec.Clone()
	rr.Verified = true
	rr.VerifiedBy = verifier
	rr.VerifiedAt = &now
	rr.PaymentReleased = true

	rr.Touch(now)
	if err := l.store.UpdateEvidence(ctx, rr); err != nil {
		return nil, err
	}
	pl.Touch(now)
	if err := l.store.UpdatePlanter(ctx, pl); err != nil {
		return nil, err
	}

	l.logger.Info("verified planting",
		"planter", rec.Planter,
		"sequence", sequence,
		"tree_count", rec.TreeCount,
		"payment", payment,
	)
	l.plugins.EmitPlantingVerified(ctx, rr, payment)

	return &VerifyReceipt{
		Planter:   rec.Planter,
		Sequence:  sequence,
		TreeCount: rec.TreeCount,
		Payment:   payment,
	}, nil
}

// ──────────────────────────────────────────────────
// Verify Planter
// ──────────────────────────────────────────────────

// VerifyPlanter marks a planter's identity as verified, unlocking evidence
// submission. Only the pool authority may do this. Verifying an
// already-verified planter is a no-op.
func (l *Ledger) VerifyPlanter(ctx context.Context, authority, planterOwner string) error {
	p, err := l.store.GetPool(ctx)
	if err != nil {
		return err
	}
	if authority != p.Authority {
		return ErrUnauthorized
	}

	plt, err := l.store.GetPlanter(ctx, planterOwner)
	if err != nil {
		return err
	}
	if plt.Verified {
		return nil
	}

	pl := plt.Clone()
	pl.Verified = true
	pl.Touch(l.clock())
	if err := l.store.UpdatePlanter(ctx, pl); err != nil {
		return err
	}

	l.logger.Info("verified planter", "planter", planterOwner)
	l.plugins.EmitPlanterVerified(ctx, planterOwner)

	return nil
}
