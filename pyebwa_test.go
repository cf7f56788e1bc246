package pyebwa_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	pyebwa "github.com/pyebwa/pyebwa"
	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/store/memory"
)

// recordingTreasury captures transfers for assertions.
type recordingTreasury struct {
	transfers []transfer
}

type transfer struct {
	from, to string
	amount   uint64
}

func (r *recordingTreasury) Transfer(_ context.Context, from, to string, amount uint64) error {
	r.transfers = append(r.transfers, transfer{from, to, amount})
	return nil
}

// failingTreasury rejects every transfer.
type failingTreasury struct{}

func (failingTreasury) Transfer(context.Context, string, string, uint64) error {
	return errors.New("settlement declined")
}

var testClock = func() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newLedger(t *testing.T, opts ...pyebwa.Option) (*pyebwa.Ledger, *memory.Store) {
	t.Helper()

	s := memory.New()
	opts = append([]pyebwa.Option{pyebwa.WithClock(testClock)}, opts...)
	l := pyebwa.New(s, opts...)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return l, s
}

func initPool(t *testing.T, l *pyebwa.Ledger) {
	t.Helper()

	_, err := l.Initialize(context.Background(), "authority", pyebwa.InitializeParams{
		CreditPrice:     100,
		TreeFundRate:    1000, // 10%
		TreePaymentRate: 200,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
}

// verifiedPlanter registers and verifies a planter so submissions succeed.
// The first submission creates the account and is rejected by the gate.
func verifiedPlanter(t *testing.T, l *pyebwa.Ledger, owner string) {
	t.Helper()
	ctx := context.Background()

	_, err := l.SubmitPlanting(ctx, owner, 1, 19.0, -72.0, "bootstrap")
	if !errors.Is(err, pyebwa.ErrPlanterNotVerified) {
		t.Fatalf("bootstrap submission: got %v, want ErrPlanterNotVerified", err)
	}
	if err := l.VerifyPlanter(ctx, "authority", owner); err != nil {
		t.Fatalf("VerifyPlanter: %v", err)
	}
}

// ──────────────────────────────────────────────────
// Initialize
// ──────────────────────────────────────────────────

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	p, err := l.Initialize(ctx, "authority", pyebwa.InitializeParams{
		CreditPrice:     100,
		TreeFundRate:    1000,
		TreePaymentRate: 200,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if p.Authority != "authority" {
		t.Errorf("authority: got %q", p.Authority)
	}
	if p.TotalSupply != 0 || p.TreesFunded != 0 || p.HeritagePreserved != 0 {
		t.Errorf("counters should start at zero: %+v", p)
	}
	if p.ID.IsNil() {
		t.Error("pool ID should be assigned")
	}

	_, err = l.Initialize(ctx, "other", pyebwa.InitializeParams{
		CreditPrice:     50,
		TreeFundRate:    500,
		TreePaymentRate: 100,
	})
	if !errors.Is(err, pyebwa.ErrPoolExists) {
		t.Fatalf("re-initialize: got %v, want ErrPoolExists", err)
	}

	// The original pool is untouched by the failed re-init.
	got, err := l.Pool(ctx)
	if err != nil {
		t.Fatalf("Pool: %v", err)
	}
	if got.Authority != "authority" || got.CreditPrice != 100 {
		t.Errorf("pool changed by failed re-init: %+v", got)
	}
}

func TestInitializeValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		authority string
		params    pyebwa.InitializeParams
	}{
		{"empty authority", "", pyebwa.InitializeParams{CreditPrice: 100, TreeFundRate: 1000, TreePaymentRate: 200}},
		{"zero price", "auth", pyebwa.InitializeParams{TreeFundRate: 1000, TreePaymentRate: 200}},
		{"rate over 100%", "auth", pyebwa.InitializeParams{CreditPrice: 100, TreeFundRate: 10001, TreePaymentRate: 200}},
		{"zero payment rate", "auth", pyebwa.InitializeParams{CreditPrice: 100, TreeFundRate: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLedger(t)
			_, err := l.Initialize(ctx, tt.authority, tt.params)

			var verr pyebwa.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
		})
	}
}

// ──────────────────────────────────────────────────
// PurchaseCredits
// ──────────────────────────────────────────────────

func TestPurchaseCredits(t *testing.T) {
	ctx := context.Background()
	treasury := &recordingTreasury{}
	l, _ := newLedger(t, pyebwa.WithTreasury(treasury))
	initPool(t, l)

	receipt, err := l.PurchaseCredits(ctx, "alice", 1_000)
	if err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}
	if receipt.Cost != 100_000 {
		t.Errorf("cost: got %d, want 100000", receipt.Cost)
	}

	fam, err := l.Participant(ctx, "alice")
	if err != nil {
		t.Fatalf("Participant: %v", err)
	}
	if fam.CreditBalance != 1_000 {
		t.Errorf("balance: got %d, want 1000", fam.CreditBalance)
	}

	p, _ := l.Pool(ctx)
	if p.TotalSupply != 1_000 {
		t.Errorf("supply: got %d, want 1000", p.TotalSupply)
	}
	if p.CreditPrice != 100 {
		t.Errorf("price should not step off-boundary: got %d", p.CreditPrice)
	}

	if len(treasury.transfers) != 1 {
		t.Fatalf("transfers: got %d, want 1", len(treasury.transfers))
	}
	tr := treasury.transfers[0]
	if tr.from != "alice" || tr.amount != 100_000 {
		t.Errorf("transfer: %+v", tr)
	}
}

func TestPurchaseCreditsAccumulates(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	for range 3 {
		if _, err := l.PurchaseCredits(ctx, "alice", 500); err != nil {
			t.Fatalf("PurchaseCredits: %v", err)
		}
	}
	if _, err := l.PurchaseCredits(ctx, "bob", 250); err != nil {
		t.Fatalf("PurchaseCredits bob: %v", err)
	}

	alice, _ := l.Participant(ctx, "alice")
	bob, _ := l.Participant(ctx, "bob")
	p, _ := l.Pool(ctx)

	if alice.CreditBalance != 1_500 {
		t.Errorf("alice balance: got %d, want 1500", alice.CreditBalance)
	}
	// Supply conservation: every credit in a balance was minted by a purchase.
	if p.TotalSupply != alice.CreditBalance+bob.CreditBalance {
		t.Errorf("supply %d != sum of balances %d", p.TotalSupply, alice.CreditBalance+bob.CreditBalance)
	}
}

func TestPurchaseCreditsPriceStep(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	// A price of 10000 makes the 1/10000 step visible after truncation.
	if _, err := l.Initialize(ctx, "authority", pyebwa.InitializeParams{
		CreditPrice:     10_000,
		TreeFundRate:    1000,
		TreePaymentRate: 200,
	}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// Land exactly on the boundary.
	if _, err := l.PurchaseCredits(ctx, "alice", 1_000_000); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}
	p, _ := l.Pool(ctx)
	if p.CreditPrice != 10_001 {
		t.Errorf("price after boundary: got %d, want 10001", p.CreditPrice)
	}

	// Straddle the next boundary without landing on it: no step.
	if _, err := l.PurchaseCredits(ctx, "alice", 1_000_001); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}
	p, _ = l.Pool(ctx)
	if p.CreditPrice != 10_001 {
		t.Errorf("price after straddle: got %d, want 10001", p.CreditPrice)
	}
}

func TestPurchaseCreditsSmallPriceStepTruncates(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l) // price 100

	if _, err := l.PurchaseCredits(ctx, "alice", 1_000_000); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}

	// 100 * 10001 / 10000 truncates back to 100.
	p, _ := l.Pool(ctx)
	if p.CreditPrice != 100 {
		t.Errorf("price: got %d, want 100", p.CreditPrice)
	}
}

func TestPurchaseCreditsZeroAmount(t *testing.T) {
	ctx := context.Background()
	treasury := &recordingTreasury{}
	l, _ := newLedger(t, pyebwa.WithTreasury(treasury))
	initPool(t, l)

	receipt, err := l.PurchaseCredits(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("PurchaseCredits(0): %v", err)
	}
	if receipt.Cost != 0 {
		t.Errorf("cost: got %d, want 0", receipt.Cost)
	}

	// The account exists even though nothing was bought.
	fam, err := l.Participant(ctx, "alice")
	if err != nil {
		t.Fatalf("Participant: %v", err)
	}
	if fam.CreditBalance != 0 {
		t.Errorf("balance: got %d, want 0", fam.CreditBalance)
	}
}

func TestPurchaseCreditsZeroAmountAtBoundary(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	if _, err := l.Initialize(ctx, "authority", pyebwa.InitializeParams{
		CreditPrice:     10_000,
		TreeFundRate:    1000,
		TreePaymentRate: 200,
	}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if _, err := l.PurchaseCredits(ctx, "alice", 1_000_000); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}
	p, _ := l.Pool(ctx)
	if p.CreditPrice != 10_001 {
		t.Fatalf("price after boundary: got %d, want 10001", p.CreditPrice)
	}

	// A zero purchase leaves supply on the boundary, so the step predicate
	// fires again.
	if _, err := l.PurchaseCredits(ctx, "bob", 0); err != nil {
		t.Fatalf("PurchaseCredits(0): %v", err)
	}
	p, _ = l.Pool(ctx)
	if p.CreditPrice != 10_002 {
		t.Errorf("price after zero purchase on boundary: got %d, want 10002", p.CreditPrice)
	}
}

func TestPurchaseCreditsTreasuryFailure(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, pyebwa.WithTreasury(failingTreasury{}))
	initPool(t, l)

	_, err := l.PurchaseCredits(ctx, "alice", 1_000)
	if err == nil {
		t.Fatal("expected transfer failure")
	}

	// Nothing was persisted.
	if _, err := l.Participant(ctx, "alice"); !errors.Is(err, pyebwa.ErrParticipantNotFound) {
		t.Errorf("participant created despite failed transfer: %v", err)
	}
	p, _ := l.Pool(ctx)
	if p.TotalSupply != 0 {
		t.Errorf("supply moved despite failed transfer: %d", p.TotalSupply)
	}
}

func TestPurchaseCreditsOverflow(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l) // price 100

	_, err := l.PurchaseCredits(ctx, "alice", math.MaxUint64/50)
	if !errors.Is(err, pyebwa.ErrMathOverflow) {
		t.Fatalf("got %v, want ErrMathOverflow", err)
	}
}

func TestPurchaseCreditsNoPool(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	_, err := l.PurchaseCredits(ctx, "alice", 100)
	if !errors.Is(err, pyebwa.ErrPoolNotInitialized) {
		t.Fatalf("got %v, want ErrPoolNotInitialized", err)
	}
}

// ──────────────────────────────────────────────────
// PreserveHeritage
// ──────────────────────────────────────────────────

func TestPreserveHeritage(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l) // price 100, fund rate 10%, payment rate 200

	if _, err := l.PurchaseCredits(ctx, "alice", 5_000); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}

	receipt, err := l.PreserveHeritage(ctx, "alice", "QmHash", participant.HeritagePhoto, 2_000)
	if err != nil {
		t.Fatalf("PreserveHeritage: %v", err)
	}

	// 10% of 2000 = 200 tree funding; 200 / 200 = 1 whole tree.
	if receipt.TreeFunding != 200 {
		t.Errorf("tree funding: got %d, want 200", receipt.TreeFunding)
	}
	if receipt.TreesFunded != 1 {
		t.Errorf("trees funded: got %d, want 1", receipt.TreesFunded)
	}

	fam, _ := l.Participant(ctx, "alice")
	if fam.CreditBalance != 3_000 {
		t.Errorf("balance: got %d, want 3000", fam.CreditBalance)
	}
	if fam.HeritageItems != 1 || fam.TreesFunded != 1 || fam.TotalSpent != 2_000 {
		t.Errorf("participant counters: %+v", fam)
	}

	p, _ := l.Pool(ctx)
	if p.HeritagePreserved != 1 || p.TreesFunded != 1 {
		t.Errorf("pool counters: heritage %d trees %d", p.HeritagePreserved, p.TreesFunded)
	}
}

func TestPreserveHeritageTruncatesFractionalTrees(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	if _, err := l.PurchaseCredits(ctx, "alice", 5_000); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}

	// 10% of 1999 = 199 funding, under one tree at rate 200: zero trees,
	// the remainder is dropped rather than carried forward.
	receipt, err := l.PreserveHeritage(ctx, "alice", "QmHash", participant.HeritageAudio, 1_999)
	if err != nil {
		t.Fatalf("PreserveHeritage: %v", err)
	}
	if receipt.TreeFunding != 199 {
		t.Errorf("tree funding: got %d, want 199", receipt.TreeFunding)
	}
	if receipt.TreesFunded != 0 {
		t.Errorf("trees funded: got %d, want 0", receipt.TreesFunded)
	}

	// The next spend does not inherit the dropped remainder.
	receipt, err = l.PreserveHeritage(ctx, "alice", "QmHash2", participant.HeritageAudio, 1_999)
	if err != nil {
		t.Fatalf("second PreserveHeritage: %v", err)
	}
	if receipt.TreesFunded != 0 {
		t.Errorf("second trees funded: got %d, want 0", receipt.TreesFunded)
	}
}

func TestPreserveHeritageInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	if _, err := l.PurchaseCredits(ctx, "alice", 100); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}

	_, err := l.PreserveHeritage(ctx, "alice", "QmHash", participant.HeritagePhoto, 101)
	if !errors.Is(err, pyebwa.ErrInsufficientBalance) {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}

	// Balance, counters untouched.
	fam, _ := l.Participant(ctx, "alice")
	if fam.CreditBalance != 100 || fam.HeritageItems != 0 {
		t.Errorf("state changed by failed preserve: %+v", fam)
	}
}

func TestPreserveHeritageHashTooLong(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	long := make([]byte, evidence.MaxHashLen+1)
	for i := range long {
		long[i] = 'a'
	}

	// The hash check fires before any account lookup: even an unknown
	// owner sees ErrHashTooLong, not a not-found error.
	_, err := l.PreserveHeritage(ctx, "nobody", string(long), participant.HeritagePhoto, 10)
	if !errors.Is(err, pyebwa.ErrHashTooLong) {
		t.Fatalf("got %v, want ErrHashTooLong", err)
	}
}

func TestPreserveHeritageInvalidType(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	_, err := l.PreserveHeritage(ctx, "alice", "QmHash", participant.HeritageType("hologram"), 10)
	if !errors.Is(err, pyebwa.ErrInvalidHeritageType) {
		t.Fatalf("got %v, want ErrInvalidHeritageType", err)
	}
}

func TestPreserveHeritageUnknownOwner(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	_, err := l.PreserveHeritage(ctx, "nobody", "QmHash", participant.HeritagePhoto, 10)
	if !errors.Is(err, pyebwa.ErrParticipantNotFound) {
		t.Fatalf("got %v, want ErrParticipantNotFound", err)
	}
}

// ──────────────────────────────────────────────────
// SubmitPlanting
// ──────────────────────────────────────────────────

func TestSubmitPlantingNewPlanterGate(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	_, err := l.SubmitPlanting(ctx, "jean", 25, 19.0, -72.0, "QmHash")
	if !errors.Is(err, pyebwa.ErrPlanterNotVerified) {
		t.Fatalf("got %v, want ErrPlanterNotVerified", err)
	}

	// The account was created and persisted despite the rejection.
	plt, err := l.Planter(ctx, "jean")
	if err != nil {
		t.Fatalf("Planter: %v", err)
	}
	if plt.Verified {
		t.Error("new planter should be unverified")
	}
	if plt.GPSLat != 19.0 || plt.GPSLon != -72.0 {
		t.Errorf("first-submission GPS not recorded: %v, %v", plt.GPSLat, plt.GPSLon)
	}

	// No evidence was recorded.
	recs, err := l.ListEvidence(ctx, "jean", evidence.ListOpts{})
	if err != nil {
		t.Fatalf("ListEvidence: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("evidence recorded for unverified planter: %d records", len(recs))
	}
}

func TestSubmitPlantingValidationBeforeAccountCreation(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	tests := []struct {
		name    string
		count   uint16
		lat     float64
		lon     float64
		hash    string
		wantErr error
	}{
		{"zero trees", 0, 19.0, -72.0, "h", pyebwa.ErrInvalidTreeCount},
		{"too many trees", 1001, 19.0, -72.0, "h", pyebwa.ErrInvalidTreeCount},
		{"out of bounds", 5, 40.0, -72.0, "h", pyebwa.ErrInvalidGPSCoordinates},
		{"hash too long", 5, 19.0, -72.0, string(make([]byte, 65)), pyebwa.ErrHashTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.SubmitPlanting(ctx, "ghost", tt.count, tt.lat, tt.lon, tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			// Rejected input never creates an account.
			if _, err := l.Planter(ctx, "ghost"); !errors.Is(err, pyebwa.ErrPlanterNotFound) {
				t.Errorf("account created for invalid submission: %v", err)
			}
		})
	}
}

func TestSubmitPlantingBoundaryCoordinates(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)
	verifiedPlanter(t, l, "jean")

	// Inclusive corners are accepted.
	if _, err := l.SubmitPlanting(ctx, "jean", 5, 18.0, -74.5, "h1"); err != nil {
		t.Errorf("southwest corner rejected: %v", err)
	}
	if _, err := l.SubmitPlanting(ctx, "jean", 5, 20.1, -71.6, "h2"); err != nil {
		t.Errorf("northeast corner rejected: %v", err)
	}

	// Just outside is rejected.
	if _, err := l.SubmitPlanting(ctx, "jean", 5, 17.999, -72.0, "h3"); !errors.Is(err, pyebwa.ErrInvalidGPSCoordinates) {
		t.Errorf("south of region: got %v", err)
	}
	if _, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -74.501, "h4"); !errors.Is(err, pyebwa.ErrInvalidGPSCoordinates) {
		t.Errorf("west of region: got %v", err)
	}
}

func TestSubmitPlantingSequence(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)
	verifiedPlanter(t, l, "jean")

	first, err := l.SubmitPlanting(ctx, "jean", 25, 19.0, -72.0, "QmA")
	if err != nil {
		t.Fatalf("first SubmitPlanting: %v", err)
	}
	if first.Sequence != 0 {
		t.Errorf("first sequence: got %d, want 0", first.Sequence)
	}

	second, err := l.SubmitPlanting(ctx, "jean", 100, 19.0, -72.0, "QmB")
	if err != nil {
		t.Fatalf("second SubmitPlanting: %v", err)
	}
	// Keyed by the pre-update running total.
	if second.Sequence != 25 {
		t.Errorf("second sequence: got %d, want 25", second.Sequence)
	}

	plt, _ := l.Planter(ctx, "jean")
	if plt.TreesPlanted != 125 {
		t.Errorf("trees planted: got %d, want 125", plt.TreesPlanted)
	}

	seq, ok := evidence.DeriveSequence(plt.TreesPlanted, second.TreeCount)
	if !ok || seq != second.Sequence {
		t.Errorf("DeriveSequence: got %d (%v), want %d", seq, ok, second.Sequence)
	}
}

// ──────────────────────────────────────────────────
// VerifyPlanting
// ──────────────────────────────────────────────────

func TestVerifyPlanting(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l) // payment rate 200
	verifiedPlanter(t, l, "jean")

	rec, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -72.0, "QmHash")
	if err != nil {
		t.Fatalf("SubmitPlanting: %v", err)
	}

	receipt, err := l.VerifyPlanting(ctx, "authority", "jean", rec.Sequence)
	if err != nil {
		t.Fatalf("VerifyPlanting: %v", err)
	}
	if receipt.Payment != 1_000 {
		t.Errorf("payment: got %d, want 1000", receipt.Payment)
	}

	plt, _ := l.Planter(ctx, "jean")
	if plt.TreesVerified != 5 {
		t.Errorf("trees verified: got %d, want 5", plt.TreesVerified)
	}
	if plt.Earnings != 1_000 {
		t.Errorf("earnings: got %d, want 1000", plt.Earnings)
	}
	if plt.ReputationScore != 10 {
		t.Errorf("reputation: got %d, want 10", plt.ReputationScore)
	}

	got, _ := l.Evidence(ctx, "jean", rec.Sequence)
	if !got.Verified || !got.PaymentReleased {
		t.Errorf("record flags: verified %v released %v", got.Verified, got.PaymentReleased)
	}
	if got.VerifiedBy != "authority" || got.VerifiedAt == nil {
		t.Errorf("verification metadata: by %q at %v", got.VerifiedBy, got.VerifiedAt)
	}
}

func TestVerifyPlantingAlreadyVerified(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)
	verifiedPlanter(t, l, "jean")

	rec, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -72.0, "QmHash")
	if err != nil {
		t.Fatalf("SubmitPlanting: %v", err)
	}
	if _, err := l.VerifyPlanting(ctx, "authority", "jean", rec.Sequence); err != nil {
		t.Fatalf("VerifyPlanting: %v", err)
	}

	_, err = l.VerifyPlanting(ctx, "authority", "jean", rec.Sequence)
	if !errors.Is(err, pyebwa.ErrAlreadyVerified) {
		t.Fatalf("second verify: got %v, want ErrAlreadyVerified", err)
	}

	// No double payment.
	plt, _ := l.Planter(ctx, "jean")
	if plt.TreesVerified != 5 || plt.Earnings != 1_000 || plt.ReputationScore != 10 {
		t.Errorf("counters changed by rejected re-verify: %+v", plt)
	}
}

func TestVerifyPlantingUnauthorized(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)
	verifiedPlanter(t, l, "jean")

	rec, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -72.0, "QmHash")
	if err != nil {
		t.Fatalf("SubmitPlanting: %v", err)
	}

	_, err = l.VerifyPlanting(ctx, "impostor", "jean", rec.Sequence)
	if !errors.Is(err, pyebwa.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	got, _ := l.Evidence(ctx, "jean", rec.Sequence)
	if got.Verified {
		t.Error("record verified by unauthorized caller")
	}
}

func TestVerifyPlantingMissingRecord(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	_, err := l.VerifyPlanting(ctx, "authority", "jean", 42)
	if !errors.Is(err, pyebwa.ErrEvidenceNotFound) {
		t.Fatalf("got %v, want ErrEvidenceNotFound", err)
	}
}

func TestVerifyPlantingReputationClamp(t *testing.T) {
	ctx := context.Background()
	l, s := newLedger(t)
	initPool(t, l)
	verifiedPlanter(t, l, "jean")

	// Push the score to just under the cap, then verify twice.
	plt, err := s.GetPlanter(ctx, "jean")
	if err != nil {
		t.Fatalf("GetPlanter: %v", err)
	}
	plt.ReputationScore = 995
	if err := s.UpdatePlanter(ctx, plt); err != nil {
		t.Fatalf("UpdatePlanter: %v", err)
	}

	rec1, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -72.0, "QmA")
	if err != nil {
		t.Fatalf("SubmitPlanting: %v", err)
	}
	rec2, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -72.0, "QmB")
	if err != nil {
		t.Fatalf("SubmitPlanting: %v", err)
	}

	if _, err := l.VerifyPlanting(ctx, "authority", "jean", rec1.Sequence); err != nil {
		t.Fatalf("VerifyPlanting: %v", err)
	}
	got, _ := l.Planter(ctx, "jean")
	if got.ReputationScore != planter.MaxReputation {
		t.Errorf("reputation: got %d, want %d", got.ReputationScore, planter.MaxReputation)
	}

	if _, err := l.VerifyPlanting(ctx, "authority", "jean", rec2.Sequence); err != nil {
		t.Fatalf("VerifyPlanting: %v", err)
	}
	got, _ = l.Planter(ctx, "jean")
	if got.ReputationScore != planter.MaxReputation {
		t.Errorf("reputation past cap: got %d, want %d", got.ReputationScore, planter.MaxReputation)
	}
}

// ──────────────────────────────────────────────────
// VerifyPlanter
// ──────────────────────────────────────────────────

func TestVerifyPlanter(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	initPool(t, l)

	// Register the account via a gated submission.
	_, _ = l.SubmitPlanting(ctx, "jean", 1, 19.0, -72.0, "h")

	if err := l.VerifyPlanter(ctx, "impostor", "jean"); !errors.Is(err, pyebwa.ErrUnauthorized) {
		t.Fatalf("impostor verify: got %v, want ErrUnauthorized", err)
	}

	if err := l.VerifyPlanter(ctx, "authority", "jean"); err != nil {
		t.Fatalf("VerifyPlanter: %v", err)
	}
	plt, _ := l.Planter(ctx, "jean")
	if !plt.Verified {
		t.Error("planter not verified")
	}

	// Re-verifying is a no-op.
	if err := l.VerifyPlanter(ctx, "authority", "jean"); err != nil {
		t.Fatalf("repeat VerifyPlanter: %v", err)
	}

	if err := l.VerifyPlanter(ctx, "authority", "nobody"); !errors.Is(err, pyebwa.ErrPlanterNotFound) {
		t.Fatalf("verify missing: got %v, want ErrPlanterNotFound", err)
	}
}

// ──────────────────────────────────────────────────
// End-to-end
// ──────────────────────────────────────────────────

func TestFullLifecycle(t *testing.T) {
	ctx := context.Background()
	treasury := &recordingTreasury{}
	l, _ := newLedger(t, pyebwa.WithTreasury(treasury))
	initPool(t, l)

	// A family buys credits and preserves a heritage photo.
	if _, err := l.PurchaseCredits(ctx, "famille-a", 1_000_000); err != nil {
		t.Fatalf("PurchaseCredits: %v", err)
	}
	pres, err := l.PreserveHeritage(ctx, "famille-a", "QmPhoto", participant.HeritagePhoto, 2_000)
	if err != nil {
		t.Fatalf("PreserveHeritage: %v", err)
	}
	if pres.TreesFunded != 1 {
		t.Errorf("trees funded: got %d, want 1", pres.TreesFunded)
	}

	// A planter registers, gets verified, and plants.
	verifiedPlanter(t, l, "jean")
	rec, err := l.SubmitPlanting(ctx, "jean", 5, 19.0, -72.0, "QmTrees")
	if err != nil {
		t.Fatalf("SubmitPlanting: %v", err)
	}
	ver, err := l.VerifyPlanting(ctx, "authority", "jean", rec.Sequence)
	if err != nil {
		t.Fatalf("VerifyPlanting: %v", err)
	}
	if ver.Payment != 1_000 {
		t.Errorf("payment: got %d, want 1000", ver.Payment)
	}

	p, _ := l.Pool(ctx)
	if p.TotalSupply != 1_000_000 || p.HeritagePreserved != 1 || p.TreesFunded != 1 {
		t.Errorf("pool state: %+v", p)
	}

	planters, err := l.ListPlanters(ctx, planter.ListOpts{VerifiedOnly: true})
	if err != nil {
		t.Fatalf("ListPlanters: %v", err)
	}
	if len(planters) != 1 || planters[0].Owner != "jean" {
		t.Errorf("verified planters: %d", len(planters))
	}
}
