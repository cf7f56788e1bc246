package evidence

import (
	"time"

	"github.com/pyebwa/pyebwa/id"
	"github.com/pyebwa/pyebwa/types"
)

// MaxHashLen is the longest accepted content-address (IPFS hash) string.
const MaxHashLen = 64

// Tree count bounds for a single submission.
const (
	MinTreeCount uint16 = 1
	MaxTreeCount uint16 = 1000
)

// Accepted planting region (Haiti), inclusive on all edges.
const (
	MinLat = 18.0
	MaxLat = 20.1
	MinLon = -74.5
	MaxLon = -71.6
)

// InBounds reports whether the coordinates lie within the accepted region.
func InBounds(lat, lon float64) bool {
	return lat >= MinLat && lat <= MaxLat && lon >= MinLon && lon <= MaxLon
}

// Record is one planting submission. Records are keyed by
// (planter owner, sequence) where the sequence is the planter's running
// trees-planted total at submission time. A record moves from submitted to
// verified exactly once and is never deleted.
type Record struct {
	types.Entity
	ID              id.EvidenceID `json:"id"`
	Planter         string        `json:"planter"`
	Sequence        uint32        `json:"sequence"`
	TreeCount       uint16        `json:"tree_count"`
	GPSLat          float64       `json:"gps_lat"`
	GPSLon          float64       `json:"gps_lon"`
	EvidenceHash    string        `json:"evidence_hash"`
	SubmittedAt     time.Time     `json:"submitted_at"`
	Verified        bool          `json:"verified"`
	VerifiedBy      string        `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time    `json:"verified_at,omitempty"`
	PaymentReleased bool          `json:"payment_released"`
}

// DeriveSequence reconstructs the sequence key of the most recently
// submitted record from the planter's running total and that record's
// tree count. This reproduces the original addressing scheme and is only
// unambiguous when records are verified in submission order; callers with
// out-of-order verification should track explicit sequences instead.
func DeriveSequence(treesPlanted uint32, treeCount uint16) (uint32, bool) {
	if uint32(treeCount) > treesPlanted {
		return 0, false
	}
	return treesPlanted - uint32(treeCount), true
}

// Clone returns a deep copy for staged mutation.
func (r *Record) Clone() *Record {
	cp := *r
	if r.VerifiedAt != nil {
		t := *r.VerifiedAt
		cp.VerifiedAt = &t
	}
	return &cp
}
