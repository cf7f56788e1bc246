package planter

import (
	"github.com/pyebwa/pyebwa/id"
	"github.com/pyebwa/pyebwa/types"
)

// MaxReputation is the ceiling for a planter's reputation score.
const MaxReputation uint16 = 1000

// ReputationPerVerification is the score awarded per verified submission.
const ReputationPerVerification uint16 = 10

// Planter is a field-agent account: verification status, cumulative
// planting statistics, earnings, and reputation. One per owner identity,
// created lazily on first submission.
//
// A planter is created unverified and cannot record evidence until an
// authority marks it verified. GPSLat/GPSLon hold the first-submission
// location and are advisory only.
type Planter struct {
	types.Entity
	ID              id.PlanterID `json:"id"`
	Owner           string       `json:"owner"`
	Verified        bool         `json:"verified"`
	TreesPlanted    uint32       `json:"trees_planted"`
	TreesVerified   uint32       `json:"trees_verified"`
	Earnings        uint64       `json:"earnings"`
	ReputationScore uint16       `json:"reputation_score"`
	GPSLat          float64      `json:"gps_lat"`
	GPSLon          float64      `json:"gps_lon"`
}

// AwardReputation bumps the reputation score, clamped to MaxReputation.
func (p *Planter) AwardReputation() {
	p.ReputationScore = types.SatAddU16(p.ReputationScore, ReputationPerVerification, MaxReputation)
}

// Clone returns a deep copy for staged mutation.
func (p *Planter) Clone() *Planter {
	cp := *p
	return &cp
}
