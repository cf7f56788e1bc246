package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/id"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/pool"
	"github.com/pyebwa/pyebwa/types"
)

// poolSingleton is the fixed _id of the single pool document.
const poolSingleton = "pool"

// ==================== Pool models ====================

type poolModel struct {
	grove.BaseModel `grove:"table:pyebwa_pool"`

	Singleton         string    `grove:"singleton,pk"      bson:"_id"`
	ID                string    `grove:"id"                 bson:"id"`
	Authority         string    `grove:"authority"          bson:"authority"`
	TotalSupply       uint64    `grove:"total_supply"       bson:"total_supply"`
	TreesFunded       uint64    `grove:"trees_funded"       bson:"trees_funded"`
	HeritagePreserved uint64    `grove:"heritage_preserved" bson:"heritage_preserved"`
	CreditPrice       uint64    `grove:"credit_price"       bson:"credit_price"`
	TreeFundRate      uint16    `grove:"tree_fund_rate"     bson:"tree_fund_rate"`
	TreePaymentRate   uint64    `grove:"tree_payment_rate"  bson:"tree_payment_rate"`
	CreatedAt         time.Time `grove:"created_at"         bson:"created_at"`
	UpdatedAt         time.Time `grove:"updated_at"         bson:"updated_at"`
}

func toPoolModel(p *pool.Pool) *poolModel {
	return &poolModel{
		Singleton:         poolSingleton,
		ID:                p.ID.String(),
		Authority:         p.Authority,
		TotalSupply:       p.TotalSupply,
		TreesFunded:       p.TreesFunded,
		HeritagePreserved: p.HeritagePreserved,
		CreditPrice:       p.CreditPrice,
		TreeFundRate:      uint16(p.TreeFundRate),
		TreePaymentRate:   p.TreePaymentRate,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func fromPoolModel(m *poolModel) (*pool.Pool, error) {
	poolID, err := id.ParsePoolID(m.ID)
	if err != nil {
		return nil, err
	}

	return &pool.Pool{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:                poolID,
		Authority:         m.Authority,
		TotalSupply:       m.TotalSupply,
		TreesFunded:       m.TreesFunded,
		HeritagePreserved: m.HeritagePreserved,
		CreditPrice:       m.CreditPrice,
		TreeFundRate:      types.BasisPoints(m.TreeFundRate),
		TreePaymentRate:   m.TreePaymentRate,
	}, nil
}

// ==================== Participant models ====================

type participantModel struct {
	grove.BaseModel `grove:"table:pyebwa_participants"`

	Owner         string    `grove:"owner,pk"       bson:"_id"`
	ID            string    `grove:"id"             bson:"id"`
	CreditBalance uint64    `grove:"credit_balance" bson:"credit_balance"`
	HeritageItems uint32    `grove:"heritage_items" bson:"heritage_items"`
	TreesFunded   uint32    `grove:"trees_funded"   bson:"trees_funded"`
	TotalSpent    uint64    `grove:"total_spent"    bson:"total_spent"`
	CreatedAt     time.Time `grove:"created_at"     bson:"created_at"`
	UpdatedAt     time.Time `grove:"updated_at"     bson:"updated_at"`
}

func toParticipantModel(p *participant.Participant) *participantModel {
	return &participantModel{
		Owner:         p.Owner,
		ID:            p.ID.String(),
		CreditBalance: p.CreditBalance,
		HeritageItems: p.HeritageItems,
		TreesFunded:   p.TreesFunded,
		TotalSpent:    p.TotalSpent,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromParticipantModel(m *participantModel) (*participant.Participant, error) {
	pid, err := id.ParseParticipantID(m.ID)
	if err != nil {
		return nil, err
	}

	return &participant.Participant{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:            pid,
		Owner:         m.Owner,
		CreditBalance: m.CreditBalance,
		HeritageItems: m.HeritageItems,
		TreesFunded:   m.TreesFunded,
		TotalSpent:    m.TotalSpent,
	}, nil
}

// ==================== Planter models ====================

type planterModel struct {
	grove.BaseModel `grove:"table:pyebwa_planters"`

	Owner           string    `grove:"owner,pk"         bson:"_id"`
	ID              string    `grove:"id"               bson:"id"`
	Verified        bool      `grove:"verified"         bson:"verified"`
	TreesPlanted    uint32    `grove:"trees_planted"    bson:"trees_planted"`
	TreesVerified   uint32    `grove:"trees_verified"   bson:"trees_verified"`
	Earnings        uint64    `grove:"earnings"         bson:"earnings"`
	ReputationScore uint16    `grove:"reputation_score" bson:"reputation_score"`
	GPSLat          float64   `grove:"gps_lat"          bson:"gps_lat"`
	GPSLon          float64   `grove:"gps_lon"          bson:"gps_lon"`
	CreatedAt       time.Time `grove:"created_at"       bson:"created_at"`
	UpdatedAt       time.Time `grove:"updated_at"       bson:"updated_at"`
}

func toPlanterModel(p *planter.Planter) *planterModel {
	return &planterModel{
		Owner:           p.Owner,
		ID:              p.ID.String(),
		Verified:        p.Verified,
		TreesPlanted:    p.TreesPlanted,
		TreesVerified:   p.TreesVerified,
		Earnings:        p.Earnings,
		ReputationScore: p.ReputationScore,
		GPSLat:          p.GPSLat,
		GPSLon:          p.GPSLon,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func fromPlanterModel(m *planterModel) (*planter.Planter, error) {
	pid, err := id.ParsePlanterID(m.ID)
	if err != nil {
		return nil, err
	}

	return &planter.Planter{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:              pid,
		Owner:           m.Owner,
		Verified:        m.Verified,
		TreesPlanted:    m.TreesPlanted,
		TreesVerified:   m.TreesVerified,
		Earnings:        m.Earnings,
		ReputationScore: m.ReputationScore,
		GPSLat:          m.GPSLat,
		GPSLon:          m.GPSLon,
	}, nil
}

// ==================== Evidence models ====================

type evidenceModel struct {
	grove.BaseModel `grove:"table:pyebwa_evidence"`

	ID              string     `grove:"id,pk"            bson:"_id"`
	Planter         string     `grove:"planter"          bson:"planter"`
	Sequence        uint32     `grove:"sequence"         bson:"sequence"`
	TreeCount       uint16     `grove:"tree_count"       bson:"tree_count"`
	GPSLat          float64    `grove:"gps_lat"          bson:"gps_lat"`
	GPSLon          float64    `grove:"gps_lon"          bson:"gps_lon"`
	EvidenceHash    string     `grove:"evidence_hash"    bson:"evidence_hash"`
	SubmittedAt     time.Time  `grove:"submitted_at"     bson:"submitted_at"`
	Verified        bool       `grove:"verified"         bson:"verified"`
	VerifiedBy      string     `grove:"verified_by"      bson:"verified_by"`
	VerifiedAt      *time.Time `grove:"verified_at"      bson:"verified_at,omitempty"`
	PaymentReleased bool       `grove:"payment_released" bson:"payment_released"`
	CreatedAt       time.Time  `grove:"created_at"       bson:"created_at"`
	UpdatedAt       time.Time  `grove:"updated_at"       bson:"updated_at"`
}

func toEvidenceModel(r *evidence.Record) *evidenceModel {
	return &evidenceModel{
		ID:              r.ID.String(),
		Planter:         r.Planter,
		Sequence:        r.Sequence,
		TreeCount:       r.TreeCount,
		GPSLat:          r.GPSLat,
		GPSLon:          r.GPSLon,
		EvidenceHash:    r.EvidenceHash,
		SubmittedAt:     r.SubmittedAt,
		Verified:        r.Verified,
		VerifiedBy:      r.VerifiedBy,
		VerifiedAt:      r.VerifiedAt,
		PaymentReleased: r.PaymentReleased,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func fromEvidenceModel(m *evidenceModel) (*evidence.Record, error) {
	eid, err := id.ParseEvidenceID(m.ID)
	if err != nil {
		return nil, err
	}

	return &evidence.Record{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:              eid,
		Planter:         m.Planter,
		Sequence:        m.Sequence,
		TreeCount:       m.TreeCount,
		GPSLat:          m.GPSLat,
		GPSLon:          m.GPSLon,
		EvidenceHash:    m.EvidenceHash,
		SubmittedAt:     m.SubmittedAt,
		Verified:        m.Verified,
		VerifiedBy:      m.VerifiedBy,
		VerifiedAt:      m.VerifiedAt,
		PaymentReleased: m.PaymentReleased,
	}, nil
}
