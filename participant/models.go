package participant

import (
	"github.com/pyebwa/pyebwa/id"
	"github.com/pyebwa/pyebwa/types"
)

// HeritageType classifies the media a participant preserves.
type HeritageType string

const (
	HeritagePhoto    HeritageType = "photo"
	HeritageDocument HeritageType = "document"
	HeritageAudio    HeritageType = "audio"
	HeritageVideo    HeritageType = "video"
)

// Valid reports whether the heritage type is one of the declared variants.
// Unknown values are rejected so that a future enum extension cannot slip
// through unvalidated.
func (h HeritageType) Valid() bool {
	switch h {
	case HeritagePhoto, HeritageDocument, HeritageAudio, HeritageVideo:
		return true
	default:
		return false
	}
}

// Participant is a buyer account: credit balance and heritage-preservation
// statistics. One per owner identity, created lazily on first purchase.
type Participant struct {
	types.Entity
	ID            id.ParticipantID `json:"id"`
	Owner         string           `json:"owner"`
	CreditBalance uint64           `json:"credit_balance"`
	HeritageItems uint32           `json:"heritage_items"`
	TreesFunded   uint32           `json:"trees_funded"`
	TotalSpent    uint64           `json:"total_spent"`
}

// Clone returns a deep copy for staged mutation.
func (p *Participant) Clone() *Participant {
	cp := *p
	return &cp
}
