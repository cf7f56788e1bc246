package id_test

import (
	"strings"
	"testing"

	"github.com/pyebwa/pyebwa/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"PoolID", id.NewPoolID, "pool_"},
		{"ParticipantID", id.NewParticipantID, "fam_"},
		{"PlanterID", id.NewPlanterID, "pltr_"},
		{"EvidenceID", id.NewEvidenceID, "evd_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixEvidence)
	if i.IsNil() {
		t.Fatal("New returned nil ID")
	}
	if i.Prefix() != id.PrefixEvidence {
		t.Errorf("prefix: got %q, want %q", i.Prefix(), id.PrefixEvidence)
	}
}

func TestUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		s := id.NewPlanterID().String()
		if seen[s] {
			t.Fatalf("duplicate ID generated: %s", s)
		}
		seen[s] = true
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := id.NewParticipantID()

	parsed, err := id.Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", parsed.String(), orig.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "not-a-typeid"},
		{"bad suffix", "pool_!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Parse(tt.input); err == nil {
				t.Errorf("Parse(%q): expected error", tt.input)
			}
		})
	}
}

func TestParseWithPrefix(t *testing.T) {
	poolID := id.NewPoolID()

	if _, err := id.ParsePoolID(poolID.String()); err != nil {
		t.Fatalf("ParsePoolID: %v", err)
	}
	if _, err := id.ParsePlanterID(poolID.String()); err == nil {
		t.Error("ParsePlanterID accepted a pool ID")
	}
}

func TestNilID(t *testing.T) {
	var zero id.ID
	if !zero.IsNil() {
		t.Error("zero value should be nil")
	}
	if zero.String() != "" {
		t.Errorf("nil String: got %q, want empty", zero.String())
	}
}

func TestTextMarshaling(t *testing.T) {
	orig := id.NewEvidenceID()

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", decoded.String(), orig.String())
	}

	var nilDecoded id.ID
	if err := nilDecoded.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !nilDecoded.IsNil() {
		t.Error("empty text should decode to nil ID")
	}
}
