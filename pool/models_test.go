package pool

import (
	"math"
	"testing"
)

func TestNextPrice(t *testing.T) {
	tests := []struct {
		name  string
		price uint64
		want  uint64
		ok    bool
	}{
		{"truncates to no change", 100, 100, true},
		{"visible step", 10000, 10001, true},
		{"larger price", 1_000_000, 1_000_100, true},
		{"rounds down", 9999, 9999, true},
		{"overflow", math.MaxUint64, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextPrice(tt.price)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAtPriceStep(t *testing.T) {
	tests := []struct {
		name   string
		supply uint64
		want   bool
	}{
		{"zero supply", 0, true},
		{"exact boundary", 1_000_000, true},
		{"multiple boundary", 5_000_000, true},
		{"one below", 999_999, false},
		{"one above", 1_000_001, false},
		{"mid interval", 1_500_000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AtPriceStep(tt.supply); got != tt.want {
				t.Errorf("AtPriceStep(%d): got %v, want %v", tt.supply, got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	p := &Pool{Authority: "auth", TotalSupply: 42, CreditPrice: 100}
	cp := p.Clone()

	cp.TotalSupply = 99
	if p.TotalSupply != 42 {
		t.Errorf("clone mutation leaked into original: supply %d", p.TotalSupply)
	}
}
