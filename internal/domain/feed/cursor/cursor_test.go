package cursor

import (
	"math"
	"testing"
)

func TestEncode_Format(t *testing.T) {
	got := New(0.384, "9f1c").Encode()
	if got != "0.3840000000_9f1c" {
		t.Errorf("Encode() = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		score float64
		id    string
	}{
		{0, "a"},
		{1, "b"},
		{0.38412345678912345, "4b0d9d3e-7c1e-4e4b-9a55-2f1a0c3d9e10"},
		{0.1 + 0.2, "x"},
		{0.00000000004, "tiny"},
		{0.99999999999, "almost-one"},
		{0.27, "id_with_underscores"},
	}
	for _, tt := range tests {
		token := Cursor{Score: tt.score, ID: tt.id}.Encode()
		got, ok := Decode(token)
		if !ok {
			t.Fatalf("Decode(%q) failed", token)
		}
		if got.Score != Round(tt.score) {
			t.Errorf("score round-trip: got %v, want %v", got.Score, Round(tt.score))
		}
		if got.ID != tt.id {
			t.Errorf("id round-trip: got %q, want %q", got.ID, tt.id)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(0.12345678914); got != 0.1234567891 {
		t.Errorf("Round() = %v", got)
	}
	if got := Round(0.12345678916); got != 0.1234567892 {
		t.Errorf("Round() = %v", got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tokens := []string{
		"",
		"garbage",
		"_id",
		"0.5_",
		"abc_id",
		"NaN_id",
		"Inf_id",
		"0.5",
	}
	for _, tok := range tokens {
		if c, ok := Decode(tok); ok {
			t.Errorf("Decode(%q) = %+v, expected failure", tok, c)
		}
	}
}

func TestDecode_RoundsInput(t *testing.T) {
	c, ok := Decode("0.123456789012345_abc")
	if !ok {
		t.Fatal("expected valid cursor")
	}
	if c.Score != 0.123456789 {
		t.Errorf("score = %v, want 0.123456789", c.Score)
	}
	if math.IsNaN(c.Score) {
		t.Fatal("score must be finite")
	}
}
