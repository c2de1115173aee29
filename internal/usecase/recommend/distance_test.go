package recommend

import (
	"math"
	"testing"
)

func TestParseDistanceUnits(t *testing.T) {
	parser := NewDistanceParser()

	tests := []struct {
		in   string
		want float64
	}{
		{"750 m away", 750},
		{"0.5 km away", 500},
		{"1.2 km", 1200},
		{"2 mi", 2 * 1609.34},
		{"1 mile away", 1609.34},
		{"300", 300},
	}
	for _, tc := range tests {
		got := parser.Parse(tc.in)
		if got == nil {
			t.Fatalf("Parse(%q) = nil, want %v", tc.in, tc.want)
		}
		if math.Abs(*got-tc.want) > 0.01 {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, *got, tc.want)
		}
	}
}

func TestParseDistanceUnparseable(t *testing.T) {
	parser := NewDistanceParser()
	for _, in := range []string{"", "far away", "unknown distance"} {
		if got := parser.Parse(in); got != nil {
			t.Errorf("Parse(%q) = %v, want nil", in, *got)
		}
	}
}

// The "m" inside "mi"/"mile" must not be misread as meters.
func TestParseDistanceMilesBeforeMeters(t *testing.T) {
	parser := NewDistanceParser()
	got := parser.Parse("3 miles")
	if got == nil || math.Abs(*got-3*1609.34) > 0.01 {
		t.Fatalf("Parse(\"3 miles\") = %v, want %v", got, 3*1609.34)
	}
}

func TestParseIsMemoized(t *testing.T) {
	parser := NewDistanceParser()

	first := parser.Parse("0.5 km away")
	second := parser.Parse("0.5 km away")

	if parser.parses != 1 {
		t.Errorf("expected one underlying parse, got %d", parser.parses)
	}
	if first == nil || second == nil || *first != *second {
		t.Errorf("memoized results differ: %v vs %v", first, second)
	}

	parser.Parse("1 km away")
	if parser.parses != 2 {
		t.Errorf("expected two underlying parses after a new input, got %d", parser.parses)
	}

	// Unparseable results are memoized too.
	parser.Parse("far away")
	parser.Parse("far away")
	if parser.parses != 3 {
		t.Errorf("expected unparseable input to be parsed once, got %d parses", parser.parses)
	}
}
