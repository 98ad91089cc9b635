package geo

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	p := Locate("Westlands")
	if d := Haversine(p, p); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a, b := Locate("Karen"), Locate("Kasarani")
	if d1, d2 := Haversine(a, b), Haversine(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("asymmetric: %v vs %v", d1, d2)
	}
}

func TestHaversinePlausibleRange(t *testing.T) {
	// Karen and Kasarani sit on opposite sides of Nairobi, roughly 25km apart.
	d := Distance("Karen", "Kasarani")
	if d < 15 || d > 35 {
		t.Fatalf("Karen-Kasarani = %vkm, outside plausible range", d)
	}
}

func TestUnknownAreaFallsBackToCBD(t *testing.T) {
	if d := Distance("Atlantis", "CBD"); d != 0 {
		t.Fatalf("unknown area did not resolve to CBD, distance %v", d)
	}
}

func TestTriangleInequality(t *testing.T) {
	names := []string{"Westlands", "Karen", "Embakasi"}
	ab := Distance(names[0], names[1])
	bc := Distance(names[1], names[2])
	ac := Distance(names[0], names[2])
	if ac > ab+bc+1e-9 {
		t.Fatalf("triangle inequality violated: %v > %v + %v", ac, ab, bc)
	}
}
