package geom

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	if got := V(0, 0).Dist(V(3, 4)); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
	if got := V(1, 1).DistSq(V(1, 1)); got != 0 {
		t.Errorf("DistSq of same point = %v, want 0", got)
	}
}

func TestRNormalizesCorners(t *testing.T) {
	r := R(10, 8, 0, 0)
	if r.Min != V(0, 0) || r.Max != V(10, 8) {
		t.Errorf("R(10,8,0,0) = %+v", r)
	}
	if r.Width() != 10 || r.Height() != 8 {
		t.Errorf("size = %vx%v, want 10x8", r.Width(), r.Height())
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(V(1, 2), V(4, 2))
	if r.Min != V(-1, 1) || r.Max != V(3, 3) {
		t.Errorf("CenteredRect = %+v", r)
	}
	if r.Center() != V(1, 2) {
		t.Errorf("Center = %+v", r.Center())
	}
}

func TestCircleOverlaps(t *testing.T) {
	r := R(0, 0, 2, 2)
	tests := []struct {
		name   string
		c      Vec2
		radius float64
		want   bool
	}{
		{"inside", V(1, 1), 0.1, true},
		{"touching edge", V(3, 1), 1, true},
		{"just outside edge", V(3.01, 1), 1, false},
		{"corner diagonal miss", V(3, 3), 1, false},
		{"corner diagonal hit", V(3, 3), math.Sqrt2, true},
		{"zero radius on edge", V(2, 1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.CircleOverlaps(tt.c, tt.radius); got != tt.want {
				t.Errorf("CircleOverlaps(%v, %v) = %v, want %v", tt.c, tt.radius, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 5) != 0 || Clamp(7, 0, 5) != 5 || Clamp(3, 0, 5) != 3 {
		t.Error("Clamp did not limit values to range")
	}
}

func TestRotate(t *testing.T) {
	got := V(1, 0).Rotate(90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("(1,0) rotated 90 = %v, want (0,1)", got)
	}
	if V(2, 3).Rotate(0) != V(2, 3) {
		t.Error("zero rotation should return the vector unchanged")
	}
	back := V(2, 3).Rotate(37).Rotate(-37)
	if math.Abs(back.X-2) > 1e-9 || math.Abs(back.Y-3) > 1e-9 {
		t.Errorf("round trip = %v, want (2,3)", back)
	}
}
