package vecmath

import (
	"math"
	"testing"
)

func TestVectorOperations(t *testing.T) {
	v1 := NewVector(1, 2, 3)
	v2 := NewVector(4, 5, 6)

	if got, want := v1.Add(v2), NewVector(5, 7, 9); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVector(3, 3, 3); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), NewVector(2, 4, 6); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
	if got, want := v1.Dot(v2), 32.0; got != want {
		t.Errorf("Dot: expected %v, got %v", want, got)
	}
	if got, want := AxisX.Cross(AxisY), AxisZ; got != want {
		t.Errorf("Cross: expected %v, got %v", want, got)
	}
}

func TestVectorNormalize(t *testing.T) {
	v := NewVector(3, 0, 0)
	n := v.Normalize()
	if n != (Vector{1, 0, 0}) {
		t.Errorf("Normalize: expected unit X, got %v", n)
	}
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize: expected length 1, got %v", n.Length())
	}
	if z := VectorZero.Normalize(); z != VectorZero {
		t.Errorf("Normalize: zero vector should stay zero, got %v", z)
	}
}

func TestPointSub(t *testing.T) {
	a := NewPoint(1, 1, 1)
	b := NewPoint(4, 5, 6)
	d := b.Sub(a)
	if d != (Vector{3, 4, 5}) {
		t.Errorf("Point.Sub: expected (3,4,5), got %v", d)
	}
	if got := a.Add(d); got != b {
		t.Errorf("Point.Add: expected %v, got %v", b, got)
	}
}

func TestBoxUnionAndSurfaceArea(t *testing.T) {
	b1 := EmptyBox().ExpandPoint(NewPoint(0, 0, 0)).ExpandPoint(NewPoint(1, 1, 1))
	b2 := EmptyBox().ExpandPoint(NewPoint(2, 2, 2)).ExpandPoint(NewPoint(3, 3, 3))
	u := b1.Union(b2)
	if u.Min != (Point{0, 0, 0}) || u.Max != (Point{3, 3, 3}) {
		t.Errorf("Union: expected [0,0,0]-[3,3,3], got %v-%v", u.Min, u.Max)
	}
	if got, want := b1.SurfaceArea(), 6.0; got != want {
		t.Errorf("SurfaceArea: expected %v, got %v", want, got)
	}
}

func TestBoxIntersectRay(t *testing.T) {
	box := Box{Min: NewPoint(-1, -1, -1), Max: NewPoint(1, 1, 1)}
	a, b, hit := box.IntersectRay(NewPoint(-5, 0, 0), AxisX)
	if !hit {
		t.Fatal("expected ray through box origin to hit")
	}
	if math.Abs(a-4) > 1e-9 || math.Abs(b-6) > 1e-9 {
		t.Errorf("expected entry/exit 4/6, got %v/%v", a, b)
	}
	if _, _, hit := box.IntersectRay(NewPoint(-5, 5, 0), AxisX); hit {
		t.Error("expected parallel miss to report no hit")
	}
}
