package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVecAddSubScale(t *testing.T) {
	a := V(1, 2)
	b := V(3, -1)

	sum := a.Add(b)
	if sum.X != 4 || sum.Y != 1 {
		t.Errorf("Add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff.X != -2 || diff.Y != 3 {
		t.Errorf("Sub: got %+v", diff)
	}

	sc := a.Scale(2.5)
	if sc.X != 2.5 || sc.Y != 5 {
		t.Errorf("Scale: got %+v", sc)
	}
}

func TestVecNormalize(t *testing.T) {
	v := V(3, 4).Normalize()
	if math.Abs(v.Len()-1) > eps {
		t.Errorf("Normalize should produce unit length, got %f", v.Len())
	}
	if math.Abs(v.X-0.6) > eps || math.Abs(v.Y-0.8) > eps {
		t.Errorf("Normalize direction wrong: %+v", v)
	}

	// Zero vector stays zero rather than producing NaN
	z := V(0, 0).Normalize()
	if z.X != 0 || z.Y != 0 {
		t.Errorf("Normalize of zero should be zero, got %+v", z)
	}
}

func TestVecDist(t *testing.T) {
	if d := V(0, 0).Dist(V(3, 4)); math.Abs(d-5) > eps {
		t.Errorf("Dist: got %f, want 5", d)
	}
	if d := V(1, 1).DistSq(V(4, 5)); math.Abs(d-25) > eps {
		t.Errorf("DistSq: got %f, want 25", d)
	}
}

func TestFromAngleRoundTrip(t *testing.T) {
	for _, a := range []float64{0, math.Pi / 4, math.Pi / 2, -math.Pi / 3, 3} {
		v := FromAngle(a)
		if math.Abs(AngleDiff(v.Angle(), a)) > eps {
			t.Errorf("FromAngle(%f).Angle() = %f", a, v.Angle())
		}
	}
}

func TestAngleDiff(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{math.Pi / 2, 0, math.Pi / 2},
		{0, math.Pi / 2, -math.Pi / 2},
		// Wraps across the ±π seam rather than going the long way
		{3, -3, -(2*math.Pi - 6)},
	}
	for _, c := range cases {
		got := AngleDiff(c.a, c.b)
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("AngleDiff(%f, %f) = %f, want %f", c.a, c.b, got, c.want)
		}
	}
}

func TestClampF(t *testing.T) {
	if v := ClampF(5, 0, 3); v != 3 {
		t.Errorf("ClampF above max: got %f", v)
	}
	if v := ClampF(-1, 0, 3); v != 0 {
		t.Errorf("ClampF below min: got %f", v)
	}
	if v := ClampF(2, 0, 3); v != 2 {
		t.Errorf("ClampF in range: got %f", v)
	}
}
