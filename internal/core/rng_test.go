package core

import "testing"

func TestMulberry32Reproducibility(t *testing.T) {
	// Two independent generators from the same seed must agree for a long
	// stretch of draws; this is the daily-challenge contract.
	a := NewMulberry32(0xDEADBEEF)
	b := NewMulberry32(0xDEADBEEF)

	for i := 0; i < 10000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d diverged: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestMulberry32SeedSensitivity(t *testing.T) {
	a := NewMulberry32(1)
	b := NewMulberry32(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical sequences")
	}
}

func TestDateSeedStable(t *testing.T) {
	if DateSeed("2025-03-14") != DateSeed("2025-03-14") {
		t.Error("same date must hash to the same seed")
	}
	if DateSeed("2025-03-14") == DateSeed("2025-03-15") {
		t.Error("adjacent dates should not collide")
	}
	if DateSeed("") == 0 || DateSeed("2025-03-14") == 0 {
		t.Error("seed must never be zero")
	}
}

func TestIntnBounds(t *testing.T) {
	r := NewMulberry32(7)
	for i := 0; i < 1000; i++ {
		v := Intn(r, 5)
		if v < 0 || v >= 5 {
			t.Fatalf("Intn out of range: %d", v)
		}
	}
	if Intn(r, 0) != 0 {
		t.Error("Intn(r, 0) should return 0")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := NewMulberry32(42)
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shuffle(r, len(vals), func(i, j int) {
		vals[i], vals[j] = vals[j], vals[i]
	})

	seen := make(map[int]bool)
	for _, v := range vals {
		if seen[v] {
			t.Fatalf("duplicate value %d after shuffle", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("shuffle lost elements: %v", vals)
	}
}
