package selection

import "testing"

func TestEnumerateHalf_ExhaustiveOverFeasiblePrefixes(t *testing.T) {
	h := []InventoryItem{
		{ItemID: 1, Value: 3, Qty: 2},
		{ItemID: 2, Value: 5, Qty: 1},
	}
	maxValue := int64(10)
	maxItems := uint8(2)

	combos := EnumerateHalf(h, maxValue, maxItems)

	// Brute-force every take-vector and compare.
	want := make(map[[2]uint8]ComboMeta)
	for t0 := uint8(0); t0 <= h[0].Qty; t0++ {
		for t1 := uint8(0); t1 <= h[1].Qty; t1++ {
			val := int64(t0)*h[0].Value + int64(t1)*h[1].Value
			cnt := t0 + t1
			if val <= maxValue && cnt <= maxItems {
				want[[2]uint8{t0, t1}] = ComboMeta{Value: val, Count: cnt}
			}
		}
	}

	if len(combos) != len(want) {
		t.Fatalf("got %d combos, want %d", len(combos), len(want))
	}

	seen := make(map[[2]uint8]bool)
	for _, c := range combos {
		key := [2]uint8{c.Counts[0], c.Counts[1]}
		if seen[key] {
			t.Fatalf("duplicate combo for counts %v", key)
		}
		seen[key] = true

		w, ok := want[key]
		if !ok {
			t.Fatalf("unexpected combo with counts %v not satisfying feasibility: %+v", key, c)
		}
		if c.Value != w.Value || c.Count != w.Count {
			t.Fatalf("combo %v: value/count = %d/%d, want %d/%d", key, c.Value, c.Count, w.Value, w.Count)
		}
	}
}

func TestEnumerateHalf_EmptyHalfYieldsOneEmptyCombo(t *testing.T) {
	combos := EnumerateHalf(nil, 100, 10)
	if len(combos) != 1 {
		t.Fatalf("expected exactly 1 combo for empty half, got %d", len(combos))
	}
	if combos[0].Value != 0 || combos[0].Count != 0 {
		t.Fatalf("expected zero-value zero-count combo, got %+v", combos[0])
	}
}

func TestEnumerateHalf_ZeroValueItemOnlyBoundedByCount(t *testing.T) {
	h := []InventoryItem{{ItemID: 1, Value: 0, Qty: 10}}
	combos := EnumerateHalf(h, 0, 3)

	if len(combos) != 4 { // take 0,1,2,3
		t.Fatalf("expected 4 combos (take 0..3), got %d", len(combos))
	}
	for _, c := range combos {
		if c.Value != 0 {
			t.Fatalf("zero-value item must never raise combo value, got %+v", c)
		}
		if c.Count > 3 {
			t.Fatalf("combo exceeds maxItems: %+v", c)
		}
	}
}

func TestEnumerateHalf_RespectsOwnedQty(t *testing.T) {
	h := []InventoryItem{{ItemID: 1, Value: 1, Qty: 2}}
	combos := EnumerateHalf(h, 1000, 100)

	for _, c := range combos {
		if c.Counts[0] > h[0].Qty {
			t.Fatalf("combo takes more than owned qty: %+v", c)
		}
	}
}
