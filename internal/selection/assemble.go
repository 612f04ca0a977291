package selection

// assemble materializes the winning selection (C5) from a snapshot taken
// during Combine: the two halves' take vectors plus whatever leftover
// filler copies were used. An invalid snapshot (nothing admissible found)
// yields the empty selection, which is not an error.
func assemble(part Partitioned, best snapshot, q Query) Picks {
	picks := make(Picks)
	if !best.valid {
		return picks
	}

	top := part.TopItems
	mid := len(best.a.Counts)

	for i, take := range best.a.Counts {
		if take > 0 {
			picks[top[i].ItemID] += take
		}
	}
	for i, take := range best.b.Counts {
		if take > 0 {
			picks[top[mid+i].ItemID] += take
		}
	}

	if best.kUsed > 0 {
		addFiller(picks, part.Leftover, best.kUsed)
	}

	return picks
}

// addFiller walks leftover items in descending-value order (the same
// order the leftover-prefix table was built in), taking at most each
// item's full qty, until exactly k copies have been taken. This mirrors
// P's construction so the filler's value matches P[k] exactly.
func addFiller(picks Picks, leftover []InventoryItem, k int) {
	needed := 0
	for _, item := range leftover {
		if needed == k {
			return
		}
		remaining := k - needed
		take := int(item.Qty)
		if take > remaining {
			take = remaining
		}
		if take > 0 {
			picks[item.ItemID] += uint8(take)
			needed += take
		}
	}
}
