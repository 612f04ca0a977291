package selection

import "sort"

// Partitioned holds the outputs of the Partitioner (C2): the top-N
// highest-value items that enter combinatorial search, the remaining
// leftover items (also value-descending), and the leftover-prefix table
// built over leftover's flattened copies.
type Partitioned struct {
	TopItems       []InventoryItem
	Leftover       []InventoryItem
	LeftoverPrefix []int64 // P[0]=0, P[k] = sum of k largest leftover copies
}

// Partition sorts items by value descending (ties broken by item_id for a
// deterministic, reproducible split), then splits off the first TopN as
// the combinatorial set and builds the leftover-prefix table over the
// remainder.
func Partition(items []InventoryItem) Partitioned {
	sorted := make([]InventoryItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].ItemID < sorted[j].ItemID
	})

	n := len(sorted)
	if n > TopN {
		n = TopN
	}
	top := sorted[:n]
	leftover := sorted[n:]

	totalCopies := 0
	for _, it := range leftover {
		totalCopies += int(it.Qty)
	}

	prefix := make([]int64, 0, totalCopies+1)
	prefix = append(prefix, 0)
	for _, it := range leftover {
		for c := uint8(0); c < it.Qty; c++ {
			prefix = append(prefix, prefix[len(prefix)-1]+it.Value)
		}
	}

	return Partitioned{
		TopItems:       top,
		Leftover:       leftover,
		LeftoverPrefix: prefix,
	}
}
