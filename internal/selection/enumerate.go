package selection

// halfMax bounds a single half of TopItems: TopN=50 split roughly in two
// gives each half at most 25 slots, fixed size keeps the per-frame counts
// array stack-allocated instead of a heap slice, since an enumeration can
// produce tens of millions of frames.
const halfMax = TopN/2 + TopN%2

type enumFrame struct {
	idx    int
	val    int64
	cnt    uint8
	counts [halfMax]uint8
}

// EnumerateHalf performs the C3 depth-first enumeration over one
// contiguous slice of top items, producing every ComboMeta reachable by
// choosing take_i in [0, H[i].Qty] copies of each item subject to running
// value <= maxValue and running count <= maxItems. The walk uses an
// explicit frame stack rather than recursion so depth is bounded by
// len(h), not call-stack depth, and exhaustiveness does not depend on
// enumeration order.
func EnumerateHalf(h []InventoryItem, maxValue int64, maxItems uint8) []ComboMeta {
	if len(h) > halfMax {
		panic("selection: half exceeds halfMax")
	}

	combos := make([]ComboMeta, 0, 1024)
	stack := make([]enumFrame, 0, 1024)
	stack = append(stack, enumFrame{idx: 0, val: 0, cnt: 0})

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if frame.idx == len(h) {
			counts := make([]uint8, len(h))
			copy(counts, frame.counts[:len(h)])
			combos = append(combos, ComboMeta{Value: frame.val, Count: frame.cnt, Counts: counts})
			continue
		}

		item := h[frame.idx]
		remValue := maxValue - frame.val
		remItems := int64(maxItems - frame.cnt)

		var maxTake int64
		if item.Value > 0 {
			maxTake = remValue / item.Value
			if remItems < maxTake {
				maxTake = remItems
			}
		} else {
			maxTake = remItems
		}
		if int64(item.Qty) < maxTake {
			maxTake = int64(item.Qty)
		}

		for take := maxTake; take >= 0; take-- {
			newVal := frame.val + take*item.Value
			newCnt := frame.cnt + uint8(take)
			if newVal > maxValue || newCnt > maxItems {
				continue
			}
			next := enumFrame{idx: frame.idx + 1, val: newVal, cnt: newCnt, counts: frame.counts}
			next.counts[frame.idx] = uint8(take)
			stack = append(stack, next)
		}
	}

	return combos
}
