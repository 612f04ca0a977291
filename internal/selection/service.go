package selection

import "context"

// Select runs the C2-C5 pipeline over an already-loaded inventory: it
// partitions items into the top-N combinatorial set and leftover filler,
// enumerates both halves of the top set, joins them via meet-in-the-
// middle, and assembles the winning selection. It returns the empty
// Picks, not an error, when no admissible selection exists.
func Select(ctx context.Context, items []InventoryItem, q Query) (Picks, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	part := Partition(items)

	n := len(part.TopItems)
	mid := n / 2
	left := part.TopItems[:mid]
	right := part.TopItems[mid:]

	combosA := EnumerateHalf(left, q.MaxValue, q.MaxItems)
	combosB := EnumerateHalf(right, q.MaxValue, q.MaxItems)

	return Combine(ctx, combosA, combosB, part, q), nil
}
