package selection

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// snapshot is one candidate join: which combo from each half was used, how
// many leftover copies were added as filler, and the resulting distance
// from the midpoint. aIdx/bIdx identify the combos' positions in the
// sorted/input slices solely to give the parallel reduction a
// deterministic tie-break.
type snapshot struct {
	valid bool
	a     ComboMeta
	b     ComboMeta
	kUsed int
	dist  int64
	aIdx  int
	bIdx  int
}

// betterThan implements "strictly lower dist wins, ties broken by a
// stable index composite" (spec: lexicographic on (bIdx, aIdx)), so the
// parallel reduction is deterministic regardless of goroutine scheduling.
func (s snapshot) betterThan(o snapshot) bool {
	if !o.valid {
		return true
	}
	if !s.valid {
		return false
	}
	if s.dist != o.dist {
		return s.dist < o.dist
	}
	if s.bIdx != o.bIdx {
		return s.bIdx < o.bIdx
	}
	return s.aIdx < o.aIdx
}

// Combine performs the meet-in-the-middle join (C4): sorts combosA by
// value, then for each combo in combosB does a filtered scan of combosA,
// optionally lifting under-minimum joins with leftover filler, and keeps
// the selection closest to the query's midpoint. The scan over combosB is
// parallelized; ctx cancellation is observed before each combo of B so a
// client disconnect can abort the CPU-bound stage at a safe point.
func Combine(ctx context.Context, combosA, combosB []ComboMeta, part Partitioned, q Query) Picks {
	a := make([]ComboMeta, len(combosA))
	copy(a, combosA)
	sort.Slice(a, func(i, j int) bool { return a[i].Value < a[j].Value })

	values := make([]int64, len(a))
	for i, c := range a {
		values[i] = c.Value
	}

	midpoint := q.Midpoint()
	totalLeftoverCopies := len(part.LeftoverPrefix) - 1

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > len(combosB) {
		workers = len(combosB)
	}
	if workers == 0 {
		return assemble(part, snapshot{}, q)
	}

	chunk := (len(combosB) + workers - 1) / workers

	var mu sync.Mutex
	best := snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(combosB) {
			end = len(combosB)
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			local := snapshot{}
			for bIdx := start; bIdx < end; bIdx++ {
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				b := combosB[bIdx]
				cand, ok := joinOne(a, values, bIdx, b, part.LeftoverPrefix, totalLeftoverCopies, q, midpoint)
				if ok && cand.betterThan(local) {
					local = cand
				}
			}

			mu.Lock()
			if local.betterThan(best) {
				best = local
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return an error; ctx cancellation only stops work early

	return assemble(part, best, q)
}

// joinOne evaluates every a in combosA that can pair with b, applying
// filler where needed, and returns the best join found for this b.
func joinOne(a []ComboMeta, values []int64, bIdx int, b ComboMeta, leftoverPrefix []int64, totalLeftoverCopies int, q Query, midpoint int64) (snapshot, bool) {
	minNeeded := q.MinValue - b.Value
	maxAllowed := q.MaxValue - b.Value

	start := sort.Search(len(values), func(i int) bool { return values[i] >= minNeeded })

	best := snapshot{}
	found := false

	for aIdx := start; aIdx < len(a); aIdx++ {
		ac := a[aIdx]
		if ac.Value > maxAllowed {
			break
		}

		totalCnt := ac.Count + b.Count
		val := ac.Value + b.Value
		cnt := totalCnt
		kUsed := 0

		if val < q.MinValue || cnt < q.MinItems {
			needVal := q.MinValue - val
			if needVal < 0 {
				needVal = 0
			}
			needCnt := int(q.MinItems) - int(cnt)
			if needCnt < 0 {
				needCnt = 0
			}

			kVal := sort.Search(len(leftoverPrefix), func(i int) bool { return leftoverPrefix[i] >= needVal })
			k := needCnt
			if kVal > k {
				k = kVal
			}

			if k == 0 || int(cnt)+k > int(q.MaxItems) || k > totalLeftoverCopies {
				continue
			}
			val += leftoverPrefix[k]
			cnt += uint8(k)
			kUsed = k
			if val > q.MaxValue {
				continue
			}
		}

		if val < q.MinValue || val > q.MaxValue || cnt < q.MinItems || cnt > q.MaxItems {
			continue
		}

		dist := val - midpoint
		if dist < 0 {
			dist = -dist
		}

		cand := snapshot{valid: true, a: ac, b: b, kUsed: kUsed, dist: dist, aIdx: aIdx, bIdx: bIdx}
		if cand.betterThan(best) {
			best = cand
			found = true
		}
	}

	return best, found
}
