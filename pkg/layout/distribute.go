package layout

import "sort"

// Distribute splits total into len(weights) integer shares proportional to
// weights, using the deterministic floor-then-remainder rule every
// distribution decision in this engine shares: each share starts at
// floor(total*weight/sumWeights), and the leftover cells are awarded one by
// one to the entries with the largest fractional remainder, ties broken by
// lower index.
func Distribute(total int, weights []int) []int {
	shares := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return shares
	}
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return shares
	}

	type remainder struct {
		index int
		rem int64 // remainder numerator, scaled to avoid float
	}
	rems := make([]remainder, len(weights))
	assigned := 0
	for i, w := range weights {
		share := total * w / sum
		shares[i] = share
		assigned += share
		rems[i] = remainder{index: i, rem: int64(total*w) % int64(sum)}
	}
	leftover := total - assigned

	sort.SliceStable(rems, func(a, b int) bool {
		if rems[a].rem != rems[b].rem {
			return rems[a].rem > rems[b].rem
		}
		return rems[a].index < rems[b].index
	})

	for i := 0; i < leftover && i < len(rems); i++ {
		shares[rems[i].index]++
	}
	return shares
}

// DistributeClamped runs Distribute, then re-clamps each share against max[i]
// (0 meaning unbounded), returning excess to the pool and redistributing
// among the remaining uncapped entries. Iterates until no further progress
// is made.
func DistributeClamped(total int, weights []int, max []int) []int {
	shares := make([]int, len(weights))
	capped := make([]bool, len(weights))

	for {
		assigned := 0
		for _, s := range shares {
			assigned += s
		}
		remaining := total - assigned

		activeWeights := make([]int, 0, len(weights))
		activeIdx := make([]int, 0, len(weights))
		for i, w := range weights {
			if capped[i] || w <= 0 {
				continue
			}
			activeWeights = append(activeWeights, w)
			activeIdx = append(activeIdx, i)
		}
		if len(activeIdx) == 0 || remaining <= 0 {
			break
		}

		portions := Distribute(remaining, activeWeights)
		newlyCapped := false
		for j, idx := range activeIdx {
			candidate := shares[idx] + portions[j]
			if max[idx] > 0 && candidate > max[idx] {
				shares[idx] = max[idx]
				capped[idx] = true
				newlyCapped = true
			} else {
				shares[idx] = candidate
			}
		}
		if !newlyCapped {
			break
		}
	}
	return shares
}
