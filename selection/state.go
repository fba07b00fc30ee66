package selection

// iterationState is the value threaded through the addition loop: the
// candidate mask, the selected mask, the raw per-feature rank counters and
// the optional score trajectory. Transitions return a fresh value instead
// of mutating in place, so the loop invariants can be checked at every
// step boundary.
type iterationState struct {
	support []bool // true = still a candidate
	added   []bool // true = moved into the selected set
	rawRank []int  // 1 + number of iterations the feature was not yet added
	scores  []float64
}

func newIterationState(nFeatures int) iterationState {
	s := iterationState{
		support: make([]bool, nFeatures),
		added:   make([]bool, nFeatures),
		rawRank: make([]int, nFeatures),
	}
	for i := 0; i < nFeatures; i++ {
		s.support[i] = true
		s.rawRank[i] = 1
	}
	return s
}

func (s iterationState) clone() iterationState {
	ns := iterationState{
		support: append([]bool(nil), s.support...),
		added:   append([]bool(nil), s.added...),
		rawRank: append([]int(nil), s.rawRank...),
	}
	if s.scores != nil {
		ns.scores = append([]float64(nil), s.scores...)
	}
	return ns
}

// withBatchAdded moves the given features out of candidacy into the
// selected set and advances the rank counter of every feature still not
// added.
func (s iterationState) withBatchAdded(batch []int) iterationState {
	ns := s.clone()
	for _, f := range batch {
		ns.support[f] = false
		ns.added[f] = true
	}
	for i := range ns.rawRank {
		if !ns.added[i] {
			ns.rawRank[i]++
		}
	}
	return ns
}

// withScore appends one entry to the score trajectory.
func (s iterationState) withScore(score float64) iterationState {
	ns := s.clone()
	ns.scores = append(ns.scores, score)
	return ns
}

func (s iterationState) supportCount() int {
	n := 0
	for _, v := range s.support {
		if v {
			n++
		}
	}
	return n
}

func (s iterationState) addedCount() int {
	n := 0
	for _, v := range s.added {
		if v {
			n++
		}
	}
	return n
}

func (s iterationState) remainingIndices() []int {
	out := make([]int, 0, len(s.support))
	for i, v := range s.support {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func (s iterationState) addedIndices() []int {
	out := make([]int, 0, len(s.added))
	for i, v := range s.added {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// consistent reports whether the masks are complementary, the invariant
// holding between every transition.
func (s iterationState) consistent() bool {
	for i := range s.support {
		if s.support[i] == s.added[i] {
			return false
		}
	}
	return true
}

// exposedRanking converts the raw counters into the public ranking: the
// batch added last receives rank 1, earlier batches receive increasing
// ranks, and features never added share the largest rank. Ties occur only
// within one addition batch (and among the never-added remainder).
func (s iterationState) exposedRanking(iterations int) []int {
	out := make([]int, len(s.rawRank))
	for i := range out {
		if s.added[i] {
			// rawRank equals the 1-based batch number the feature was
			// added in.
			out[i] = iterations - s.rawRank[i] + 1
		} else {
			out[i] = iterations + 1
		}
	}
	return out
}
