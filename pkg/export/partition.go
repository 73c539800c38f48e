package export

// Range is a half-open entity index range [Start, End) assigned to one
// worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of entities in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits n entities into workers contiguous ranges that tile [0, n)
// with no overlap. Sizes differ by at most one; the trailing n%workers
// workers carry one extra entity each. The result is a pure function of
// (n, workers).
func Partition(n, workers int) []Range {
	if workers < 1 {
		workers = 1
	}

	base := n / workers
	rem := n % workers

	ranges := make([]Range, workers)
	start := 0

	for i := range ranges {
		size := base
		if i >= workers-rem {
			size++
		}

		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}

	return ranges
}
