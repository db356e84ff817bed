package jersey

import (
	"slices"
)

// Valid fallback range for reassigned numbers.
const (
	MinNumber = 1
	MaxNumber = 98
)

// registry is the ordered set of numbers in use on one team.
type registry struct {
	numbers []int
}

func (r *registry) has(n int) bool {
	_, found := slices.BinarySearch(r.numbers, n)
	return found
}

func (r *registry) add(n int) {
	i, found := slices.BinarySearch(r.numbers, n)
	if !found {
		r.numbers = slices.Insert(r.numbers, i, n)
	}
}

// next returns the first free number in the decile of current, then in
// MinNumber..MaxNumber.
func (r *registry) next(current int) (int, bool) {
	low := (current / 10) * 10
	if current < 0 {
		low = ((current - 9) / 10) * 10
	}
	for n := low; n < low+10; n++ {
		if !r.has(n) {
			return n, true
		}
	}
	for n := MinNumber; n <= MaxNumber; n++ {
		if !r.has(n) {
			return n, true
		}
	}
	return 0, false
}
