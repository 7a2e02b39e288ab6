// Package partition splits an ordered sequence into three contiguous
// ranges so page sections can be interleaved around it.
package partition

// Bounds returns the two cut points for a sequence of n items:
// ceil(n/3) and ceil(2n/3). Uneven remainders go to the earlier ranges.
func Bounds(n int) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	return (n + 2) / 3, (2*n + 2) / 3
}

// Thirds returns items[0:a], items[a:b] and items[b:n]. The ranges share
// the backing array of items and together cover it exactly, in order.
func Thirds[T any](items []T) (first, second, third []T) {
	a, b := Bounds(len(items))
	return items[:a:a], items[a:b:b], items[b:]
}
