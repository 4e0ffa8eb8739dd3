// Package ratio partitions ordered sequences into groups matching integer
// ratios exactly, with no floating-point drift: the same input and ratios
// always yield the same groups.
package ratio

import (
	"fmt"
)

// gcdAll computes the greatest common divisor of the values. At least one
// value is required.
func gcdAll(values []int) int {
	g := values[0]
	for _, v := range values[1:] {
		for v != 0 {
			g, v = v, g%v
		}
	}
	return g
}

// Sizes computes the deterministic group sizes for n items under the given
// ratios. The ratios are gcd-reduced and each group ends at the integer
// boundary n*cumulative/cycle, so the sizes sum to n and every size is within
// one of its exact proportional share. The caller's ratio slice is never
// mutated.
func Sizes(n int, ratios []int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("ratio split: negative length %d", n)
	}
	if len(ratios) == 0 {
		return nil, fmt.Errorf("ratio split: no ratios given")
	}
	reduced := append([]int(nil), ratios...)
	for _, r := range reduced {
		if r <= 0 {
			return nil, fmt.Errorf("ratio split: ratios must be positive, got %d", r)
		}
	}

	g := gcdAll(reduced)
	cycle := 0
	for i := range reduced {
		reduced[i] /= g
		cycle += reduced[i]
	}

	sizes := make([]int, len(reduced))
	acc, prev := 0, 0
	for i, units := range reduced {
		acc += units
		boundary := n * acc / cycle
		sizes[i] = boundary - prev
		prev = boundary
	}
	return sizes, nil
}

// Split partitions items into contiguous, order-preserving groups whose
// sizes follow Sizes. Concatenating the groups in ratio order reproduces the
// input exactly. The returned groups share the input's backing array.
func Split[T any](items []T, ratios []int) ([][]T, error) {
	sizes, err := Sizes(len(items), ratios)
	if err != nil {
		return nil, err
	}
	groups := make([][]T, len(sizes))
	offset := 0
	for i, size := range sizes {
		groups[i] = items[offset : offset+size : offset+size]
		offset += size
	}
	return groups, nil
}
