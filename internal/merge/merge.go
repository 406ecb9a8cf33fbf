// Package merge implements the three-way line merge used when both sides of
// a conflict edited the same file.
package merge

import (
	"slices"
	"strings"
)

const (
	markerYours  = "<<<<<<< yours"
	markerSplit  = "======="
	markerTheirs = ">>>>>>> theirs"
)

// Merge combines yours and theirs against their common ancestor. Regions
// changed on only one side take that side's lines and identical changes
// collapse into one. Overlapping differing changes are kept verbatim between
// conflict markers and clean is false.
func Merge(base, yours, theirs string) (string, bool) {
	b := splitLines(base)
	y := splitLines(yours)
	t := splitLines(theirs)

	matchY := lcsPairs(b, y)
	matchT := lcsPairs(b, t)

	var out []string
	clean := true

	i, j, k := 0, 0, 0
	for {
		// 양쪽 모두에 남아있는 다음 base 줄을 찾는다
		o := i
		jo, ko := -1, -1
		for o < len(b) {
			jj, okY := matchY[o]
			kk, okT := matchT[o]
			if okY && okT && jj >= j && kk >= k {
				jo, ko = jj, kk
				break
			}
			o++
		}

		if o == len(b) {
			clean = emitChunk(&out, b[i:], y[j:], t[k:]) && clean
			break
		}

		if o > i || jo > j || ko > k {
			clean = emitChunk(&out, b[i:o], y[j:jo], t[k:ko]) && clean
		}

		out = append(out, b[o])
		i, j, k = o+1, jo+1, ko+1
	}

	return strings.Join(out, "\n"), clean
}

func emitChunk(out *[]string, b, y, t []string) bool {
	switch {
	case slices.Equal(y, t):
		*out = append(*out, y...)
	case slices.Equal(b, y):
		*out = append(*out, t...)
	case slices.Equal(b, t):
		*out = append(*out, y...)
	default:
		*out = append(*out, markerYours)
		*out = append(*out, y...)
		*out = append(*out, markerSplit)
		*out = append(*out, t...)
		*out = append(*out, markerTheirs)
		return false
	}

	return true
}

// lcsPairs maps indices in a to their matched indices in b along one longest
// common subsequence. Matches are strictly increasing on both sides.
func lcsPairs(a, b []string) map[int]int {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}

	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	pairs := make(map[int]int)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			pairs[i] = j
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			i++
		default:
			j++
		}
	}

	return pairs
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
