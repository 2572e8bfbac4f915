package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSelection turns a comma separated list of 1-based numbers into
// distinct 0-based indexes, preserving the order given
func parseSelection(input string, count int) ([]int, error) {
	var indexes []int
	seen := make(map[int]bool)

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid selection '%s'", part)
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("selection %d out of range (1-%d)", n, count)
		}

		if !seen[n-1] {
			seen[n-1] = true
			indexes = append(indexes, n-1)
		}
	}

	if len(indexes) == 0 {
		return nil, ErrCancelled
	}
	return indexes, nil
}
