// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package expand

import (
	"fmt"
	"strconv"
	"strings"
)

// Church returns the Church numeral for n: a two-parameter function that
// applies s to x exactly n times. n must not be negative.
func Church(n int) string {
	if n < 0 {
		panic(fmt.Sprintf("expand: negative numeral %d", n))
	}
	var sb strings.Builder
	sb.Grow(len("(lambda s:lambda x:x)") + 3*n)
	sb.WriteString("(lambda s:lambda x:")
	for i := 0; i < n; i++ {
		sb.WriteString("s(")
	}
	sb.WriteByte('x')
	for i := 0; i < n; i++ {
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

// numeral converts a decimal key to its Church numeral.
func numeral(key string) (string, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return "", fmt.Errorf("numeral %s: %w", key, err)
	}
	return Church(n), nil
}
