/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package manifest

import "strings"

// ParseVersion extracts up to three numeric components from a dotted
// version string. A component that is missing or does not begin with a
// digit evaluates to zero, so malformed strings degrade to "0.0.0"
// instead of failing.
func ParseVersion(s string) [3]int {
	var v [3]int

	for i, c := range strings.SplitN(s, ".", 3) {
		v[i] = leadingInt(c)
	}

	return v
}

// CompareVersions compares two version strings component-wise, left to
// right. It returns a negative number if a is older than b, zero if
// both represent the same version and a positive number if a is newer
// than b.
func CompareVersions(a, b string) int {
	va := ParseVersion(a)
	vb := ParseVersion(b)

	for i := 0; i < 3; i++ {
		if va[i] != vb[i] {
			return va[i] - vb[i]
		}
	}

	return 0
}

func leadingInt(s string) int {
	n := 0

	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}

		n = n*10 + int(c-'0')
	}

	return n
}
