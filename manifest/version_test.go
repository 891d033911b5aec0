/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	testCases := []struct {
		name     string
		version  string
		expected [3]int
	}{
		{"Full", "1.2.3", [3]int{1, 2, 3}},
		{"MissingPatch", "1.2", [3]int{1, 2, 0}},
		{"MissingMinor", "1", [3]int{1, 0, 0}},
		{"Empty", "", [3]int{0, 0, 0}},
		{"NonNumeric", "abc", [3]int{0, 0, 0}},
		{"LeadingGarbage", "v1.2.3", [3]int{0, 2, 3}},
		{"TrailingGarbage", "1.2.3-rc1", [3]int{1, 2, 3}},
		{"ExtraComponents", "1.2.3.4", [3]int{1, 2, 3}},
		{"EmptyComponent", "1..2", [3]int{1, 0, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseVersion(tc.version))
		})
	}
}

func TestCompareVersions(t *testing.T) {
	testCases := []struct {
		name string
		a    string
		b    string
		sign int
	}{
		{"Equal", "1.2.3", "1.2.3", 0},
		{"PatchOlder", "1.2.3", "1.2.4", -1},
		{"MajorNewer", "2.0.0", "1.9.9", 1},
		{"MinorNewer", "1.3.0", "1.2.9", 1},
		{"MissingComponentsAreZero", "1.2", "1.2.0", 0},
		{"MalformedBothEqual", "", "abc", 0},
		{"MalformedIsOldest", "abc", "0.0.1", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := CompareVersions(tc.a, tc.b)

			switch {
			case tc.sign < 0:
				assert.True(t, c < 0)
			case tc.sign > 0:
				assert.True(t, c > 0)
			default:
				assert.Equal(t, 0, c)
			}
		})
	}
}

func TestCompareVersionsIsAntisymmetric(t *testing.T) {
	assert.Equal(t, CompareVersions("1.2.3", "1.2.4"), -CompareVersions("1.2.4", "1.2.3"))
}
