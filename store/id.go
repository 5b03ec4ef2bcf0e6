/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package store

import (
	"math/big"
	"strings"
)

// IsNumericID returns true if id is a non-empty string of decimal digits.
func IsNumericID(id string) bool {
	if len(id) == 0 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// CompareIDs orders ids numerically when both are numbers of any length; it returns -1, 0 or +1.
// Non-numeric ids sort after numeric ones and compare lexically between themselves.
func CompareIDs(a, b string) int {
	numericA, numericB := IsNumericID(a), IsNumericID(b)
	switch {
	case numericA && numericB:
		a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)

	case numericA:
		return -1

	case numericB:
		return 1
	}
	return strings.Compare(a, b)
}

// NextID returns the id following the largest numeric id in ids, or "1" if there is none.
func NextID(ids []string) string {
	var largest string
	for _, id := range ids {
		if IsNumericID(id) && (len(largest) == 0 || CompareIDs(id, largest) > 0) {
			largest = id
		}
	}
	if len(largest) == 0 {
		return "1"
	}

	n, _ := new(big.Int).SetString(largest, 10)
	return n.Add(n, big.NewInt(1)).String()
}
