// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package sort

import "github.com/go-ndsort/ndsort/nd"

// insertionThreshold: runs this size or smaller are ordered with insertion
// sort instead of radix passes.
const insertionThreshold = 32

// orderKeys stably sorts keys and carries perm along. keysTmp and permTmp
// must be at least as long as keys. bits is the key width.
func orderKeys(keys, keysTmp []uint64, perm, permTmp []nd.Index, bits uint) {
	if len(keys) <= insertionThreshold {
		insertionPairs(keys, perm)
		return
	}
	radixPairs(keys, keysTmp[:len(keys)], perm, permTmp[:len(perm)], bits)
}

// insertionPairs is insertion sort over (key, index) pairs. Equal keys never
// move past each other.
func insertionPairs(keys []uint64, perm []nd.Index) {
	for i := 1; i < len(keys); i++ {
		k, p := keys[i], perm[i]
		j := i - 1
		for j >= 0 && keys[j] > k {
			keys[j+1] = keys[j]
			perm[j+1] = perm[j]
			j--
		}
		keys[j+1] = k
		perm[j+1] = p
	}
}

// radixPairs is LSD radix sort with 8-bit digits over (key, index) pairs.
// The scatter walks the source front to back, so every pass is stable.
func radixPairs(keys, keysTmp []uint64, perm, permTmp []nd.Index, bits uint) {
	n := len(keys)
	if n == 0 {
		return
	}

	src, dst := keys, keysTmp
	psrc, pdst := perm, permTmp

	var count [256]int
	for shift := uint(0); shift < bits; shift += 8 {
		// Histogram of this digit
		clear(count[:])
		for _, k := range src {
			count[(k>>shift)&0xFF]++
		}

		// Every key shares this digit: the pass would be the identity
		if count[(src[0]>>shift)&0xFF] == n {
			continue
		}

		// Prefix sum to get bucket offsets
		offset := 0
		for b := range count {
			c := count[b]
			count[b] = offset
			offset += c
		}

		// Scatter
		for i, k := range src {
			d := (k >> shift) & 0xFF
			dst[count[d]] = k
			pdst[count[d]] = psrc[i]
			count[d]++
		}

		src, dst = dst, src
		psrc, pdst = pdst, psrc
	}

	if &src[0] != &keys[0] {
		copy(keys, src)
		copy(perm, psrc)
	}
}
