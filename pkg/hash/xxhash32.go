/*
 * // Copyright (c) 2021. Scott Cagno. All rights reserved.
 * // The license can be found in the root of this project; see LICENSE.
 */

package hash

import (
	"encoding/binary"
	"math/bits"
)

// DefaultSeed is the seed XXHash32 uses for every key
const DefaultSeed = 0xCAFE

const (
	prime32_1 = 2654435761
	prime32_2 = 2246822519
	prime32_3 = 3266489917
	prime32_4 = 668265263
	prime32_5 = 374761393
)

// Checksum32 returns the xxHash32 value of input for the given seed
func Checksum32(input []byte, seed uint32) uint32 {
	n := len(input)
	h32 := uint32(n)

	if n < 16 {
		h32 += seed + prime32_5
	} else {
		v1 := seed + prime32_1 + prime32_2
		v2 := seed + prime32_2
		v3 := seed
		v4 := seed - prime32_1
		for len(input) >= 16 {
			v1 = round32(v1, binary.LittleEndian.Uint32(input[0:4]))
			v2 = round32(v2, binary.LittleEndian.Uint32(input[4:8]))
			v3 = round32(v3, binary.LittleEndian.Uint32(input[8:12]))
			v4 = round32(v4, binary.LittleEndian.Uint32(input[12:16]))
			input = input[16:]
		}
		h32 += bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	}

	for len(input) >= 4 {
		h32 += binary.LittleEndian.Uint32(input[0:4]) * prime32_3
		h32 = bits.RotateLeft32(h32, 17) * prime32_4
		input = input[4:]
	}
	for _, b := range input {
		h32 += uint32(b) * prime32_5
		h32 = bits.RotateLeft32(h32, 11) * prime32_1
	}

	// avalanche
	h32 ^= h32 >> 15
	h32 *= prime32_2
	h32 ^= h32 >> 13
	h32 *= prime32_3
	h32 ^= h32 >> 16
	return h32
}

func round32(acc, lane uint32) uint32 {
	return bits.RotateLeft32(acc+lane*prime32_2, 13) * prime32_1
}
