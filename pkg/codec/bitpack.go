package codec

import "encoding/binary"

// Pack16To14 bit-packs block palette indices for chunk sections: every block
// of 32 input u16s (each using only its low 14 bits) streams into 7 u64s
// (448 bits), written out as 56 big-endian bytes. len(in) must be a multiple
// of 32 - callers always satisfy this (one call per populated section, 4096
// blocks = 128 groups of 32), so a mismatch is a programmer error and panics.
func Pack16To14(in []uint16) []byte {
	if len(in)%32 != 0 {
		panic("codec: Pack16To14 requires a multiple of 32 input values")
	}
	out := make([]byte, len(in)/32*56)
	for g := 0; g < len(in)/32; g++ {
		words := packGroup(in[g*32:g*32+32], 14)
		for i, w := range words {
			binary.BigEndian.PutUint64(out[g*56+i*8:], w)
		}
	}
	return out
}

// PackContinuous bit-packs values as a single continuous LSB-first
// bitstream into 64-bit words, with no per-value alignment to a word
// boundary - the layout an NBT LONG_ARRAY like MOTION_BLOCKING uses, as
// opposed to Pack16To14's per-section grouping (which only works because
// each 32-value group lands on an exact word boundary).
func PackContinuous(values []uint16, bitsPerValue int) []uint64 {
	return packGroup(values, bitsPerValue)
}

// packGroup streams values (each holding only its low bitsPerValue bits)
// into a minimal sequence of u64 words, LSB-first within each word - the
// layout vanilla chunk section / heightmap packing both use.
func packGroup(values []uint16, bitsPerValue int) []uint64 {
	totalBits := len(values) * bitsPerValue
	words := make([]uint64, (totalBits+63)/64)

	var bitPos int
	for _, v := range values {
		masked := uint64(v) & ((1 << uint(bitsPerValue)) - 1)
		wordIdx := bitPos / 64
		bitOff := uint(bitPos % 64)

		words[wordIdx] |= masked << bitOff
		if bitOff+uint(bitsPerValue) > 64 {
			words[wordIdx+1] |= masked >> (64 - bitOff)
		}
		bitPos += bitsPerValue
	}
	return words
}

// Unpack16To14 is the analytic inverse of Pack16To14, used only by tests to
// validate the round trip.
func Unpack16To14(data []byte, count int) []uint16 {
	return unpackGroups(data, count, 14)
}

func unpackGroups(data []byte, count int, bitsPerValue int) []uint16 {
	numWords := (len(data) + 7) / 8
	words := make([]uint64, numWords)
	for i := 0; i < numWords; i++ {
		lo := i * 8
		hi := lo + 8
		var buf [8]byte
		copy(buf[:], data[lo:min(hi, len(data))])
		words[i] = binary.BigEndian.Uint64(buf[:])
	}

	out := make([]uint16, count)
	mask := uint64(1)<<uint(bitsPerValue) - 1
	var bitPos int
	for i := 0; i < count; i++ {
		wordIdx := bitPos / 64
		bitOff := uint(bitPos % 64)
		var v uint64
		if bitOff+uint(bitsPerValue) <= 64 {
			v = (words[wordIdx] >> bitOff) & mask
		} else {
			lowBits := 64 - bitOff
			v = (words[wordIdx] >> bitOff) | (words[wordIdx+1] << lowBits)
			v &= mask
		}
		out[i] = uint16(v)
		bitPos += bitsPerValue
	}
	return out
}
