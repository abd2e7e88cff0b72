package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPack16To14RoundTrip(t *testing.T) {
	const groups = 3
	in := make([]uint16, groups*32)
	for i := range in {
		in[i] = uint16((i*37 + 5) & 0x3FFF)
	}
	out := Pack16To14(in)
	require.Len(t, out, groups*56)
	require.Equal(t, in, Unpack16To14(out, len(in)))
}

func TestPackContinuousRoundTrip(t *testing.T) {
	const count = 256
	in := make([]uint16, count)
	for i := range in {
		in[i] = uint16((i*13 + 1) & 0x1FF)
	}
	words := PackContinuous(in, 9)
	require.Len(t, words, (count*9+63)/64)

	buf := make([]byte, len(words)*8)
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[i*8:], w)
	}
	require.Equal(t, in, unpackGroups(buf, count, 9))
}

func TestPackContinuousExactWordCount(t *testing.T) {
	// 256 values at 9 bits each is exactly 2304 bits == 36 64-bit words,
	// with no wasted padding - the MOTION_BLOCKING heightmap shape.
	words := PackContinuous(make([]uint16, 256), 9)
	require.Len(t, words, 36)
}

func TestPack16To14RejectsBadCount(t *testing.T) {
	require.Panics(t, func() { Pack16To14(make([]uint16, 31)) })
}

func TestPack16To14AllMax(t *testing.T) {
	in := make([]uint16, 32)
	for i := range in {
		in[i] = 0x3FFF
	}
	out := Pack16To14(in)
	require.Equal(t, in, Unpack16To14(out, 32))
}
