package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectFrames(t *testing.T, chunks [][]byte) ([]Frame, []error) {
	t.Helper()
	var frames []Frame
	var errs []error
	pr := NewPacketReader(func(f Frame) { frames = append(frames, f) }, func(e error) { errs = append(errs, e) })
	for _, c := range chunks {
		pr.Feed(c)
	}
	return frames, errs
}

// TestPacketReaderIsStreamSplitIndependent verifies that for any split of
// the same byte stream into chunks, the reader emits an identical frame
// sequence.
func TestPacketReaderIsStreamSplitIndependent(t *testing.T) {
	wire := append(EncodeFrame(1, []byte("hello")), EncodeFrame(2, []byte("world!!"))...)

	whole, errs1 := collectFrames(t, [][]byte{wire})
	require.Empty(t, errs1)

	var byteAtATime [][]byte
	for _, b := range wire {
		byteAtATime = append(byteAtATime, []byte{b})
	}
	oneByOne, errs2 := collectFrames(t, byteAtATime)
	require.Empty(t, errs2)

	require.Equal(t, whole, oneByOne)
	require.Len(t, whole, 2)
	require.Equal(t, int32(1), whole[0].ID)
	require.Equal(t, "hello", string(whole[0].Payload))
	require.Equal(t, int32(2), whole[1].ID)
	require.Equal(t, "world!!", string(whole[1].Payload))

	mid := len(wire) / 2
	split, errs3 := collectFrames(t, [][]byte{wire[:mid], wire[mid:]})
	require.Empty(t, errs3)
	require.Equal(t, whole, split)
}

func TestPacketReaderStopsAfterFatalError(t *testing.T) {
	big := make([]byte, MaxPayload+1)
	bad := EncodeFrame(0, big)
	good := EncodeFrame(1, []byte("never seen"))

	frames, errs := collectFrames(t, [][]byte{append(bad, good...)})
	require.Empty(t, frames)
	require.Len(t, errs, 1)
}
