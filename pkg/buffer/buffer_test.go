package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	b := New()
	b.Append([]byte("hello"))
	b.Append([]byte(", world"))
	require.Equal(t, "hello, world", string(b.Bytes()))
	require.Equal(t, 12, b.Len())
}

func TestPrepend(t *testing.T) {
	b := New()
	b.Append([]byte("payload"))
	b.Prepend([]byte("HDR:"))
	require.Equal(t, "HDR:payload", string(b.Bytes()))
}

func TestPrependEmpty(t *testing.T) {
	b := New()
	b.Append([]byte("abc"))
	b.Prepend(nil)
	require.Equal(t, "abc", string(b.Bytes()))
}

func TestDiscard(t *testing.T) {
	b := New()
	b.Append([]byte("0123456789"))
	b.Discard(4)
	require.Equal(t, "456789", string(b.Bytes()))
	b.Discard(100)
	require.Equal(t, 0, b.Len())
}

func TestPrependAfterGrowth(t *testing.T) {
	b := New()
	// force a heap allocation beyond the inline array
	large := make([]byte, smallBufferSize*3)
	for i := range large {
		large[i] = byte(i)
	}
	b.Append(large)
	b.Prepend([]byte{0xFF, 0xFE})
	require.Equal(t, byte(0xFF), b.Bytes()[0])
	require.Equal(t, byte(0xFE), b.Bytes()[1])
	require.Equal(t, large[0], b.Bytes()[2])
	require.Equal(t, len(large)+2, b.Len())
}

func TestResetKeepsCapacity(t *testing.T) {
	b := New()
	b.Append([]byte("some bytes"))
	c := cap(b.data)
	b.Reset()
	require.Equal(t, 0, b.Len())
	require.Equal(t, c, cap(b.data))
}
