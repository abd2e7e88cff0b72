package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteRootCompoundHeightmap(t *testing.T) {
	values := make([]int64, 36)
	for i := range values {
		values[i] = int64(i)
	}
	c := NewCompound().PutLongArray("MOTION_BLOCKING", values)

	var buf bytes.Buffer
	require.NoError(t, WriteRootCompound(&buf, "", c))

	data := buf.Bytes()
	require.Equal(t, TagCompound, data[0])
	// empty root name: 2-byte zero length
	require.Equal(t, []byte{0x00, 0x00}, data[1:3])

	pos := 3
	require.Equal(t, TagLongArray, data[pos])
	pos++
	nameLen := int(data[pos])<<8 | int(data[pos+1])
	pos += 2
	require.Equal(t, "MOTION_BLOCKING", string(data[pos:pos+nameLen]))
	pos += nameLen

	count := int32(data[pos])<<24 | int32(data[pos+1])<<16 | int32(data[pos+2])<<8 | int32(data[pos+3])
	require.Equal(t, int32(36), count)
	pos += 4
	pos += 36 * 8

	require.Equal(t, TagEnd, data[pos])
	require.Equal(t, pos+1, len(data))
}
