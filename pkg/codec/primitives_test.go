package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, 127, 128, 255, 25565, 2097151, 2147483647, -1, -2147483648}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		require.True(t, buf.Len() >= 1 && buf.Len() <= 5)

		got, err := NewReader(buf.Bytes()).VarInt()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarIntKnownEncodings(t *testing.T) {
	tests := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, tt.value))
		require.Equal(t, tt.expected, buf.Bytes())
	}
}

func TestVarIntTooLongIsInvalid(t *testing.T) {
	// six continuation bytes: never terminates within 5 bytes
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := NewReader(data).VarInt()
	require.ErrorIs(t, err, ErrDataInvalid)
}

func TestVarIntIncomplete(t *testing.T) {
	data := []byte{0x80, 0x80}
	_, err := NewReader(data).VarInt()
	require.ErrorIs(t, err, ErrDataIncomplete)
}

func TestVarIntSize(t *testing.T) {
	tests := []struct {
		value int32
		size  int
	}{
		{0, 1}, {127, 1}, {128, 2}, {2097151, 3}, {2147483647, 5}, {-1, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.size, VarIntSize(tt.value))
	}
}

func TestStringRoundTrip(t *testing.T) {
	values := []string{"", "hello", "héllo wörld", "日本語テスト"}
	for _, s := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteString(&buf, s))
		got, err := NewReader(buf.Bytes()).String()
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestBoolRejectsNonCanonical(t *testing.T) {
	_, err := NewReader([]byte{0x02}).Bool()
	require.ErrorIs(t, err, ErrDataInvalid)
}

func TestUUIDRoundTrip(t *testing.T) {
	u := [16]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0xA0, 0xB0, 0xC0, 0xD0, 0xE0, 0xF0, 0xFE, 0xFF}
	var buf bytes.Buffer
	require.NoError(t, WriteUUID(&buf, u))
	require.Equal(t, u[:8], buf.Bytes()[:8], "high 8 bytes must be written first")

	got, err := NewReader(buf.Bytes()).UUID()
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestPositionRoundTrip(t *testing.T) {
	cases := []struct{ x, y, z int32 }{
		{0, 0, 0},
		{1, 64, 1},
		{-1, 255, -1},
		{33554431, 4095, -33554432},
		{-33554432, 0, 33554431},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, WritePosition(&buf, c.x, c.y, c.z))
		x, y, z, err := NewReader(buf.Bytes()).Position()
		require.NoError(t, err)
		require.Equal(t, c.x, x)
		require.Equal(t, c.y, y)
		require.Equal(t, c.z, z)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFloat32(&buf, -12.5))
	require.NoError(t, WriteFloat64(&buf, 3.14159265358979))

	r := NewReader(buf.Bytes())
	f32, err := r.Float32()
	require.NoError(t, err)
	require.Equal(t, float32(-12.5), f32)

	f64, err := r.Float64()
	require.NoError(t, err)
	require.Equal(t, 3.14159265358979, f64)
}

func TestRemainingConsumesTail(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	b, _ := r.Byte()
	require.Equal(t, byte(1), b)
	require.Equal(t, []byte{2, 3, 4}, r.Remaining())
	require.Equal(t, 0, r.Len())
}
