// Package protocol implements frame (de)serialization and the packet
// catalog for wire protocol version 498. A frame is
// (length:VarInt, id:VarInt, payload:bytes) where length counts the bytes of
// id+payload; decoding never blocks - PacketReader consumes whatever byte
// spans the transport hands it and reports INCOMPLETE/INVALID/OK per frame.
package protocol

import (
	"fmt"

	"github.com/mgrech/vitamine/pkg/buffer"
	"github.com/mgrech/vitamine/pkg/codec"
)

// ProtocolVersion is the only version this server accepts in Handshake.
const ProtocolVersion = 498

// MaxPayload bounds a frame's id+payload to 1019 bytes (1024 - 5, the
// largest a VarInt length prefix can take).
const MaxPayload = 1024 - 5

// Frame is one decoded wire packet: an id plus its raw payload bytes.
type Frame struct {
	ID      int32
	Payload []byte
}

// EncodeFrame builds the wire bytes for (id, payload): write the payload
// first, then prepend id and length, mirroring how Buffer's Prepend exists
// for exactly this purpose.
func EncodeFrame(id int32, payload []byte) []byte {
	b := buffer.New()
	b.Append(payload)

	var idBuf [5]byte
	idLen := codec.PutVarInt(idBuf[:], id)
	b.Prepend(idBuf[:idLen])

	length := int32(b.Len())
	var lenBuf [5]byte
	lenLen := codec.PutVarInt(lenBuf[:], length)
	b.Prepend(lenBuf[:lenLen])

	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out
}

// DecodeResult is the outcome of attempting to parse one frame off a buffer.
type DecodeResult int

const (
	// DecodeOK means a complete frame was parsed; consumed reports how many
	// leading bytes of the buffer it occupied.
	DecodeOK DecodeResult = iota
	// DecodeIncomplete means not enough bytes have arrived yet; the caller
	// should wait for more and retry from the same buffer offset.
	DecodeIncomplete
	// DecodeInvalid means the bytes present can never form a valid frame
	// (declared length out of range, or a malformed VarInt); fatal.
	DecodeInvalid
)

// DecodeFrame attempts to parse one frame from the head of data. On
// DecodeOK, frame is valid and consumed is the number of bytes to discard
// from the source buffer. On DecodeIncomplete or DecodeInvalid, frame and
// consumed are zero.
func DecodeFrame(data []byte) (frame Frame, consumed int, result DecodeResult, err error) {
	r := codec.NewReader(data)
	length, lerr := r.VarInt()
	if lerr != nil {
		if lerr == codec.ErrDataIncomplete {
			return Frame{}, 0, DecodeIncomplete, nil
		}
		return Frame{}, 0, DecodeInvalid, fmt.Errorf("malformed length varint: %w", lerr)
	}
	if length < 0 || length > MaxPayload {
		return Frame{}, 0, DecodeInvalid, fmt.Errorf("frame length %d out of range (max %d)", length, MaxPayload)
	}

	headerBytes := len(data) - r.Len()
	if r.Len() < int(length) {
		return Frame{}, 0, DecodeIncomplete, nil
	}

	body := data[headerBytes : headerBytes+int(length)]
	br := codec.NewReader(body)
	id, ierr := br.VarInt()
	if ierr != nil {
		return Frame{}, 0, DecodeInvalid, fmt.Errorf("malformed packet id varint: %w", ierr)
	}

	total := headerBytes + int(length)
	return Frame{ID: id, Payload: br.Remaining()}, total, DecodeOK, nil
}
