package protocol

import "github.com/mgrech/vitamine/pkg/buffer"

// PacketReader defragments a byte stream into frames. Feed is called once
// per byte span the transport delivers (in order, per connection); it
// invokes onFrame for every complete frame found and onError exactly once,
// the moment a fatal framing error is detected, after which the reader must
// not be fed again.
type PacketReader struct {
	buf     *buffer.Buffer
	onFrame func(Frame)
	onError func(error)
}

// NewPacketReader builds a reader that calls onFrame for each decoded frame
// and onError (at most once) on a fatal framing error.
func NewPacketReader(onFrame func(Frame), onError func(error)) *PacketReader {
	return &PacketReader{
		buf:     buffer.New(),
		onFrame: onFrame,
		onError: onError,
	}
}

// Feed appends span to the internal buffer and repeatedly attempts to parse
// frames: each OK discards the consumed prefix, invokes the frame callback,
// and loops; INCOMPLETE leaves the buffer untouched and returns, waiting for
// more bytes; INVALID invokes the error callback and stops permanently.
func (pr *PacketReader) Feed(span []byte) {
	pr.buf.Append(span)

	for {
		frame, consumed, result, err := DecodeFrame(pr.buf.Bytes())
		switch result {
		case DecodeOK:
			pr.buf.Discard(consumed)
			pr.onFrame(frame)
		case DecodeIncomplete:
			return
		case DecodeInvalid:
			pr.onError(err)
			return
		}
	}
}
