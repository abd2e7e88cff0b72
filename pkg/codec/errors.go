package codec

import "errors"

// ErrDataIncomplete means the reader ran out of bytes mid-value. It is
// benign: the caller should wait for more bytes and retry the same parse
// from the start.
var ErrDataIncomplete = errors.New("codec: data incomplete")

// ErrDataInvalid means the bytes present can never form a valid value (a
// VarInt that runs past 5 bytes still continuing, a bool byte that isn't 0
// or 1). It is fatal: the connection that produced it is disconnected.
var ErrDataInvalid = errors.New("codec: data invalid")
