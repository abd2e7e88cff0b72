package codec

import "io"

// NBT tag type ids, per the named binary tag format.
const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// Compound is an ordered sequence of named tags. The server only ever needs
// to emit a small fixed document (the chunk heightmap), so there is no
// generic Tag interface here - just enough to build and write that shape.
// Deserialization is not required by the wire protocol this server speaks.
type Compound struct {
	entries []compoundEntry
}

type compoundEntry struct {
	tagType    byte
	name       string
	writeValue func(w io.Writer) error
}

// NewCompound returns an empty compound tag builder.
func NewCompound() *Compound {
	return &Compound{}
}

// PutLongArray appends a named LONG_ARRAY tag.
func (c *Compound) PutLongArray(name string, values []int64) *Compound {
	c.entries = append(c.entries, compoundEntry{
		tagType: TagLongArray,
		name:    name,
		writeValue: func(w io.Writer) error {
			if err := WriteInt32(w, int32(len(values))); err != nil {
				return err
			}
			for _, v := range values {
				if err := WriteInt64(w, v); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return c
}

// WriteRootCompound writes c as a top-level NBT tag: (type, name-length:i16,
// name, value), where value is the entries terminated by a TagEnd byte.
func WriteRootCompound(w io.Writer, name string, c *Compound) error {
	if err := WriteByteValue(w, TagCompound); err != nil {
		return err
	}
	if err := writeNBTName(w, name); err != nil {
		return err
	}
	return writeCompoundBody(w, c)
}

func writeCompoundBody(w io.Writer, c *Compound) error {
	for _, e := range c.entries {
		if err := WriteByteValue(w, e.tagType); err != nil {
			return err
		}
		if err := writeNBTName(w, e.name); err != nil {
			return err
		}
		if err := e.writeValue(w); err != nil {
			return err
		}
	}
	return WriteByteValue(w, TagEnd)
}

func writeNBTName(w io.Writer, name string) error {
	b := []byte(name)
	if err := writeNameLength(w, int16(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// writeNameLength writes the NBT name-length field: a big-endian signed i16,
// distinct from the codec's VarInt-prefixed String used elsewhere on the
// wire.
func writeNameLength(w io.Writer, v int16) error {
	var buf [2]byte
	buf[0] = byte(v >> 8)
	buf[1] = byte(v)
	_, err := w.Write(buf[:])
	return err
}
