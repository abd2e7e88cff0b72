package protocol

import (
	"github.com/mgrech/vitamine/pkg/buffer"
	"github.com/mgrech/vitamine/pkg/codec"
)

// Entity metadata value type ids. MetadataWriter only writes BYTE and POSE
// entries; the others are listed for reference.
const (
	MetaTypeByte    int32 = 0
	MetaTypeVarInt  int32 = 1
	MetaTypeFloat   int32 = 2
	MetaTypeBool    int32 = 7
	MetaTypePose    int32 = 18
)

// Metadata bitfield flags for the "entity flags" byte index.
const (
	MetaFlagCrouching byte = 0x02
	MetaFlagSprinting byte = 0x08
)

// Pose enum values for the POSE metadata entry.
const (
	PoseStanding int32 = 0
	PoseSneaking int32 = 5
)

// MetaIndexPose is the metadata index the POSE entry is carried at.
const MetaIndexPose byte = 6

// MetadataWriter accumulates (index, type, value) entries for an
// EntityMetadata packet, terminated by the 0xff sentinel.
type MetadataWriter struct {
	b *buffer.Buffer
}

// NewMetadataWriter starts a fresh metadata entry list.
func NewMetadataWriter() *MetadataWriter {
	return &MetadataWriter{b: buffer.New()}
}

// PutByte appends a BYTE-typed entry (the bitfield index, among others).
func (m *MetadataWriter) PutByte(index byte, value byte) *MetadataWriter {
	codec.WriteByteValue(m.b, index)
	codec.WriteVarInt(m.b, MetaTypeByte)
	codec.WriteByteValue(m.b, value)
	return m
}

// PutPose appends a POSE-typed entry (a VarInt enum on the wire).
func (m *MetadataWriter) PutPose(index byte, pose int32) *MetadataWriter {
	codec.WriteByteValue(m.b, index)
	codec.WriteVarInt(m.b, MetaTypePose)
	codec.WriteVarInt(m.b, pose)
	return m
}

// Bytes closes the entry list with the 0xff sentinel and returns it.
func (m *MetadataWriter) Bytes() []byte {
	codec.WriteByteValue(m.b, 0xff)
	out := make([]byte, m.b.Len())
	copy(out, m.b.Bytes())
	return out
}

// EncodeEntityMetadata wraps a pre-built entry list (see MetadataWriter) into
// an EntityMetadata packet for the given entity.
func EncodeEntityMetadata(entityID int32, entries []byte) []byte {
	return build(IDEntityMetadata, func(b *buffer.Buffer) {
		codec.WriteVarInt(b, entityID)
		b.Append(entries)
	})
}
