package world

import (
	"sync"

	"github.com/mgrech/vitamine/pkg/buffer"
	"github.com/mgrech/vitamine/pkg/codec"
)

// Coord identifies a chunk column by its chunk-grid x/z (block coordinate
// divided by 16, floored).
type Coord struct {
	X, Z int32
}

const (
	sectionsPerChunk = 16
	sectionHeight    = 16
	chunkWidth       = 16
	blocksPerSection = chunkWidth * sectionHeight * chunkWidth
)

// Section holds one 16x16x16 slice of block ids. A chunk's section index i
// exists (is non-nil) iff some block in that vertical slice has been set
// non-air; the flat-world template only ever materializes section 0.
type Section struct {
	blocks [blocksPerSection]uint16
}

func blockIndex(x, y, z int) int {
	return (y*chunkWidth+z)*chunkWidth + x
}

// Chunk is one column of up to 16 sections plus its biome grid and
// heightmap. Callers must hold the chunk's own lock before touching
// sections, biomes, or the heightmap; ChunkStore never holds its own lock
// while doing so.
type Chunk struct {
	mu        sync.Mutex
	Coord     Coord
	sections  [sectionsPerChunk]*Section
	biomes    [chunkWidth * chunkWidth]int32
	heightmap [chunkWidth * chunkWidth]uint16
}

// Lock acquires the chunk's own lock, to be held across any read or write
// of its blocks, biomes, or heightmap.
func (c *Chunk) Lock() { c.mu.Lock() }

// Unlock releases the chunk's own lock.
func (c *Chunk) Unlock() { c.mu.Unlock() }

// BlockAt reads the block id at the given in-chunk coordinates (each
// 0..15, y 0..255). The caller must hold the chunk's lock. An unmaterialized
// section reads as air.
func (c *Chunk) BlockAt(x, y, z int) uint16 {
	section := c.sections[y/sectionHeight]
	if section == nil {
		return BlockAir
	}
	return section.blocks[blockIndex(x, y%sectionHeight, z)]
}

// SetBlockAt writes the block id at the given in-chunk coordinates,
// materializing the containing section on first non-air write. The caller
// must hold the chunk's lock.
func (c *Chunk) SetBlockAt(x, y, z int, id uint16) {
	idx := y / sectionHeight
	section := c.sections[idx]
	if section == nil {
		if id == BlockAir {
			return
		}
		section = &Section{}
		c.sections[idx] = section
	}
	section.blocks[blockIndex(x, y%sectionHeight, z)] = id
}

// primaryBitmask reports which sections are materialized, one bit per
// section index, low bit first. The caller must hold the chunk's lock.
func (c *Chunk) primaryBitmask() int32 {
	var mask int32
	for i, s := range c.sections {
		if s != nil {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Serialize builds the wire triple a ChunkData packet needs: the primary
// bitmask, the heightmap NBT document, and the concatenated
// sections-then-biomes payload. The caller must hold the chunk's lock.
func (c *Chunk) Serialize() (primaryBitmask int32, heightmapNBT []byte, sectionsAndBiomes []byte) {
	primaryBitmask = c.primaryBitmask()
	heightmapNBT = c.encodeHeightmapNBT()
	sectionsAndBiomes = c.encodeSectionsAndBiomes()
	return
}

// encodeHeightmapNBT packs the 256 heightmap values as one continuous
// LSB-first bitstream into 36 64-bit words (256*9 == 36*64 bits exactly, so
// no group ever wastes a partial word) and writes each word as a
// big-endian long in the MOTION_BLOCKING NBT array.
func (c *Chunk) encodeHeightmapNBT() []byte {
	values := make([]uint16, len(c.heightmap))
	copy(values, c.heightmap[:])
	words := codec.PackContinuous(values, 9)
	longs := make([]int64, len(words))
	for i, w := range words {
		longs[i] = int64(w)
	}

	comp := codec.NewCompound()
	comp.PutLongArray("MOTION_BLOCKING", longs)

	b := buffer.New()
	_ = codec.WriteRootCompound(b, "", comp)
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out
}

func (c *Chunk) encodeSectionsAndBiomes() []byte {
	var out []byte
	for _, s := range c.sections {
		if s == nil {
			continue
		}
		out = append(out, encodeSection(s)...)
	}
	for _, b := range c.biomes {
		out = append(out, byte(b>>24), byte(b>>16), byte(b>>8), byte(b))
	}
	return out
}

// encodeSection builds one section's wire payload: block count (hardcoded
// full per section, matching the wire contract), bits-per-block, the
// direct 14-bit palette, and the packed long array.
func encodeSection(s *Section) []byte {
	var out []byte
	out = append(out, byte(blocksPerSection>>8), byte(blocksPerSection&0xFF))
	out = append(out, 14) // bits per block, direct palette (no indirect palette used)

	values := make([]uint16, len(s.blocks))
	copy(values, s.blocks[:])
	packed := codec.Pack16To14(values)

	var varintBuf [5]byte
	n := codec.PutVarInt(varintBuf[:], int32(len(packed)/8))
	out = append(out, varintBuf[:n]...)
	out = append(out, packed...)
	return out
}
