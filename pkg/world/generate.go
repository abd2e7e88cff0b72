package world

// generateFlat builds the fixed flat-world template: only section 0 is
// materialized, with bedrock at y=0, stone through y=13, dirt at y=14,
// grass at y=15, and a uniform heightmap of 16 everywhere. No column ever
// differs by coordinate - there is no terrain noise in this world.
func generateFlat(coord Coord) *Chunk {
	c := &Chunk{Coord: coord}
	section := &Section{}
	c.sections[0] = section

	for x := 0; x < chunkWidth; x++ {
		for z := 0; z < chunkWidth; z++ {
			section.blocks[blockIndex(x, 0, z)] = BlockBedrock
			for y := 1; y <= 13; y++ {
				section.blocks[blockIndex(x, y, z)] = BlockStone
			}
			section.blocks[blockIndex(x, 14, z)] = BlockDirt
			section.blocks[blockIndex(x, 15, z)] = BlockGrassBlock
			c.heightmap[z*chunkWidth+x] = 16
		}
	}
	return c
}
