package world

// Block state ids for the fixed flat-world template. These are plausible
// protocol-498 (1.14.4) global palette ids for the handful of blocks the
// flat template and digging handler ever reference; nothing in this server
// reads a block registry off disk.
const (
	BlockAir        uint16 = 0
	BlockStone      uint16 = 1
	BlockDirt       uint16 = 10
	BlockGrassBlock uint16 = 9
	BlockBedrock    uint16 = 33
)
