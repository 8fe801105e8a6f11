package lightgrid

import "github.com/go-gl/mathgl/mgl32"

type BlockFlags uint8

const (
	// Changed blocks are rebuilt from zero on the next update.
	Changed BlockFlags = 1 << iota
	// Contributor blocks add their sector's light to nearby Changed blocks.
	Contributor
)

// Block is one lattice cell. A block without a sector is unresolved: it is
// always black and ignores every state change.
type Block struct {
	sector   Sector
	color    mgl32.Vec3
	oldColor mgl32.Vec3
	bias     int8
	flags    BlockFlags
}

func newBlock(s Sector) Block {
	if s == nil {
		return Block{}
	}
	return Block{sector: s, bias: zBias(s)}
}

func (b Block) Resolved() bool       { return b.sector != nil }
func (b Block) Sector() Sector       { return b.sector }
func (b Block) Flags() BlockFlags    { return b.flags }
func (b Block) Bias() int8           { return b.bias }
func (b Block) Color() mgl32.Vec3    { return b.color }
func (b Block) OldColor() mgl32.Vec3 { return b.oldColor }

// markChanged flags the block for recomputation. The first mark of a cycle
// saves the current colour for readers and restarts accumulation at zero.
// It reports whether the block was clean before the call.
func (b *Block) markChanged() bool {
	if !b.Resolved() {
		return false
	}
	wasClean := b.flags == 0
	if b.flags&Changed == 0 {
		b.oldColor = b.color
		b.color = mgl32.Vec3{}
	}
	b.flags |= Changed | Contributor
	return wasClean
}

func (b *Block) markContributor() bool {
	if !b.Resolved() {
		return false
	}
	wasClean := b.flags == 0
	b.flags |= Contributor
	return wasClean
}

func (b *Block) clearFlags() {
	b.flags = 0
}

// current is the colour readers see: the saved colour while a recompute is
// pending.
func (b *Block) current() mgl32.Vec3 {
	if !b.Resolved() {
		return mgl32.Vec3{}
	}
	if b.flags&Changed != 0 {
		return b.oldColor
	}
	return b.color
}

// applySector adds a sector's light, scaled by a kernel weight, with each
// channel saturating at 1.
func (b *Block) applySector(color mgl32.Vec3, level, weight float32) {
	if !b.Resolved() {
		return
	}
	level -= 0.95 - level
	if level < 0 {
		level = 0
	}
	level *= weight
	if level <= 0 {
		return
	}
	for i := 0; i < 3; i++ {
		c := mgl32.Clamp(color[i]*level, 0, 1)
		if b.color[i]+c > 1 {
			b.color[i] = 1
		} else {
			b.color[i] += c
		}
	}
}

// zBias skews light toward the floor or ceiling from sky exposure and room
// height. Stored only; queries don't apply it because it shows seams at
// block boundaries.
func zBias(s Sector) int8 {
	skyFloor, skyCeil := s.HasSkyMaskedFloor(), s.HasSkyMaskedCeiling()
	switch {
	case skyFloor && !skyCeil:
		return -1
	case !skyFloor && skyCeil:
		return 1
	}
	height := s.CeilingHeight() - s.FloorHeight()
	if height > 100 {
		v := int((height - 100) / 50)
		if v > 127 {
			v = 127
		}
		return int8(v)
	}
	return 0
}
