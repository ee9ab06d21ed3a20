package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// DirtBehavior реализует поведение блока земли — подповерхностный слой
// под травой (три блока ниже верхнего).
type DirtBehavior struct{}

func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

func (b *DirtBehavior) Name() string {
	return "Dirt"
}

func (b *DirtBehavior) Opaque() bool {
	return true
}

func (b *DirtBehavior) Solid() bool {
	return true
}

func (b *DirtBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.DirtBlockID, &DirtBehavior{})
}
