package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// GlassBehavior реализует поведение блока стекла: твердый,
// но прозрачный для окклюзии граней.
type GlassBehavior struct{}

func (b *GlassBehavior) ID() block.BlockID {
	return block.GlassBlockID
}

func (b *GlassBehavior) Name() string {
	return "Glass"
}

// Opaque возвращает false: сквозь стекло видны соседние блоки
func (b *GlassBehavior) Opaque() bool {
	return false
}

func (b *GlassBehavior) Solid() bool {
	return true
}

func (b *GlassBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.GlassBlockID, &GlassBehavior{})
}
