package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// WaterBehavior реализует поведение блока воды.
// Вода не твердая: луч пика проходит сквозь нее, тело не сталкивается,
// и она не заслоняет грани соседей.
type WaterBehavior struct{}

func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

func (b *WaterBehavior) Name() string {
	return "Water"
}

// Opaque возвращает false: вода прозрачна для окклюзии
func (b *WaterBehavior) Opaque() bool {
	return false
}

// Solid возвращает false: воду нельзя выбрать лучом и сквозь нее проходят
func (b *WaterBehavior) Solid() bool {
	return false
}

func (b *WaterBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.WaterBlockID, &WaterBehavior{})
}
