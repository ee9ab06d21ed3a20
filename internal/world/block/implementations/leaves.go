package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// LeavesBehavior реализует поведение блока листвы.
// Листва твердая, но прозрачная для окклюзии: сквозь крону
// видны грани соседних блоков.
type LeavesBehavior struct{}

func (b *LeavesBehavior) ID() block.BlockID {
	return block.LeavesBlockID
}

func (b *LeavesBehavior) Name() string {
	return "Leaves"
}

// Opaque возвращает false: листва не заслоняет грани соседей
func (b *LeavesBehavior) Opaque() bool {
	return false
}

func (b *LeavesBehavior) Solid() bool {
	return true
}

func (b *LeavesBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.LeavesBlockID, &LeavesBehavior{})
}
