package block_test

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/assert"

	// Импортируем реализации блоков для регистрации в init()
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

func TestRegistry_AllKindsRegistered(t *testing.T) {
	kinds := []block.BlockID{
		block.GrassBlockID,
		block.DirtBlockID,
		block.StoneBlockID,
		block.WoodBlockID,
		block.LeavesBlockID,
		block.SandBlockID,
		block.GlassBlockID,
		block.WaterBlockID,
		block.BedrockBlockID,
	}

	assert.Len(t, block.Kinds(), len(kinds), "Регистр должен содержать ровно девять видов")

	for _, id := range kinds {
		behavior, exists := block.Get(id)
		assert.True(t, exists, "Вид %d должен быть зарегистрирован", id)
		assert.Equal(t, id, behavior.ID())
	}

	// Воздух не регистрируется: отсутствие ключа — это воздух
	assert.False(t, block.IsValidBlockID(block.AirBlockID))
}

func TestRegistry_OcclusionTable(t *testing.T) {
	// Прозрачные для окклюзии виды: стекло, вода, листва
	assert.False(t, block.IsOpaque(block.GlassBlockID))
	assert.False(t, block.IsOpaque(block.WaterBlockID))
	assert.False(t, block.IsOpaque(block.LeavesBlockID))
	assert.False(t, block.IsOpaque(block.AirBlockID))

	assert.True(t, block.IsOpaque(block.GrassBlockID))
	assert.True(t, block.IsOpaque(block.DirtBlockID))
	assert.True(t, block.IsOpaque(block.StoneBlockID))
	assert.True(t, block.IsOpaque(block.WoodBlockID))
	assert.True(t, block.IsOpaque(block.SandBlockID))
	assert.True(t, block.IsOpaque(block.BedrockBlockID))
}

func TestRegistry_Solidity(t *testing.T) {
	// Только вода и воздух не твердые
	assert.False(t, block.IsSolid(block.WaterBlockID))
	assert.False(t, block.IsSolid(block.AirBlockID))

	assert.True(t, block.IsSolid(block.GlassBlockID))
	assert.True(t, block.IsSolid(block.LeavesBlockID))
	assert.True(t, block.IsSolid(block.BedrockBlockID))
}

func TestRegistry_BedrockUnbreakable(t *testing.T) {
	assert.False(t, block.IsBreakable(block.BedrockBlockID))
	assert.True(t, block.IsBreakable(block.StoneBlockID))
	assert.True(t, block.IsBreakable(block.WaterBlockID))
}
