package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/game"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"

	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

// Маленький мир: одна колонка с настраиваемым верхним блоком.
// Тело появляется стоящим на колонке (0,0), взгляд вниз по умолчанию.
func newTestSession(t *testing.T, blocks map[vec.Vec3]block.BlockID, surfaceY int) (*game.Session, *world.VoxelStore) {
	t.Helper()

	store := world.NewVoxelStore()
	for pos, id := range blocks {
		store.Set(pos, id)
	}

	heights := world.HeightMap{
		{X: 0, Z: 0}: surfaceY,
	}

	cfg := config.Default()
	return game.NewSession(cfg, store, heights, nil), store
}

func lookDown() game.FrameInput {
	return game.FrameInput{Look: vec.Vec3Float{Y: -1}}
}

func TestBreak_BedrockIsImmutable(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
	}, 0)

	in := lookDown()
	in.Break = true
	sess.Step(in, 0.001)

	// Бедрок остался на месте, ревизия не сдвинулась
	id, exists := store.Get(vec.Vec3{X: 0, Y: 0, Z: 0})
	require.True(t, exists, "Бедрок должен пережить попытку разрушения")
	assert.Equal(t, block.BedrockBlockID, id)
	assert.Equal(t, 1, store.Size())
}

func TestBreak_RemovesTargetVoxel(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 0, Y: 1, Z: 0}: block.GrassBlockID,
	}, 1)

	in := lookDown()
	in.Break = true
	sess.Step(in, 0.001)

	_, exists := store.Get(vec.Vec3{X: 0, Y: 1, Z: 0})
	assert.False(t, exists, "Трава должна быть разрушена")
	assert.Equal(t, 1, store.Size())

	pick, ok := sess.Pick()
	require.True(t, ok)
	assert.Equal(t, block.GrassBlockID, pick.Kind)
}

func TestPlace_OnAdjacentCell(t *testing.T) {
	// Цель сбоку: клетка за гранью попадания не пересекает тело
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 3, Y: 2, Z: 0}: block.GrassBlockID,
	}, 0)

	in := game.FrameInput{Look: vec.Vec3Float{X: 1}}
	in.Place = true
	in.PlaceKind = block.StoneBlockID
	sess.Step(in, 0.001)

	id, exists := store.Get(vec.Vec3{X: 2, Y: 2, Z: 0})
	require.True(t, exists, "Блок должен встать в клетку за гранью попадания")
	assert.Equal(t, block.StoneBlockID, id)
}

func TestPlaceBreak_RoundTripRestoresStore(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 3, Y: 2, Z: 0}: block.GrassBlockID,
	}, 0)

	before := make(map[vec.Vec3]block.BlockID)
	store.ForEach(func(pos vec.Vec3, id block.BlockID) { before[pos] = id })

	// Установка в пустую клетку перед травой
	in := game.FrameInput{Look: vec.Vec3Float{X: 1}}
	in.Place = true
	in.PlaceKind = block.StoneBlockID
	sess.Step(in, 0.001)

	target := vec.Vec3{X: 2, Y: 2, Z: 0}
	_, exists := store.Get(target)
	require.True(t, exists, "Камень должен быть установлен")

	// На следующем кадре луч бьет в свежепоставленный камень
	in = game.FrameInput{Look: vec.Vec3Float{X: 1}}
	in.Break = true
	sess.Step(in, 0.001)

	_, exists = store.Get(target)
	assert.False(t, exists, "Клетка должна снова стать пустой")

	after := make(map[vec.Vec3]block.BlockID)
	store.ForEach(func(pos vec.Vec3, id block.BlockID) { after[pos] = id })
	assert.Equal(t, before, after, "Установка и разрушение должны вернуть хранилище к исходному содержимому")
}

func TestPlace_OccupiedCellIsNoOp(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 0, Y: 1, Z: 0}: block.WaterBlockID,
	}, 0)

	// Луч проходит сквозь воду и бьет в бедрок; соседняя клетка занята водой
	in := lookDown()
	in.Place = true
	in.PlaceKind = block.StoneBlockID
	sess.Step(in, 0.001)

	id, _ := store.Get(vec.Vec3{X: 0, Y: 1, Z: 0})
	assert.Equal(t, block.WaterBlockID, id, "Занятая клетка не перезаписывается")
	assert.Equal(t, 2, store.Size())
}

func TestPlace_RejectsSelfEntombment(t *testing.T) {
	// Тело стоит на траве; соседняя клетка попадания пересекает объем тела
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 2, Z: 0}: block.GrassBlockID,
	}, 2)

	in := lookDown()
	in.Place = true
	in.PlaceKind = block.StoneBlockID
	sess.Step(in, 0.001)

	_, exists := store.Get(vec.Vec3{X: 0, Y: 3, Z: 0})
	assert.False(t, exists, "Твердый блок внутри тела должен быть отклонен")
}

func TestPlace_NonSolidInsideBodyAllowed(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 2, Z: 0}: block.GrassBlockID,
	}, 2)

	in := lookDown()
	in.Place = true
	in.PlaceKind = block.WaterBlockID
	sess.Step(in, 0.001)

	id, exists := store.Get(vec.Vec3{X: 0, Y: 3, Z: 0})
	require.True(t, exists, "Вода не замуровывает и ставится внутри тела")
	assert.Equal(t, block.WaterBlockID, id)
}

func TestPlace_InvalidKindIsNoOp(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
	}, 0)

	in := lookDown()
	in.Place = true
	in.PlaceKind = block.AirBlockID
	sess.Step(in, 0.001)

	assert.Equal(t, 1, store.Size(), "Воздух не является устанавливаемым видом")
}

func TestStep_FlyToggle(t *testing.T) {
	sess, _ := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
	}, 0)

	in := lookDown()
	in.FlyToggle = true
	sess.Step(in, 0.001)
	assert.True(t, sess.Body().Flying)

	sess.Step(in, 0.001)
	assert.False(t, sess.Body().Flying, "Повторное переключение возвращает ходьбу")
}

func TestStep_BreakTakesPriorityOverPlace(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 0, Y: 1, Z: 0}: block.DirtBlockID,
	}, 1)

	in := lookDown()
	in.Break = true
	in.Place = true
	in.PlaceKind = block.StoneBlockID
	sess.Step(in, 0.001)

	// Один кадр — одна мутация: земля разрушена, камень не поставлен
	_, exists := store.Get(vec.Vec3{X: 0, Y: 1, Z: 0})
	assert.False(t, exists)
	assert.Equal(t, 1, store.Size())
}

func TestHUD_ReflectsSessionState(t *testing.T) {
	sess, store := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
	}, 0)

	sess.Step(lookDown(), 0.001)

	hud := sess.HUD()
	assert.Equal(t, store.Size(), hud.VoxelCount)
	assert.True(t, hud.HasPick, "Бедрок под ногами должен быть в пике")
	assert.Equal(t, block.BedrockBlockID, hud.Pick.Kind)
	assert.Equal(t, sess.Body().Pos, hud.Position)
}

func TestBatches_ExposeAfterMutation(t *testing.T) {
	sess, _ := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 3, Y: 2, Z: 0}: block.GrassBlockID,
	}, 0)

	batches := sess.Batches()
	require.Len(t, batches[block.BedrockBlockID], 1)

	in := game.FrameInput{Look: vec.Vec3Float{X: 1}}
	in.Place = true
	in.PlaceKind = block.StoneBlockID
	sess.Step(in, 0.001)

	batches = sess.Batches()
	assert.Len(t, batches[block.StoneBlockID], 1, "Новый блок должен появиться в батчах")
}

func TestSession_SnapshotReadsDuringFrames(t *testing.T) {
	// Снимки Pick/Batches/HUD должны быть безопасны для чтения из чужих
	// горутин (REST-обработчики), пока игровой цикл мутирует мир
	sess, _ := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
		{X: 3, Y: 2, Z: 0}: block.GrassBlockID,
	}, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			in := game.FrameInput{Look: vec.Vec3Float{X: 1}}
			if i%2 == 0 {
				in.Place = true
				in.PlaceKind = block.StoneBlockID
			} else {
				in.Break = true
			}
			sess.Step(in, 0.001)
		}
	}()

	reads := 0
	for {
		select {
		case <-done:
			require.Greater(t, reads, 0)
			hud := sess.HUD()
			assert.GreaterOrEqual(t, hud.VoxelCount, 2, "Бедрок и трава должны пережить цикл мутаций")
			return
		default:
			_, _ = sess.Pick()
			for _, list := range sess.Batches() {
				_ = len(list)
			}
			_ = sess.HUD()
			reads++
		}
	}
}

func TestInputMailbox_AccumulatesTriggers(t *testing.T) {
	sess, _ := newTestSession(t, map[vec.Vec3]block.BlockID{
		{X: 0, Y: 0, Z: 0}: block.BedrockBlockID,
	}, 0)

	sess.SubmitInput(game.FrameInput{Break: true, Move: physics.MoveIntent{Forward: 1}})
	sess.SubmitInput(game.FrameInput{Move: physics.MoveIntent{Forward: 0.5}})

	in := sess.ConsumeInput()
	assert.True(t, in.Break, "Триггер не должен теряться между кадрами")
	assert.Equal(t, 0.5, in.Move.Forward, "Намерение движения перезаписывается последним вводом")

	in = sess.ConsumeInput()
	assert.False(t, in.Break, "Триггер сбрасывается после забора")
	assert.Equal(t, 0.5, in.Move.Forward, "Удерживаемое движение сохраняется")
}
