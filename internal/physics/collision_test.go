package physics

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

const testDt = 1.0 / 60.0

func testConfig() SolverConfig {
	return SolverConfig{
		WalkSpeed:    4.0,
		SprintFactor: 1.6,
		FlySpeed:     10.0,
		Gravity:      25.0,
		JumpImpulse:  8.0,
		TerminalFall: 40.0,
		Radius:       0.35,
		Height:       1.7,
		DecayBase:    0.001,
		FloorY:       -0.5,
	}
}

// solverFor связывает решатель с хранилищем через коллбек твердости
func solverFor(store *world.VoxelStore, cfg SolverConfig) *CollisionSolver {
	return NewCollisionSolver(cfg, func(pos vec.Vec3) bool {
		id, exists := store.Get(pos)
		return exists && block.IsSolid(id)
	})
}

// flatPlatform кладет квадрат камня на высоте y
func flatPlatform(store *world.VoxelStore, y, half int) {
	for x := -half; x <= half; x++ {
		for z := -half; z <= half; z++ {
			store.Set(vec.Vec3{X: x, Y: y, Z: z}, block.StoneBlockID)
		}
	}
}

func TestIntegrate_GroundingConvergence(t *testing.T) {
	// Тело, брошенное над плоским рельефом без горизонтального намерения,
	// оседает на поверхность: grounded=true, вертикальная скорость 0,
	// позиция — верх блока плюс высота тела
	store := world.NewVoxelStore()
	flatPlatform(store, 3, 4)

	cfg := testConfig()
	solver := solverFor(store, cfg)
	body := &Body{Pos: vec.Vec3Float{X: 0, Y: 10, Z: 0}}

	for i := 0; i < 600; i++ {
		solver.Integrate(body, MoveIntent{}, vec.Vec3Float{X: 1}, testDt)
	}

	assert.True(t, body.Grounded, "Тело должно опереться на платформу")
	assert.Equal(t, 0.0, body.Vel.Y, "Вертикальная скорость в покое равна нулю")
	assert.InDelta(t, 3.5+cfg.Height, body.Pos.Y, 0.02,
		"Позиция покоя — верх блока (y+0.5) плюс высота тела")
}

func TestIntegrate_AxisSeparatedSliding(t *testing.T) {
	// Стена блокирует только ось X: диагональное движение продолжает
	// скользить по свободной оси Z в том же шаге
	store := world.NewVoxelStore()
	for z := -2; z <= 12; z++ {
		for y := 2; y <= 5; y++ {
			store.Set(vec.Vec3{X: 2, Y: y, Z: z}, block.StoneBlockID)
		}
	}

	cfg := testConfig()
	solver := solverFor(store, cfg)
	body := &Body{Pos: vec.Vec3Float{X: 1.0, Y: 4, Z: 0}, Flying: true}

	look := vec.Vec3Float{X: 1}
	intent := MoveIntent{Forward: 1, Strafe: 1}

	for i := 0; i < 60; i++ {
		solver.Integrate(body, intent, look, testDt)
	}

	assert.Equal(t, 0.0, body.Vel.X, "Скорость заблокированной оси обнуляется")
	assert.Greater(t, body.Vel.Z, 0.0, "Скорость свободной оси не затрагивается")
	assert.Greater(t, body.Pos.Z, 1.0, "Тело продолжает скользить вдоль стены")
	assert.LessOrEqual(t, body.Pos.X, 2.0-0.5-cfg.Radius+1e-9, "Тело не проникает в стену")
}

func TestIntegrate_JumpOnlyWhenGrounded(t *testing.T) {
	store := world.NewVoxelStore()
	flatPlatform(store, 3, 4)

	cfg := testConfig()
	solver := solverFor(store, cfg)
	body := &Body{Pos: vec.Vec3Float{X: 0, Y: 3.5 + cfg.Height, Z: 0}, Grounded: true}

	solver.Integrate(body, MoveIntent{Jump: true}, vec.Vec3Float{X: 1}, testDt)
	require.Greater(t, body.Vel.Y, 0.0, "Прыжок с опоры дает импульс вверх")
	assert.False(t, body.Grounded)

	// В воздухе повторный прыжок не срабатывает
	risingVel := body.Vel.Y
	solver.Integrate(body, MoveIntent{Jump: true}, vec.Vec3Float{X: 1}, testDt)
	assert.Less(t, body.Vel.Y, risingVel, "В полете действует только гравитация")
}

func TestIntegrate_TerminalFallClamp(t *testing.T) {
	// Долгое падение в пустом мире упирается в предельную скорость
	store := world.NewVoxelStore()
	cfg := testConfig()
	cfg.FloorY = -1e9 // Пол далеко внизу, падению ничего не мешает
	solver := solverFor(store, cfg)

	body := &Body{Pos: vec.Vec3Float{X: 0, Y: 0, Z: 0}}
	for i := 0; i < 300; i++ {
		solver.Integrate(body, MoveIntent{}, vec.Vec3Float{X: 1}, testDt)
	}

	assert.Equal(t, -cfg.TerminalFall, body.Vel.Y, "Скорость падения ограничена предельной")
}

func TestIntegrate_FloorClamp(t *testing.T) {
	// Жесткий пол не дает упасть ниже минимальной координаты мира
	store := world.NewVoxelStore()
	cfg := testConfig()
	solver := solverFor(store, cfg)

	body := &Body{Pos: vec.Vec3Float{X: 100, Y: 2, Z: 100}}
	for i := 0; i < 300; i++ {
		solver.Integrate(body, MoveIntent{}, vec.Vec3Float{X: 1}, testDt)
	}

	assert.Equal(t, cfg.FloorY+cfg.Height, body.Pos.Y)
	assert.True(t, body.Grounded)
	assert.Equal(t, 0.0, body.Vel.Y)
}

func TestIntegrate_SprintAndFlySpeeds(t *testing.T) {
	// Целевая скорость: ходьба, спринт-множитель, отдельная скорость полета
	store := world.NewVoxelStore()
	cfg := testConfig()
	cfg.FloorY = -1e9
	solver := solverFor(store, cfg)

	walk := &Body{Pos: vec.Vec3Float{Y: 50}}
	sprint := &Body{Pos: vec.Vec3Float{Y: 50}}
	fly := &Body{Pos: vec.Vec3Float{Y: 50}, Flying: true}

	look := vec.Vec3Float{X: 1}
	for i := 0; i < 600; i++ {
		solver.Integrate(walk, MoveIntent{Forward: 1}, look, testDt)
		solver.Integrate(sprint, MoveIntent{Forward: 1, Sprint: true}, look, testDt)
		solver.Integrate(fly, MoveIntent{Forward: 1}, look, testDt)
	}

	assert.InDelta(t, cfg.WalkSpeed, walk.Vel.X, 0.05)
	assert.InDelta(t, cfg.WalkSpeed*cfg.SprintFactor, sprint.Vel.X, 0.05)
	assert.InDelta(t, cfg.FlySpeed, fly.Vel.X, 0.05)
}

func TestIntegrate_FlyVerticalIntent(t *testing.T) {
	// В полете вертикаль сглаживается к намерению, гравитация не действует
	store := world.NewVoxelStore()
	cfg := testConfig()
	solver := solverFor(store, cfg)

	body := &Body{Pos: vec.Vec3Float{Y: 20}, Flying: true}

	for i := 0; i < 120; i++ {
		solver.Integrate(body, MoveIntent{Ascend: 1}, vec.Vec3Float{X: 1}, testDt)
	}
	assert.Greater(t, body.Vel.Y, 0.0, "Намерение вверх поднимает тело")
	assert.Greater(t, body.Pos.Y, 20.0)

	// Без намерения вертикальная скорость затухает к нулю
	for i := 0; i < 600; i++ {
		solver.Integrate(body, MoveIntent{}, vec.Vec3Float{X: 1}, testDt)
	}
	assert.InDelta(t, 0.0, body.Vel.Y, 0.05, "Гравитация в полете не действует")
}

func TestIntegrate_FrameRateIndependence(t *testing.T) {
	// Сглаживание скорости дает одинаковый результат при разном шаге кадра
	store := world.NewVoxelStore()
	cfg := testConfig()
	cfg.FloorY = -1e9
	solver := solverFor(store, cfg)

	coarse := &Body{Pos: vec.Vec3Float{Y: 50}, Flying: true}
	fine := &Body{Pos: vec.Vec3Float{Y: 50}, Flying: true}
	look := vec.Vec3Float{X: 1}

	// Одна секунда: 10 крупных шагов против 100 мелких
	for i := 0; i < 10; i++ {
		solver.Integrate(coarse, MoveIntent{Forward: 1}, look, 0.1)
	}
	for i := 0; i < 100; i++ {
		solver.Integrate(fine, MoveIntent{Forward: 1}, look, 0.01)
	}

	assert.InDelta(t, fine.Vel.X, coarse.Vel.X, 0.01,
		"Экспоненциальное сглаживание не должно зависеть от частоты кадров")
}
