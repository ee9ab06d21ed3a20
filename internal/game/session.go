package game

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// FrameInput — агрегированный ввод одного кадра от слоя трансляции ввода.
// FlyToggle, Break и Place — события-фронты: слой ввода выставляет их
// на один кадр.
type FrameInput struct {
	Move      physics.MoveIntent
	Look      vec.Vec3Float // Единичное направление взгляда
	FlyToggle bool
	Break     bool
	Place     bool
	PlaceKind block.BlockID
}

// HUDState — снимок состояния для HUD-потребителя: опрашивается, не пушится
type HUDState struct {
	Position   vec.Vec3Float      `json:"position"`
	Velocity   vec.Vec3Float      `json:"velocity"`
	Grounded   bool               `json:"grounded"`
	Flying     bool               `json:"flying"`
	VoxelCount int                `json:"voxel_count"`
	HasPick    bool               `json:"has_pick"`
	Pick       physics.PickResult `json:"pick"`
}

// blockEventPayload — полезная нагрузка события block.changed
type blockEventPayload struct {
	Action string        `json:"action"` // break | place
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Z      int           `json:"z"`
	Kind   block.BlockID `json:"kind"`
}

// Session владеет миром и телом и координирует один логический шаг на кадр.
// Дисциплина доступа: чтения кадра (интеграция, пик), затем не более одной
// мутации — всё на горутине игрового цикла. Живое хранилище и поле пика
// принадлежат только этой горутине; внешние читатели (REST-обработчики)
// видят мир через атомарные снимки, публикуемые в конце каждого шага.
type Session struct {
	cfg     *config.Config
	store   *world.VoxelStore
	heights world.HeightMap
	batcher *render.VisibilityBatcher
	solver  *physics.CollisionSolver
	ray     *physics.Raycaster
	bus     eventbus.EventBus

	body    physics.Body
	look    vec.Vec3Float
	pick    physics.PickResult
	hasPick bool

	// Снимки для внешних читателей; живые структуры наружу не отдаются
	hud     atomic.Value // HUDState
	batches atomic.Value // render.InstanceBatches

	// Почтовый ящик ввода: REST-обработчики кладут ввод сюда,
	// игровой цикл забирает его в начале кадра
	inputMu sync.Mutex
	pending FrameInput
}

// NewSession создает игровую сессию над готовым миром.
// Тело появляется на уровне глаз над поверхностью колонки (0,0).
func NewSession(cfg *config.Config, store *world.VoxelStore, heights world.HeightMap, bus eventbus.EventBus) *Session {
	spawnY := float64(cfg.World.SeaLevel)
	if h, ok := heights.Height(0, 0); ok {
		spawnY = float64(h)
	}

	s := &Session{
		cfg:     cfg,
		store:   store,
		heights: heights,
		batcher: render.NewVisibilityBatcher(store, bus),
		ray:     physics.NewRaycaster(cfg.Ray.Step),
		bus:     bus,
		look:    vec.Vec3Float{Z: -1},
		body: physics.Body{
			Pos: vec.Vec3Float{X: 0, Y: spawnY + 0.5 + cfg.Player.Height, Z: 0},
		},
	}

	s.solver = physics.NewCollisionSolver(cfg.Player.SolverConfig(), func(pos vec.Vec3) bool {
		id, exists := store.Get(pos)
		return exists && block.IsSolid(id)
	})

	s.publishSnapshots()
	return s
}

// SubmitInput кладет ввод в почтовый ящик следующего кадра.
// Намерение движения и взгляд перезаписываются, события-фронты
// накапливаются, чтобы триггер не потерялся между кадрами.
func (s *Session) SubmitInput(in FrameInput) {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	s.pending.Move = in.Move
	if in.Look.Length() > 0 {
		s.pending.Look = in.Look
	}
	s.pending.FlyToggle = s.pending.FlyToggle || in.FlyToggle
	s.pending.Break = s.pending.Break || in.Break
	if in.Place {
		s.pending.Place = true
		s.pending.PlaceKind = in.PlaceKind
	}
}

// SubmitAction накапливает только события-фронты, не трогая удерживаемое
// намерение движения и взгляд.
func (s *Session) SubmitAction(in FrameInput) {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	s.pending.FlyToggle = s.pending.FlyToggle || in.FlyToggle
	s.pending.Break = s.pending.Break || in.Break
	if in.Place {
		s.pending.Place = true
		s.pending.PlaceKind = in.PlaceKind
	}
}

// ConsumeInput забирает накопленный ввод и сбрасывает события-фронты.
// Удерживаемое намерение движения сохраняется до следующего SubmitInput.
func (s *Session) ConsumeInput() FrameInput {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	in := s.pending
	s.pending.FlyToggle = false
	s.pending.Break = false
	s.pending.Place = false
	return in
}

// Step выполняет один логический шаг кадра: переключение режима полета,
// интеграция движения, пик луча и не более одной мутации мира.
func (s *Session) Step(in FrameInput, dt float64) {
	started := time.Now()

	if in.FlyToggle {
		s.body.Flying = !s.body.Flying
	}
	if in.Look.Length() > 0 {
		s.look = in.Look.Normalize()
	}

	s.solver.Integrate(&s.body, in.Move, s.look, dt)
	s.pick, s.hasPick = s.ray.Cast(s.body.Pos, s.look, s.store, s.cfg.Ray.Reach)

	// Не более одной мутации на кадр; разрушение имеет приоритет
	switch {
	case in.Break:
		s.breakTarget()
	case in.Place:
		s.placeAtTarget(in.PlaceKind)
	}

	s.publishSnapshots()
	frameDuration.Observe(time.Since(started).Seconds())
}

// breakTarget разрушает воксель текущего пика.
// Политика живет здесь, а не в хранилище: бедрок неразрушим (no-op).
func (s *Session) breakTarget() {
	if !s.hasPick {
		return
	}
	if !block.IsBreakable(s.pick.Kind) {
		logging.Debug("Разрушение отклонено: блок %d в %v неразрушим", s.pick.Kind, s.pick.Voxel)
		return
	}

	s.store.Remove(s.pick.Voxel)
	blocksBroken.Inc()
	s.publishBlockEvent("break", s.pick.Voxel, s.pick.Kind)
}

// placeAtTarget ставит блок в клетку за гранью попадания пика.
// Занятая клетка — no-op; установка твердого блока в объем собственного
// тела отклоняется, чтобы игрок не замуровал сам себя.
func (s *Session) placeAtTarget(kind block.BlockID) {
	if !s.hasPick || !block.IsValidBlockID(kind) {
		return
	}

	target := s.pick.Adjacent
	if _, occupied := s.store.Get(target); occupied {
		return
	}
	if block.IsSolid(kind) && s.intersectsBody(target) {
		logging.Debug("Установка отклонена: клетка %v пересекает тело", target)
		return
	}

	s.store.Set(target, kind)
	blocksPlaced.Inc()
	s.publishBlockEvent("place", target, kind)
}

// intersectsBody проверяет пересечение куба вокселя с AABB тела
func (s *Session) intersectsBody(voxel vec.Vec3) bool {
	radius := s.cfg.Player.Radius
	feet := s.body.Pos.Y - s.cfg.Player.Height

	dx := s.body.Pos.X - float64(voxel.X)
	dz := s.body.Pos.Z - float64(voxel.Z)
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}

	return dx < 0.5+radius &&
		dz < 0.5+radius &&
		feet < float64(voxel.Y)+0.5 &&
		s.body.Pos.Y > float64(voxel.Y)-0.5
}

// publishBlockEvent отправляет уведомление о мутации на шину.
// Батчер видимости подписан на эти события и помечает кэш грязным.
func (s *Session) publishBlockEvent(action string, pos vec.Vec3, kind block.BlockID) {
	if s.bus == nil {
		return
	}

	payload, err := json.Marshal(blockEventPayload{
		Action: action,
		X:      pos.X,
		Y:      pos.Y,
		Z:      pos.Z,
		Kind:   kind,
	})
	if err != nil {
		logging.Error("Ошибка сериализации события блока: %v", err)
		return
	}

	ev := eventbus.NewEnvelope("game", eventbus.EventTypeBlockChanged, payload)
	if err := s.bus.Publish(context.Background(), ev); err != nil {
		logging.Error("Ошибка публикации события блока: %v", err)
	}
}

// publishSnapshots обновляет атомарные снимки для опроса извне.
// Вызывается только горутиной игрового цикла, после всех мутаций кадра:
// батчер и хранилище здесь читаются последний раз за шаг, наружу уходят
// неизменяемые после публикации значения.
func (s *Session) publishSnapshots() {
	s.hud.Store(HUDState{
		Position:   s.body.Pos,
		Velocity:   s.body.Vel,
		Grounded:   s.body.Grounded,
		Flying:     s.body.Flying,
		VoxelCount: s.store.Size(),
		HasPick:    s.hasPick,
		Pick:       s.pick,
	})
	// Батчер мемоизирует по ревизии: без мутаций это возврат кэша,
	// после мутации пересчет выполняется здесь же, на горутине цикла
	s.batches.Store(s.batcher.Batches())
	voxelCount.Set(float64(s.store.Size()))
}

// HUD возвращает последний снимок состояния (потокобезопасно)
func (s *Session) HUD() HUDState {
	return s.hud.Load().(HUDState)
}

// Pick возвращает результат пика последнего опубликованного кадра (потокобезопасно)
func (s *Session) Pick() (physics.PickResult, bool) {
	hud := s.HUD()
	return hud.Pick, hud.HasPick
}

// Batches возвращает батчи рендер-инстансов последнего опубликованного
// кадра (потокобезопасно). Снимок после публикации не изменяется.
func (s *Session) Batches() render.InstanceBatches {
	return s.batches.Load().(render.InstanceBatches)
}

// Body возвращает копию текущего состояния тела
func (s *Session) Body() physics.Body {
	return s.body
}
