package physics

import (
	"math"

	"github.com/annel0/voxel-engine/internal/vec"
)

// SolverConfig — настраиваемые константы интеграции и коллизий.
// Значения приходят из конфигурации, а не зашиты в реализацию.
type SolverConfig struct {
	WalkSpeed    float64 // Базовая скорость ходьбы, м/с
	SprintFactor float64 // Множитель скорости при спринте
	FlySpeed     float64 // Скорость в режиме полета, м/с
	Gravity      float64 // Ускорение падения, м/с²
	JumpImpulse  float64 // Вертикальная скорость прыжка, м/с
	TerminalFall float64 // Предельная скорость падения, м/с
	Radius       float64 // Радиус цилиндра тела
	Height       float64 // Высота тела (от ступней до глаз)
	DecayBase    float64 // База экспоненциального сглаживания скорости
	FloorY       float64 // Жесткий пол мира: ниже ступни не опускаются
}

// CollisionSolver интегрирует скорость и позицию тела против воксельной
// сетки. Проверка твердости вокселя передается коллбеком, чтобы решатель
// не зависел от хранилища.
type CollisionSolver struct {
	cfg   SolverConfig
	solid func(vec.Vec3) bool
}

// NewCollisionSolver создает решатель с указанной конфигурацией.
// solid сообщает, является ли воксель в позиции твердым (непустым и не водой).
func NewCollisionSolver(cfg SolverConfig, solid func(vec.Vec3) bool) *CollisionSolver {
	return &CollisionSolver{cfg: cfg, solid: solid}
}

// Integrate выполняет один шаг: сглаживает скорость к целевой, применяет
// гравитацию или вертикальное намерение полета и двигает тело по одной оси
// за раз (X, затем Z, затем Y). Разделение осей обязательно: при
// диагональном движении в угол свободная ось продолжает двигаться,
// а скорость заблокированной оси обнуляется.
func (s *CollisionSolver) Integrate(body *Body, intent MoveIntent, look vec.Vec3Float, dt float64) {
	// Сглаживание не зависит от частоты кадров: доля пути к цели
	// за шаг dt одинакова при любом размере шага.
	blend := 1 - math.Pow(s.cfg.DecayBase, dt)

	target := s.horizontalTarget(body, intent, look)
	body.Vel.X += (target.X - body.Vel.X) * blend
	body.Vel.Z += (target.Z - body.Vel.Z) * blend

	if body.Flying {
		// В полете вертикаль сглаживается к намерению, гравитации нет
		targetY := intent.Ascend * s.cfg.FlySpeed
		body.Vel.Y += (targetY - body.Vel.Y) * blend
	} else {
		body.Vel.Y -= s.cfg.Gravity * dt
		if body.Vel.Y < -s.cfg.TerminalFall {
			body.Vel.Y = -s.cfg.TerminalFall
		}
		if intent.Jump && body.Grounded {
			body.Vel.Y = s.cfg.JumpImpulse
			body.Grounded = false
		}
	}

	s.moveAxisX(body, dt)
	s.moveAxisZ(body, dt)
	s.moveAxisY(body, dt)

	// Жесткий пол: ниже минимальной координаты мира тело не опускается
	if body.Pos.Y-s.cfg.Height < s.cfg.FloorY {
		body.Pos.Y = s.cfg.FloorY + s.cfg.Height
		if body.Vel.Y < 0 {
			body.Vel.Y = 0
		}
		body.Grounded = true
	}
}

// horizontalTarget строит целевую горизонтальную скорость из намерения
// и направления взгляда (берется только горизонтальная составляющая).
func (s *CollisionSolver) horizontalTarget(body *Body, intent MoveIntent, look vec.Vec3Float) vec.Vec3Float {
	forward := vec.Vec3Float{X: look.X, Z: look.Z}.Normalize()
	right := vec.Vec3Float{X: -forward.Z, Z: forward.X}

	wish := forward.Scale(intent.Forward).Add(right.Scale(intent.Strafe))
	if wish.Length() > 1e-9 {
		wish = wish.Normalize()
	}

	speed := s.cfg.WalkSpeed
	if body.Flying {
		speed = s.cfg.FlySpeed
	} else if intent.Sprint {
		speed *= s.cfg.SprintFactor
	}

	return wish.Scale(speed)
}

func (s *CollisionSolver) moveAxisX(body *Body, dt float64) {
	candidate := body.Pos
	candidate.X += body.Vel.X * dt
	if s.Collides(candidate) {
		body.Vel.X = 0
		return
	}
	body.Pos = candidate
}

func (s *CollisionSolver) moveAxisZ(body *Body, dt float64) {
	candidate := body.Pos
	candidate.Z += body.Vel.Z * dt
	if s.Collides(candidate) {
		body.Vel.Z = 0
		return
	}
	body.Pos = candidate
}

func (s *CollisionSolver) moveAxisY(body *Body, dt float64) {
	candidate := body.Pos
	candidate.Y += body.Vel.Y * dt
	if s.Collides(candidate) {
		// Отклоненное движение вниз означает опору
		if body.Vel.Y < 0 {
			body.Grounded = true
		}
		body.Vel.Y = 0
		return
	}
	if body.Vel.Y != 0 {
		body.Grounded = false
	}
	body.Pos = candidate
}

// Collides проверяет пересечение тела в позиции pos с твердыми вокселями.
// Сэмплируется окрестность 3×3×3: смещения ±Radius по горизонтали
// и вертикальный диапазон тела; для каждого сэмпла проверяется
// пересечение единичного куба вокселя с AABB тела.
func (s *CollisionSolver) Collides(pos vec.Vec3Float) bool {
	horizontal := []float64{-s.cfg.Radius, 0, s.cfg.Radius}
	vertical := []float64{-s.cfg.Height, -s.cfg.Height / 2, 0}

	for _, dx := range horizontal {
		for _, dz := range horizontal {
			for _, dy := range vertical {
				sample := vec.Vec3Float{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}.Round()
				if s.solid(sample) && s.overlaps(pos, sample) {
					return true
				}
			}
		}
	}
	return false
}

// overlaps проверяет пересечение AABB тела в позиции pos с кубом вокселя.
// Воксель с координатой v занимает куб [v-0.5, v+0.5].
func (s *CollisionSolver) overlaps(pos vec.Vec3Float, voxel vec.Vec3) bool {
	feet := pos.Y - s.cfg.Height
	return math.Abs(pos.X-float64(voxel.X)) < 0.5+s.cfg.Radius &&
		math.Abs(pos.Z-float64(voxel.Z)) < 0.5+s.cfg.Radius &&
		feet < float64(voxel.Y)+0.5 &&
		pos.Y > float64(voxel.Y)-0.5
}
