package block

import "sort"

// BlockID представляет идентификатор вида блока
type BlockID uint16

// Константы ID блоков. Нулевой ID зарезервирован за воздухом:
// отсутствие ключа в хранилище — это воздух, а не ошибка.
const (
	AirBlockID BlockID = iota // 0 — отсутствие блока
	GrassBlockID
	DirtBlockID
	StoneBlockID
	WoodBlockID
	LeavesBlockID
	SandBlockID
	GlassBlockID
	WaterBlockID
	BedrockBlockID
)

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID зарегистрированным видом блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsOpaque сообщает, заслоняет ли блок с данным ID грани соседей.
// Воздух и незарегистрированные ID не заслоняют ничего.
func IsOpaque(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Opaque()
}

// IsSolid сообщает, является ли блок твердым для коллизий и пика
func IsSolid(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Solid()
}

// IsBreakable сообщает, можно ли разрушить блок с данным ID
func IsBreakable(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Breakable()
}

// Kinds возвращает отсортированный список всех зарегистрированных видов
func Kinds() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
