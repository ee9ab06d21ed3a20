package vec

// Vec2 представляет колонку мира — пару целочисленных координат (X, Z).
// Используется как ключ карты высот и для адресации колонок при генерации.
type Vec2 struct {
	X int
	Z int
}

// Equals проверяет равенство колонок
func (v Vec2) Equals(other Vec2) bool {
	return v.X == other.X && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{
		X: v.X + other.X,
		Z: v.Z + other.Z,
	}
}
