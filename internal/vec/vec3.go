package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Служит ключом вокселя в хранилище: структурный ключ с полным порядком
// вместо строковой конкатенации координат.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Column возвращает колонку (X, Z), которой принадлежит воксель
func (v Vec3) Column() Vec2 {
	return Vec2{
		X: v.X,
		Z: v.Z,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// ToFloat преобразует воксельную координату в центр куба в мировых координатах
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{
		X: float64(v.X),
		Y: float64(v.Y),
		Z: float64(v.Z),
	}
}
