package mathutil

// Vec2 holds a texture coordinate pair (u, v).
type Vec2 [2]float64

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}
