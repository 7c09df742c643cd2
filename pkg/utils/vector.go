package utils

import "math"

// Vector2 二维向量，值类型，无标识
// 用于表示位置、速度和力，是所有物理计算的基础类型
type Vector2 struct {
	X float64
	Y float64
}

// Vec 构造一个 Vector2
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add 向量加法，返回新向量
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub 向量减法，返回新向量
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale 标量缩放，返回新向量
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Length 向量模长
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared 模长的平方（避免开方，用于距离比较）
func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize 归一化为单位向量
// 零向量归一化返回零向量，不会除以零
func (v Vector2) Normalize() Vector2 {
	length := v.Length()
	if length == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / length, Y: v.Y / length}
}

// Dot 点积
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// DistanceTo 两点之间的距离
func (v Vector2) DistanceTo(other Vector2) float64 {
	return v.Sub(other).Length()
}

// IsZero 是否为零向量
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Clamp 将向量的分量限制在矩形 [minX,maxX] × [minY,maxY] 内
func (v Vector2) Clamp(minX, minY, maxX, maxY float64) Vector2 {
	return Vector2{
		X: math.Max(minX, math.Min(v.X, maxX)),
		Y: math.Max(minY, math.Min(v.Y, maxY)),
	}
}
