package utils

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// TestVectorArithmetic 测试向量加减和缩放
func TestVectorArithmetic(t *testing.T) {
	v := Vec(3, 4)

	sum := v.Add(Vec(1, -2))
	if sum.X != 4 || sum.Y != 2 {
		t.Errorf("Add: got (%v,%v), want (4,2)", sum.X, sum.Y)
	}

	diff := v.Sub(Vec(1, 1))
	if diff.X != 2 || diff.Y != 3 {
		t.Errorf("Sub: got (%v,%v), want (2,3)", diff.X, diff.Y)
	}

	scaled := v.Scale(2)
	if scaled.X != 6 || scaled.Y != 8 {
		t.Errorf("Scale: got (%v,%v), want (6,8)", scaled.X, scaled.Y)
	}
}

// TestVectorLength 测试模长计算
func TestVectorLength(t *testing.T) {
	v := Vec(3, 4)
	if !almostEqual(v.Length(), 5) {
		t.Errorf("Length: got %v, want 5", v.Length())
	}
	if !almostEqual(v.LengthSquared(), 25) {
		t.Errorf("LengthSquared: got %v, want 25", v.LengthSquared())
	}
}

// TestNormalize 测试归一化，包括零向量不会除以零
func TestNormalize(t *testing.T) {
	n := Vec(3, 4).Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Errorf("Normalize length: got %v, want 1", n.Length())
	}
	if !almostEqual(n.X, 0.6) || !almostEqual(n.Y, 0.8) {
		t.Errorf("Normalize: got (%v,%v), want (0.6,0.8)", n.X, n.Y)
	}

	zero := Vec(0, 0).Normalize()
	if !zero.IsZero() {
		t.Errorf("Normalize of zero vector: got (%v,%v), want zero", zero.X, zero.Y)
	}
}

// TestDistanceTo 测试两点距离
func TestDistanceTo(t *testing.T) {
	d := Vec(0, 0).DistanceTo(Vec(3, 4))
	if !almostEqual(d, 5) {
		t.Errorf("DistanceTo: got %v, want 5", d)
	}
}

// TestDot 测试点积
func TestDot(t *testing.T) {
	cases := []struct {
		name string
		a, b Vector2
		want float64
	}{
		{"正交向量", Vec(1, 0), Vec(0, 1), 0},
		{"同向向量", Vec(2, 0), Vec(3, 0), 6},
		{"反向向量", Vec(1, 0), Vec(-1, 0), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Dot(tc.b); !almostEqual(got, tc.want) {
				t.Errorf("Dot: got %v, want %v", got, tc.want)
			}
		})
	}
}

// TestClamp 测试分量收敛到矩形范围
func TestClamp(t *testing.T) {
	cases := []struct {
		name string
		in   Vector2
		want Vector2
	}{
		{"范围内不变", Vec(50, 50), Vec(50, 50)},
		{"左上越界", Vec(-10, -20), Vec(0, 0)},
		{"右下越界", Vec(900, 700), Vec(800, 600)},
		{"单轴越界", Vec(400, 999), Vec(400, 600)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Clamp(0, 0, 800, 600)
			if got != tc.want {
				t.Errorf("Clamp: got (%v,%v), want (%v,%v)", got.X, got.Y, tc.want.X, tc.want.Y)
			}
		})
	}
}
