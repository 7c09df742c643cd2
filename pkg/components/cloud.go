package components

// CloudComponent 移动云朵障碍物
// 云朵水平漂移并在屏幕两侧环绕，球穿过云朵时被减速
type CloudComponent struct {
	Width  float64 // 云朵宽度（像素）
	Height float64 // 云朵高度（像素）
}
