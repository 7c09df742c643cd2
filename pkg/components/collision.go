package components

// CollisionComponent 定义实体的碰撞检测形状
//
// 同时携带圆形半径和矩形边界，命中系统根据配置的命中形状模式
// 选用其一。两种形状的计分行为必须一致（公平性要求）
type CollisionComponent struct {
	Radius float64 // 圆形碰撞半径（像素）
	Width  float64 // 矩形碰撞盒宽度（像素，中心对齐实体位置）
	Height float64 // 矩形碰撞盒高度（像素，中心对齐实体位置）
}
