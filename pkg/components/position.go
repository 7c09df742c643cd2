package components

import "github.com/aegisx/ricochet/pkg/utils"

// PositionComponent 实体在游戏场地坐标系中的位置（实体中心点）
type PositionComponent struct {
	Pos utils.Vector2
}

// VelocityComponent 实体的速度（像素/秒）
type VelocityComponent struct {
	Vel utils.Vector2
}
