package entities

import (
	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 鸟的碰撞形状常量
// 矩形盒对应精灵图的可视范围，圆形半径对应几何/表情渲染。
// 选用哪种由配置的命中形状模式决定，两者的计分行为一致
const (
	BirdWidth           = 60.0
	BirdHeight          = 45.0
	BirdCollisionRadius = 25.0
)

// BirdTypeKey 返回鸟类型对应的配置键名
func BirdTypeKey(t components.BirdType) string {
	switch t {
	case components.BirdGolden:
		return config.BirdKeyGolden
	case components.BirdAngry:
		return config.BirdKeyAngry
	case components.BirdRare:
		return config.BirdKeyRare
	default:
		return config.BirdKeyRegular
	}
}

// NewBird 创建一只飞行中的鸟实体
//
// 参数：
//   - em: 实体管理器
//   - stats: 该类型的属性配置（速度来源）
//   - birdType: 鸟类型
//   - direction: 飞行方向，1 向右 / -1 向左
//   - startX: 出生 X 坐标（场地边缘外侧）
//   - baseY: 基准飞行高度
//   - mode: 当前渲染模式标签
//
// 新生鸟的状态为 BirdFlying，速度沿飞行方向非零
func NewBird(em *ecs.EntityManager, stats config.BirdStats, birdType components.BirdType,
	direction int, startX, baseY float64, mode components.BirdRenderMode) ecs.EntityID {

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: utils.Vec(startX, baseY)})
	em.AddComponent(id, &components.VelocityComponent{
		Vel: utils.Vec(float64(direction)*stats.Speed, 0),
	})
	em.AddComponent(id, &components.BirdComponent{
		Type:       birdType,
		State:      components.BirdFlying,
		RenderMode: mode,
		Direction:  direction,
		BaseY:      baseY,
	})
	em.AddComponent(id, &components.CollisionComponent{
		Radius: BirdCollisionRadius,
		Width:  BirdWidth,
		Height: BirdHeight,
	})
	return id
}
