// Package entities 提供实体的工厂函数
// 工厂负责组装组件，保证每类实体的组件组合一致
package entities

import (
	"image/color"
	"math/rand"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/utils"
)

// ballPalette 球的候选颜色（随机选取，纯装饰）
var ballPalette = []color.RGBA{
	{R: 255, G: 85, B: 85, A: 255},  // 红
	{R: 85, G: 85, B: 255, A: 255},  // 蓝
	{R: 85, G: 255, B: 85, A: 255},  // 绿
	{R: 255, G: 165, B: 0, A: 255},  // 橙
	{R: 255, G: 85, B: 255, A: 255}, // 紫
	{R: 85, G: 255, B: 255, A: 255}, // 青
}

// NewBall 创建一个待发射的弹射球实体
//
// 参数：
//   - em: 实体管理器
//   - cfg: 玩法配置（默认半径、弹性系数来源）
//   - pos: 初始位置（指针按下处，越界由调用方收敛）
//   - bigball: 大球道具是否生效（半径加倍）
//   - rng: 随机源（仅用于选取颜色）
//
// 返回新实体的 ID
func NewBall(em *ecs.EntityManager, cfg *config.GameplayConfig, pos utils.Vector2, bigball bool, rng *rand.Rand) ecs.EntityID {
	radius := cfg.Ball.Radius
	if bigball {
		radius *= 2
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, &components.BallComponent{
		Radius:       radius,
		Color:        ballPalette[rng.Intn(len(ballPalette))],
		Restitution:  cfg.Physics.BounceDampening,
		State:        components.BallNormal,
		SquishFactor: 1.0,
	})
	return id
}

// NewLaunchedBall 创建一个已处于飞行状态的球（多重球分裂用）
// 与 NewBall 的区别：初速度非零且直接标记为已发射
func NewLaunchedBall(em *ecs.EntityManager, template *components.BallComponent, pos, vel utils.Vector2) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, &components.VelocityComponent{Vel: vel})
	em.AddComponent(id, &components.BallComponent{
		Radius:          template.Radius,
		Color:           template.Color,
		Restitution:     template.Restitution,
		State:           components.BallNormal,
		SquishFactor:    1.0,
		HasBeenLaunched: true,
	})
	return id
}
