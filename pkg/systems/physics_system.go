// Package systems 实现游戏的各个逻辑系统
// 每个系统聚焦一个关注点，由场景按固定顺序逐帧调用
package systems

import (
	"math"
	"slices"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 失手提示颜色
var (
	warnColor    = rgba(255, 165, 0)
	penaltyColor = rgba(255, 50, 50)
)

// PhysicsSystem 物理积分与碰撞引擎
//
// 职责：
//   - 半隐式欧拉积分推进所有球：速度先加重力，再用新速度更新位置
//   - 逐轴墙壁碰撞：反弹 + 位置收敛，防止穿墙和粘墙
//   - 球-球两两碰撞：沿法线的动量守恒冲量 + 位置分离（单遍求解，球数很少）
//   - 发散防护：任何越出场地的球被收敛回场内，不会永久丢失
//   - 回收静止落地的已发射球，并判定失手
//
// 被抓取中的球跳过积分（由弹弓系统直接设置位置）
type PhysicsSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	session *game.Session
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, session *game.Session) *PhysicsSystem {
	return &PhysicsSystem{
		em:      em,
		cfg:     cfg,
		session: session,
	}
}

// ballEntities 返回按创建顺序排序的球实体列表
// 排序保证碰撞求解和命中判定的迭代顺序确定
func (ps *PhysicsSystem) ballEntities() []ecs.EntityID {
	ids := ps.em.GetEntitiesWith(
		ecs.TypeOf[*components.BallComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.VelocityComponent](),
	)
	slices.Sort(ids)
	return ids
}

// Update 推进一个物理步
func (ps *PhysicsSystem) Update(deltaTime float64) {
	// 限制单步时长，防止物理爆炸
	dt := math.Min(deltaTime, ps.cfg.Physics.MaxDeltaTime)
	if dt <= 0 {
		return
	}

	ids := ps.ballEntities()
	for _, id := range ids {
		ball, _ := ecs.GetComponent[*components.BallComponent](ps.em, id)
		if ball.State == components.BallGrabbed {
			// 拉弓中的球完全跟随指针，不参与积分
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		ps.applyForces(ball, vel, pos.Pos, dt)
		pos.Pos = pos.Pos.Add(vel.Vel.Scale(dt))
		ps.resolveWalls(ball, pos, vel)
		ps.clampDivergence(ball, pos)

		if ball.HasBeenLaunched {
			ball.TimeSinceLaunch += dt
		}
	}

	ps.resolveBallCollisions(ids)
	ps.retireRestingBalls(ids)
}

// applyForces 对单个球施加重力、空气阻力、风和磁铁效果
func (ps *PhysicsSystem) applyForces(ball *components.BallComponent, vel *components.VelocityComponent, pos utils.Vector2, dt float64) {
	vel.Vel.Y += ps.cfg.Physics.Gravity * dt
	vel.Vel = vel.Vel.Scale(ps.cfg.Physics.AirFriction)

	// 风只影响已发射的球
	if ball.HasBeenLaunched && ps.session.WindStrength > 0 {
		vel.Vel.X += math.Cos(ps.session.WindDirection) * ps.session.WindStrength * dt
		vel.Vel.Y += math.Sin(ps.session.WindDirection) * ps.session.WindStrength * dt
	}

	if ps.session.MagnetActive {
		ps.applyMagnet(vel, pos, dt)
	}
}

// applyMagnet 磁铁道具：将球轻微吸向最近的飞行中的鸟
func (ps *PhysicsSystem) applyMagnet(vel *components.VelocityComponent, pos utils.Vector2, dt float64) {
	birdIDs := ps.em.GetEntitiesWith(
		ecs.TypeOf[*components.BirdComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	closestDist := math.MaxFloat64
	var closestPos utils.Vector2
	found := false
	for _, id := range birdIDs {
		bird, _ := ecs.GetComponent[*components.BirdComponent](ps.em, id)
		if bird.State != components.BirdFlying {
			continue
		}
		bpos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		dist := bpos.Pos.DistanceTo(pos)
		if dist < closestDist {
			closestDist = dist
			closestPos = bpos.Pos
			found = true
		}
	}

	if found && closestDist < ps.cfg.Effects.MagnetRange && closestDist > 0 {
		pull := closestPos.Sub(pos).Normalize().Scale(ps.cfg.Effects.MagnetForce * dt)
		vel.Vel = vel.Vel.Add(pull)
	}
}

// resolveWalls 逐轴处理墙壁碰撞
//
// 顶部和左右墙按弹性系数反弹（法向分量取 -restitution 倍，切向不变），
// 地面是吸收边界：垂直速度归零，水平速度按地面摩擦衰减。
// 每轴都先收敛位置到边界，保证一个积分步内的穿透被立即修正
func (ps *PhysicsSystem) resolveWalls(ball *components.BallComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	r := ball.Radius
	width := ps.cfg.Playfield.Width
	height := ps.cfg.Playfield.Height

	// 地面（吸收）
	if pos.Pos.Y+r >= height {
		pos.Pos.Y = height - r
		vel.Vel.Y = 0
		vel.Vel.X *= ps.cfg.Physics.GroundFriction
		ball.WallBounceStreak = 0
	} else if pos.Pos.Y-r <= 0 {
		// 天花板（反弹）
		pos.Pos.Y = r
		vel.Vel.Y = math.Abs(vel.Vel.Y) * ball.Restitution
		ball.WallBounceStreak++
	}

	// 左墙
	if pos.Pos.X-r <= 0 {
		pos.Pos.X = r
		vel.Vel.X = math.Abs(vel.Vel.X) * ball.Restitution
		ball.WallBounceStreak++
	} else if pos.Pos.X+r >= width {
		// 右墙
		pos.Pos.X = width - r
		vel.Vel.X = -math.Abs(vel.Vel.X) * ball.Restitution
		ball.WallBounceStreak++
	}
}

// clampDivergence 发散防护
// 病态冲量可能把球推出场地；发现时直接收敛回场内（防御性恢复，非错误）
func (ps *PhysicsSystem) clampDivergence(ball *components.BallComponent, pos *components.PositionComponent) {
	r := ball.Radius
	pos.Pos = pos.Pos.Clamp(r, r, ps.cfg.Playfield.Width-r, ps.cfg.Playfield.Height-r)
}

// resolveBallCollisions 两两检测并解决球-球碰撞
// ids 已按创建顺序排序，结果确定
func (ps *PhysicsSystem) resolveBallCollisions(ids []ecs.EntityID) {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			ball1, _ := ecs.GetComponent[*components.BallComponent](ps.em, ids[i])
			ball2, _ := ecs.GetComponent[*components.BallComponent](ps.em, ids[j])
			if ball1.State == components.BallGrabbed || ball2.State == components.BallGrabbed {
				continue
			}

			pos1, _ := ecs.GetComponent[*components.PositionComponent](ps.em, ids[i])
			pos2, _ := ecs.GetComponent[*components.PositionComponent](ps.em, ids[j])
			if pos1.Pos.DistanceTo(pos2.Pos) < ball1.Radius+ball2.Radius {
				vel1, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, ids[i])
				vel2, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, ids[j])
				ps.resolvePair(ball1, pos1, vel1, ball2, pos2, vel2)
			}
		}
	}
}

// resolvePair 解决一对重叠球的碰撞
//
// 沿碰撞法线施加动量守恒冲量（等质量简化），能量按碰撞衰减系数
// 损耗，然后把两球沿法线各推开一半重叠量加最小间隙。
// 两球圆心完全重合时沿固定的 X 轴分离（确定性，避免随机抖动）
func (ps *PhysicsSystem) resolvePair(
	ball1 *components.BallComponent, pos1 *components.PositionComponent, vel1 *components.VelocityComponent,
	ball2 *components.BallComponent, pos2 *components.PositionComponent, vel2 *components.VelocityComponent) {

	delta := pos2.Pos.Sub(pos1.Pos)
	distance := delta.Length()

	// 圆心重合：取固定轴分离，避免除以零
	if distance == 0 {
		delta = utils.Vec(1, 0)
		distance = 1.0
	}

	normal := delta.Scale(1.0 / distance)

	// 位置分离
	overlap := (ball1.Radius + ball2.Radius) - distance
	if overlap > 0 {
		separation := (overlap + ps.cfg.Physics.MinSeparation) * 0.5
		pos1.Pos = pos1.Pos.Sub(normal.Scale(separation))
		pos2.Pos = pos2.Pos.Add(normal.Scale(separation))
	}

	// 法向相对速度
	relVel := vel2.Vel.Sub(vel1.Vel)
	dvn := relVel.Dot(normal)

	// 正在分离的不再求解
	if dvn > 0 {
		return
	}

	// 等质量弹性碰撞冲量，带能量衰减
	impulse := 2 * dvn * ps.cfg.Physics.CollisionDampening
	vel1.Vel = vel1.Vel.Add(normal.Scale(impulse))
	vel2.Vel = vel2.Vel.Sub(normal.Scale(impulse))
}

// retireRestingBalls 回收静止落地的已发射球
//
// 球落地且速度低于静止阈值时销毁，飞行球计数减一；
// 若距上次命中超过失手窗口，记为一次失手，连续失手触发弹药惩罚
func (ps *PhysicsSystem) retireRestingBalls(ids []ecs.EntityID) {
	for _, id := range ids {
		ball, _ := ecs.GetComponent[*components.BallComponent](ps.em, id)
		if !ball.HasBeenLaunched || ball.State == components.BallGrabbed {
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		onGround := pos.Pos.Y+ball.Radius >= ps.cfg.Playfield.Height-0.5
		resting := math.Abs(vel.Vel.X) < ps.cfg.Scoring.RestSpeed && math.Abs(vel.Vel.Y) < ps.cfg.Scoring.RestSpeed
		if !onGround || !resting {
			continue
		}

		ps.em.DestroyEntity(id)
		ps.session.BallRetired()

		// 整条弹道没有命中任何鸟：记失手
		if ps.session.Clock-ps.session.LastHitAt > ps.cfg.Scoring.MissWindow {
			center := utils.Vec(ps.cfg.Playfield.Width/2, ps.cfg.Playfield.Height/2)
			if ps.session.RegisterMiss() {
				entities.NewFloatingText(ps.em, center, "MISS STREAK! -1 AMMO", penaltyColor, 48)
			} else if ps.session.MissStreak == ps.cfg.Scoring.MissStreakLimit-1 {
				entities.NewFloatingText(ps.em, center.Sub(utils.Vec(0, 50)), "ONE MORE MISS = -1 AMMO!", warnColor, 36)
			}
		}
	}
}
