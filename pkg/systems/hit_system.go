package systems

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"slices"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 命中后球速保留比例，击中会消耗球的动能
const hitBallSlowdown = 0.6

// HitEvent 一次命中的完整记录，供特效和测试消费
type HitEvent struct {
	BallID   ecs.EntityID
	BirdID   ecs.EntityID
	BirdType components.BirdType
	Pos      utils.Vector2
	Points   int  // 最终得分（含完美与连击加成）
	Combo    int  // 命中后的连击数
	Perfect  bool // 是否命中鸟心附近（分值翻倍）
	Ammo     int  // 实际到账的弹药奖励
}

// HitSystem 命中检测与计分系统
//
// 每帧检测飞行中的球与飞行中的鸟的重叠。只有速度不低于
// 最小有效速度的已发射球才能计分，静止接触不算命中。
// 每只鸟每帧最多产生一次命中，多球同时覆盖时编号最小
// （最早创建）的球获得命中
type HitSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	birds   *config.BirdStatsConfig
	session *game.Session
	rng     *rand.Rand

	events []HitEvent // 本帧产生的命中事件
}

// NewHitSystem 创建命中系统
func NewHitSystem(em *ecs.EntityManager, cfg *config.GameplayConfig,
	birds *config.BirdStatsConfig, session *game.Session, rng *rand.Rand) *HitSystem {
	return &HitSystem{em: em, cfg: cfg, birds: birds, session: session, rng: rng}
}

// LastEvents 返回最近一帧的命中事件
func (hs *HitSystem) LastEvents() []HitEvent {
	return hs.events
}

// Update 执行本帧的命中检测
func (hs *HitSystem) Update(deltaTime float64) {
	hs.events = hs.events[:0]

	ballIDs := hs.activeBalls()
	if len(ballIDs) == 0 {
		return
	}

	birdIDs := hs.em.GetEntitiesWith(
		ecs.TypeOf[*components.BirdComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.CollisionComponent](),
	)
	slices.Sort(birdIDs)

	for _, birdID := range birdIDs {
		bird, _ := ecs.GetComponent[*components.BirdComponent](hs.em, birdID)
		if bird.State != components.BirdFlying {
			continue
		}
		birdPos, _ := ecs.GetComponent[*components.PositionComponent](hs.em, birdID)
		coll, _ := ecs.GetComponent[*components.CollisionComponent](hs.em, birdID)

		// 编号最小的球先检测，命中即停
		for _, ballID := range ballIDs {
			ball, _ := ecs.GetComponent[*components.BallComponent](hs.em, ballID)
			ballPos, _ := ecs.GetComponent[*components.PositionComponent](hs.em, ballID)

			hit, centerDist := hs.overlaps(ballPos.Pos, ball.Radius, birdPos.Pos, coll)
			if !hit {
				continue
			}

			hs.resolveHit(ballID, birdID, bird, birdPos.Pos, ball, centerDist, coll.Radius+ball.Radius)
			break
		}
	}
}

// activeBalls 返回本帧可计分的球：已发射且速度不低于阈值
func (hs *HitSystem) activeBalls() []ecs.EntityID {
	ids := hs.em.GetEntitiesWith(
		ecs.TypeOf[*components.BallComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.VelocityComponent](),
	)
	slices.Sort(ids)

	active := ids[:0]
	for _, id := range ids {
		ball, _ := ecs.GetComponent[*components.BallComponent](hs.em, id)
		if !ball.HasBeenLaunched || ball.State == components.BallGrabbed {
			continue
		}
		vel, _ := ecs.GetComponent[*components.VelocityComponent](hs.em, id)
		if vel.Vel.Length() < hs.cfg.Scoring.MinActiveSpeed {
			continue
		}
		active = append(active, id)
	}
	return active
}

// overlaps 重叠检测，返回是否命中及球心到鸟心的距离
// 命中形状由配置决定：圆-圆或圆-矩形，计分行为一致
func (hs *HitSystem) overlaps(ballPos utils.Vector2, ballRadius float64,
	birdPos utils.Vector2, coll *components.CollisionComponent) (bool, float64) {

	centerDist := ballPos.DistanceTo(birdPos)

	if hs.cfg.Scoring.HitShape == config.HitShapeAABB {
		// 圆-矩形：取矩形上距球心最近的点
		halfW, halfH := coll.Width/2, coll.Height/2
		cx := math.Max(birdPos.X-halfW, math.Min(ballPos.X, birdPos.X+halfW))
		cy := math.Max(birdPos.Y-halfH, math.Min(ballPos.Y, birdPos.Y+halfH))
		dx, dy := ballPos.X-cx, ballPos.Y-cy
		return dx*dx+dy*dy <= ballRadius*ballRadius, centerDist
	}

	return centerDist <= ballRadius+coll.Radius, centerDist
}

// resolveHit 结算一次命中：计分、弹药奖励、特效、移除鸟
func (hs *HitSystem) resolveHit(ballID, birdID ecs.EntityID, bird *components.BirdComponent,
	birdPos utils.Vector2, ball *components.BallComponent, centerDist, collisionDist float64) {

	stats := hs.birds.Birds[entities.BirdTypeKey(bird.Type)]

	// 倍率取本次命中之前积累的连击：单发命中拿基础分
	multiplier := hs.session.ComboMultiplier()
	combo := hs.session.RegisterHit()

	// 完美命中：球心贴近鸟心，分值翻倍
	perfect := centerDist < collisionDist*hs.cfg.Scoring.PerfectShotFraction
	base := stats.Points
	if perfect {
		base *= 2
	}
	points := int(math.Round(float64(base) * multiplier))
	hs.session.AddScore(points)

	// 弹药奖励：类型奖励 + 鸟心命中加成
	reward := stats.AmmoReward
	if centerDist < collisionDist*hs.cfg.Scoring.CenterBonusFraction {
		reward++
	}
	granted := hs.session.GrantAmmo(reward)

	bird.State = components.BirdHit
	hs.em.DestroyEntity(birdID)

	// 击中消耗球的动能，球继续飞行
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](hs.em, ballID); ok {
		vel.Vel = vel.Vel.Scale(hitBallSlowdown)
	}

	// 经至少两次墙面反弹后命中：反弹入球
	if ball.WallBounceStreak >= 2 {
		entities.NewFloatingText(hs.em, birdPos.Sub(utils.Vec(0, 80)), "BANK SHOT!", achievementColor, 30)
	}
	ball.WallBounceStreak = 0

	hs.spawnFeedback(birdPos, bird.Type, points, combo, perfect, granted)

	hs.events = append(hs.events, HitEvent{
		BallID:   ballID,
		BirdID:   birdID,
		BirdType: bird.Type,
		Pos:      birdPos,
		Points:   points,
		Combo:    combo,
		Perfect:  perfect,
		Ammo:     granted,
	})

	log.Printf("[Hit] Bird=%s points=%d combo=%d perfect=%v ammo+%d score=%d",
		entities.BirdTypeKey(bird.Type), points, combo, perfect, granted, hs.session.Score)
}

// spawnFeedback 命中反馈特效：羽毛爆炸与浮动文字
func (hs *HitSystem) spawnFeedback(pos utils.Vector2, birdType components.BirdType,
	points, combo int, perfect bool, ammo int) {

	featherCount := 8
	if birdType == components.BirdGolden || birdType == components.BirdRare {
		featherCount = 14
	}
	entities.NewFeatherBurst(hs.em, pos, featherCount, hs.rng)

	scoreColor := comboColor
	if birdType == components.BirdGolden || birdType == components.BirdRare {
		scoreColor = goldColor
	}
	entities.NewFloatingText(hs.em, pos, fmt.Sprintf("+%d", points), scoreColor, 32)

	if perfect {
		entities.NewFloatingText(hs.em, pos.Sub(utils.Vec(0, 30)), "PERFECT!", goldColor, 28)
	}
	if combo >= 2 {
		entities.NewFloatingText(hs.em, pos.Sub(utils.Vec(0, 55)),
			fmt.Sprintf("COMBO x%d", combo), comboColor, 24)
	}
	if ammo > 0 {
		entities.NewFloatingText(hs.em, pos.Add(utils.Vec(0, 30)),
			fmt.Sprintf("+%d AMMO", ammo), ammoColor, 24)
	}
}
