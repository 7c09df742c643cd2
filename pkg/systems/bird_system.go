package systems

import (
	"math"
	"slices"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/game"
)

// 飞行路径参数
const (
	sineAmplitude   = 15.0 // 普通鸟正弦起伏幅度（像素）
	sineFrequency   = 2.0  // 正弦频率（弧度/秒）
	goldenAmpScale  = 1.5  // 金鸟起伏幅度倍率
	zigzagAmplitude = 30.0 // 愤怒鸟之字形幅度（像素）
	zigzagFrequency = 4.0  // 之字形频率（弧度/秒）

	dodgeTriggerDistance = 80.0  // 稀有鸟闪避触发距离（像素）
	dodgeSpeed           = 150.0 // 闪避垂直速度（像素/秒）
	dodgeDuration        = 1.0   // 单次闪避持续时间（秒）

	wingFrameRate = 8.0 // 翅膀动画帧率
	wingFrames    = 3
)

// BirdSystem 鸟类飞行 AI 系统
//
// 每帧按类型更新鸟的位置：普通鸟正弦起伏，金鸟大幅起伏，
// 愤怒鸟之字形，稀有鸟在球接近时垂直闪避。
// 飞出场地加逃逸余量的鸟被移除，不计分也不扣分
type BirdSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	session *game.Session
}

// NewBirdSystem 创建鸟类 AI 系统
func NewBirdSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, session *game.Session) *BirdSystem {
	return &BirdSystem{em: em, cfg: cfg, session: session}
}

// Update 推进所有鸟的飞行状态
func (bs *BirdSystem) Update(deltaTime float64) {
	// 慢动作道具：鸟的移动与动画减半
	if bs.session.SlowmoActive() {
		deltaTime *= 0.5
	}

	ids := bs.em.GetEntitiesWith(
		ecs.TypeOf[*components.BirdComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.VelocityComponent](),
	)
	slices.Sort(ids)

	for _, id := range ids {
		bird, _ := ecs.GetComponent[*components.BirdComponent](bs.em, id)
		if bird.State != components.BirdFlying {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](bs.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](bs.em, id)

		bird.FlightTime += deltaTime
		bird.WingFrame = int(bird.FlightTime*wingFrameRate) % wingFrames

		pos.Pos.X += vel.Vel.X * deltaTime

		if bird.Type == components.BirdRare {
			bs.updateDodge(bird, pos, deltaTime)
		}
		pos.Pos.Y = bird.BaseY + flightOffset(bird)

		if escaped(pos.Pos, bs.cfg.Playfield.Width, bs.cfg.Spawn.EscapeMargin) {
			bird.State = components.BirdEscaped
			bs.em.DestroyEntity(id)
		}
	}
}

// flightOffset 返回当前飞行时间下相对基准高度的垂直偏移
func flightOffset(bird *components.BirdComponent) float64 {
	switch bird.Type {
	case components.BirdGolden:
		return math.Sin(bird.FlightTime*sineFrequency) * sineAmplitude * goldenAmpScale
	case components.BirdAngry:
		// 之字形：三角波而非正弦，转向更生硬
		return triangleWave(bird.FlightTime*zigzagFrequency) * zigzagAmplitude
	case components.BirdRare:
		return math.Sin(bird.FlightTime*sineFrequency) * sineAmplitude
	default:
		return math.Sin(bird.FlightTime*sineFrequency) * sineAmplitude
	}
}

// triangleWave 周期 2π、值域 [-1,1] 的三角波
func triangleWave(t float64) float64 {
	phase := math.Mod(t, 2*math.Pi) / (2 * math.Pi)
	if phase < 0.25 {
		return phase * 4
	}
	if phase < 0.75 {
		return 2 - phase*4
	}
	return phase*4 - 4
}

// updateDodge 稀有鸟闪避：已发射的球接近时垂直逃离
//
// 闪避通过平移基准高度实现，结束后不会出现位置跳变。
// 单次闪避持续固定时长，期间不会再次触发
func (bs *BirdSystem) updateDodge(bird *components.BirdComponent, pos *components.PositionComponent, deltaTime float64) {
	if bird.Dodging {
		bird.DodgeTime += deltaTime
		if bird.DodgeTime >= dodgeDuration {
			bird.Dodging = false
		}
		return
	}

	threatY, found := bs.nearestThreatY(pos.Pos.X, pos.Pos.Y)
	if !found {
		return
	}

	bird.Dodging = true
	bird.DodgeTime = 0

	// 向威胁的反方向平移基准高度
	shift := dodgeSpeed * dodgeDuration
	if threatY < pos.Pos.Y {
		bird.BaseY += shift
	} else {
		bird.BaseY -= shift
	}
	bird.BaseY = math.Max(bs.cfg.Spawn.HeightMin, math.Min(bird.BaseY, bs.cfg.Spawn.HeightMax))
}

// nearestThreatY 查找触发距离内最近的已发射球的 Y 坐标
func (bs *BirdSystem) nearestThreatY(x, y float64) (float64, bool) {
	ids := bs.em.GetEntitiesWith(
		ecs.TypeOf[*components.BallComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	slices.Sort(ids)

	bestDist := dodgeTriggerDistance
	var bestY float64
	found := false
	for _, id := range ids {
		ball, _ := ecs.GetComponent[*components.BallComponent](bs.em, id)
		if !ball.HasBeenLaunched {
			continue
		}
		bpos, _ := ecs.GetComponent[*components.PositionComponent](bs.em, id)
		d := math.Hypot(bpos.Pos.X-x, bpos.Pos.Y-y)
		if d < bestDist {
			bestDist = d
			bestY = bpos.Pos.Y
			found = true
		}
	}
	return bestY, found
}
