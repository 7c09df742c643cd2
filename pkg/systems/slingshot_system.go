package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 成就提示颜色
var achievementColor = rgba(255, 165, 0)

// SlingshotSystem 弹弓交互系统
//
// 指针按下抓取已有的球（或在弹药允许时就地创建新球），
// 拖动期间球完全跟随指针并暂停物理积分，松开时按
// (锚点 - 当前位置) 方向发射：向后拉、向反方向弹出。
// 低于死区距离的拖动视为误触，取消而不耗弹药
type SlingshotSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	session *game.Session
	rng     *rand.Rand

	draggingID ecs.EntityID  // 0 表示未在拉弓
	anchor     utils.Vector2 // 弹弓锚点（按下时的指针位置）
}

// NewSlingshotSystem 创建弹弓系统
//
// 参数：
//   - rng: 随机源（新球颜色），注入以便测试确定性
func NewSlingshotSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, session *game.Session, rng *rand.Rand) *SlingshotSystem {
	return &SlingshotSystem{
		em:      em,
		cfg:     cfg,
		session: session,
		rng:     rng,
	}
}

// Dragging 返回当前拉弓状态（快照构建用）
func (ss *SlingshotSystem) Dragging() (active bool, anchor utils.Vector2, ballID ecs.EntityID) {
	return ss.draggingID != 0, ss.anchor, ss.draggingID
}

// Update 处理本帧的指针输入
//
// 场地外的指针坐标被收敛到场内，不会传播为错误
func (ss *SlingshotSystem) Update(pointer utils.PointerState) {
	// 越界指针收敛
	pointer.Pos = pointer.Pos.Clamp(0, 0, ss.cfg.Playfield.Width, ss.cfg.Playfield.Height)

	if pointer.JustPressed && ss.draggingID == 0 {
		ss.handlePress(pointer.Pos)
		return
	}

	if ss.draggingID != 0 {
		if !ss.em.IsAlive(ss.draggingID) {
			// 被抓取的球在本帧被外部销毁（如重置），放弃拉弓
			ss.draggingID = 0
			return
		}
		if pointer.Pressed {
			ss.updateDrag(pointer.Pos)
		} else {
			ss.release(pointer.Pos)
		}
	}
}

// CancelDrag 放弃当前拉弓（暂停或重置时调用）
func (ss *SlingshotSystem) CancelDrag() {
	if ss.draggingID == 0 {
		return
	}
	if ball, ok := ecs.GetComponent[*components.BallComponent](ss.em, ss.draggingID); ok {
		ball.State = components.BallNormal
		ball.SquishFactor = 1.0
	}
	ss.draggingID = 0
}

// handlePress 指针按下：抓取命中的球，或创建新球
func (ss *SlingshotSystem) handlePress(pos utils.Vector2) {
	if id, ok := ss.findBallAt(pos); ok {
		ss.grab(id, pos)
		return
	}

	// 点击空白处：弹药和同屏球数允许时创建新球并立即进入拉弓
	if ss.session.CanStageBall() {
		id := entities.NewBall(ss.em, ss.cfg, pos, ss.session.BigballActive, ss.rng)
		ss.grab(id, pos)
	} else if ss.session.Ammo > 0 {
		entities.NewFloatingText(ss.em, utils.Vec(ss.cfg.Playfield.Width/2, 200),
			"Wait for ball to land!", rgba(255, 85, 85), 28)
	}
}

// grab 抓住一个球：停止其运动并记录弹弓锚点
// 锚点是指针按下的位置而不是球心，贴地的球也能向上发射
func (ss *SlingshotSystem) grab(id ecs.EntityID, pos utils.Vector2) {
	ball, ok := ecs.GetComponent[*components.BallComponent](ss.em, id)
	if !ok {
		return
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](ss.em, id)

	ss.draggingID = id
	ss.anchor = pos
	ball.State = components.BallGrabbed
	vel.Vel = utils.Vector2{}
}

// updateDrag 拖动中：球跟随指针，按拉弓距离更新压扁系数
func (ss *SlingshotSystem) updateDrag(pointerPos utils.Vector2) {
	ball, _ := ecs.GetComponent[*components.BallComponent](ss.em, ss.draggingID)
	pos, _ := ecs.GetComponent[*components.PositionComponent](ss.em, ss.draggingID)

	r := ball.Radius
	pos.Pos = pointerPos.Clamp(r, r, ss.cfg.Playfield.Width-r, ss.cfg.Playfield.Height-r)

	dragDistance := pointerPos.DistanceTo(ss.anchor)
	ball.SquishFactor = math.Max(0.7, 1.0-(dragDistance/ss.cfg.Slingshot.MaxDragDistance)*0.3)
}

// release 松开弹弓：计算发射速度并消耗弹药
//
// 发射方向为 (锚点 - 当前指针位置)，即拉弓的反方向；
// 力度与拉弓距离成正比，距离超过上限按满力计算
func (ss *SlingshotSystem) release(pointerPos utils.Vector2) {
	id := ss.draggingID
	ball, _ := ecs.GetComponent[*components.BallComponent](ss.em, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](ss.em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](ss.em, id)

	ss.draggingID = 0
	ball.State = components.BallNormal
	ball.SquishFactor = 1.0

	pull := ss.anchor.Sub(pointerPos)
	dragDistance := pull.Length()

	// 死区内视为误触，不发射也不耗弹药
	if dragDistance < ss.cfg.Slingshot.DeadZone {
		return
	}

	forceMultiplier := math.Min(dragDistance/ss.cfg.Slingshot.MaxDragDistance, 1.0)
	vel.Vel = pull.Normalize().Scale(forceMultiplier * ss.cfg.Slingshot.MaxForce)

	ball.LaunchPower = forceMultiplier
	ball.HasBeenLaunched = true
	ball.TimeSinceLaunch = 0
	ss.session.FireBall()

	log.Printf("[Slingshot] Fired: power=%.2f velocity=(%.0f,%.0f) ammo=%d",
		forceMultiplier, vel.Vel.X, vel.Vel.Y, ss.session.Ammo)

	ss.checkMastery(ball, pos.Pos)

	// 多重球道具：分裂出两个额外的球
	if ss.session.MultiballArmed {
		ss.session.MultiballArmed = false
		ss.spawnSplitBalls(ball, pos.Pos, vel.Vel)
	}
}

// checkMastery 弹弓精通成就：满力发射与轻柔发射
func (ss *SlingshotSystem) checkMastery(ball *components.BallComponent, pos utils.Vector2) {
	if math.Abs(ball.LaunchPower-1.0) < 0.05 {
		entities.NewFloatingText(ss.em, pos.Sub(utils.Vec(0, 30)), "PERFECT LAUNCH!", achievementColor, 36)
	} else if ball.LaunchPower < 0.2 {
		entities.NewFloatingText(ss.em, pos.Sub(utils.Vec(0, 30)), "GENTLE TOUCH!", achievementColor, 36)
	}
}

// spawnSplitBalls 多重球分裂：在原球两侧以小角度偏移发射两个附加球
// 附加球直接标记为已发射，落地后正常回收
func (ss *SlingshotSystem) spawnSplitBalls(template *components.BallComponent, pos, vel utils.Vector2) {
	for i := 0; i < 2; i++ {
		angleOffset := (-0.5 + float64(i)) * 0.3
		splitVel := vel.Add(utils.Vec(math.Cos(angleOffset)*100, math.Sin(angleOffset)*100))
		entities.NewLaunchedBall(ss.em, template, pos, splitVel)
		ss.session.BallsInFlight++
	}
}

// findBallAt 查找包含指定点的球（按创建顺序，先创建者优先）
func (ss *SlingshotSystem) findBallAt(pos utils.Vector2) (ecs.EntityID, bool) {
	ids := ss.em.GetEntitiesWith(
		ecs.TypeOf[*components.BallComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	var best ecs.EntityID
	for _, id := range ids {
		ball, _ := ecs.GetComponent[*components.BallComponent](ss.em, id)
		bpos, _ := ecs.GetComponent[*components.PositionComponent](ss.em, id)
		if bpos.Pos.DistanceTo(pos) <= ball.Radius {
			if best == 0 || id < best {
				best = id
			}
		}
	}
	return best, best != 0
}
