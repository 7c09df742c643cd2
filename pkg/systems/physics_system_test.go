package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

const testDT = 1.0 / 60.0

// newPhysicsWorld 构建一个物理测试世界
// mutate 可以在创建系统前调整配置（如关闭重力做纯反弹测试）
func newPhysicsWorld(mutate func(*config.GameplayConfig)) (*ecs.EntityManager, *config.GameplayConfig, *game.Session, *PhysicsSystem) {
	cfg := config.DefaultGameplayConfig()
	if mutate != nil {
		mutate(cfg)
	}
	em := ecs.NewEntityManager()
	session := game.NewSession(cfg, nil)
	return em, cfg, session, NewPhysicsSystem(em, cfg, session)
}

// spawnTestBall 创建一个指定位置速度的已发射球
func spawnTestBall(em *ecs.EntityManager, cfg *config.GameplayConfig, pos, vel utils.Vector2) ecs.EntityID {
	id := entities.NewBall(em, cfg, pos, false, rand.New(rand.NewSource(1)))
	ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
	ball.HasBeenLaunched = true
	v, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	v.Vel = vel
	return id
}

// noDragCfg 关闭重力和空气阻力，让反弹行为可以精确断言
func noDragCfg(cfg *config.GameplayConfig) {
	cfg.Physics.Gravity = 0
	cfg.Physics.AirFriction = 1.0
}

// TestLeftWallReflection 测试左墙反弹遵循反射定律并衰减法向速度
func TestLeftWallReflection(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	id := spawnTestBall(em, cfg, utils.Vec(30, 300), utils.Vec(-600, 120))

	ps.Update(testDT)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	wantVX := 600 * cfg.Physics.BounceDampening
	if math.Abs(vel.Vel.X-wantVX) > 1e-9 {
		t.Errorf("reflected vx: got %v, want %v", vel.Vel.X, wantVX)
	}
	// 切向分量不变
	if vel.Vel.Y != 120 {
		t.Errorf("tangential vy must be untouched: got %v", vel.Vel.Y)
	}
	// 位置收敛到墙内
	if pos.Pos.X < cfg.Ball.Radius {
		t.Errorf("ball left the field: x=%v", pos.Pos.X)
	}
}

// TestCeilingReflection 测试天花板反弹
func TestCeilingReflection(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	id := spawnTestBall(em, cfg, utils.Vec(400, 26), utils.Vec(0, -600))

	ps.Update(testDT)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	wantVY := 600 * cfg.Physics.BounceDampening
	if math.Abs(vel.Vel.Y-wantVY) > 1e-9 {
		t.Errorf("reflected vy: got %v, want %v", vel.Vel.Y, wantVY)
	}
}

// TestFloorAbsorbs 测试地面吸收：垂直速度归零，水平速度按摩擦衰减
func TestFloorAbsorbs(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	id := spawnTestBall(em, cfg, utils.Vec(400, 590), utils.Vec(200, 300))

	ps.Update(testDT)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	if vel.Vel.Y != 0 {
		t.Errorf("floor must absorb vy: got %v", vel.Vel.Y)
	}
	wantVX := 200 * cfg.Physics.GroundFriction
	if math.Abs(vel.Vel.X-wantVX) > 1e-9 {
		t.Errorf("ground friction vx: got %v, want %v", vel.Vel.X, wantVX)
	}
	if pos.Pos.Y != cfg.Playfield.Height-cfg.Ball.Radius {
		t.Errorf("ball must rest on the floor line: y=%v", pos.Pos.Y)
	}
}

// TestContainmentOverManySteps 测试长时间模拟后球始终在场地内
func TestContainmentOverManySteps(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(nil)
	id := spawnTestBall(em, cfg, utils.Vec(100, 100), utils.Vec(3000, -2500))

	r := cfg.Ball.Radius
	for i := 0; i < 600; i++ {
		ps.Update(testDT)
		em.RemoveMarkedEntities()
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			// 球静止后被回收，属于正常结束
			return
		}
		if pos.Pos.X < r-1e-6 || pos.Pos.X > cfg.Playfield.Width-r+1e-6 ||
			pos.Pos.Y < r-1e-6 || pos.Pos.Y > cfg.Playfield.Height-r+1e-6 {
			t.Fatalf("step %d: ball escaped field at (%v,%v)", i, pos.Pos.X, pos.Pos.Y)
		}
	}
}

// TestMaxDeltaTimeCap 测试超长帧被截断，不会导致穿墙
func TestMaxDeltaTimeCap(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	id := spawnTestBall(em, cfg, utils.Vec(400, 300), utils.Vec(5000, 0))

	// 半秒的帧（例如窗口拖动卡顿），应按 MaxDeltaTime 处理
	ps.Update(0.5)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	maxTravel := 5000 * cfg.Physics.MaxDeltaTime
	if pos.Pos.X > 400+maxTravel+1e-6 {
		t.Errorf("oversized frame not capped: x=%v", pos.Pos.X)
	}
}

// TestGrabbedBallSkipsIntegration 测试拉弓中的球不参与积分
func TestGrabbedBallSkipsIntegration(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(nil)
	id := spawnTestBall(em, cfg, utils.Vec(400, 300), utils.Vec(1000, 1000))
	ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
	ball.State = components.BallGrabbed

	ps.Update(testDT)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.Pos.X != 400 || pos.Pos.Y != 300 {
		t.Errorf("grabbed ball must not move: got (%v,%v)", pos.Pos.X, pos.Pos.Y)
	}
}

// TestBallCollisionSeparation 测试重叠的球被分离且速度交换方向正确
func TestBallCollisionSeparation(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	a := spawnTestBall(em, cfg, utils.Vec(390, 300), utils.Vec(200, 0))
	b := spawnTestBall(em, cfg, utils.Vec(410, 300), utils.Vec(-200, 0))

	ps.Update(testDT)

	posA, _ := ecs.GetComponent[*components.PositionComponent](em, a)
	posB, _ := ecs.GetComponent[*components.PositionComponent](em, b)
	velA, _ := ecs.GetComponent[*components.VelocityComponent](em, a)
	velB, _ := ecs.GetComponent[*components.VelocityComponent](em, b)

	gap := posB.Pos.X - posA.Pos.X
	if gap < cfg.Ball.Radius*2 {
		t.Errorf("balls must be separated: gap=%v, want >= %v", gap, cfg.Ball.Radius*2)
	}
	// 对撞后各自反向
	if velA.Vel.X >= 0 {
		t.Errorf("ball A must bounce back: vx=%v", velA.Vel.X)
	}
	if velB.Vel.X <= 0 {
		t.Errorf("ball B must bounce back: vx=%v", velB.Vel.X)
	}
}

// TestCoincidentBallsDeterministicSeparation 测试圆心重合的球沿固定轴分离
func TestCoincidentBallsDeterministicSeparation(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	a := spawnTestBall(em, cfg, utils.Vec(400, 300), utils.Vec(0, 0))
	b := spawnTestBall(em, cfg, utils.Vec(400, 300), utils.Vec(0, 0))

	ps.Update(testDT)

	posA, _ := ecs.GetComponent[*components.PositionComponent](em, a)
	posB, _ := ecs.GetComponent[*components.PositionComponent](em, b)

	if posA.Pos.X >= posB.Pos.X {
		t.Errorf("coincident balls must separate along +X: a=%v b=%v", posA.Pos.X, posB.Pos.X)
	}
	if posA.Pos.Y != posB.Pos.Y {
		t.Errorf("separation must be on the X axis only: ya=%v yb=%v", posA.Pos.Y, posB.Pos.Y)
	}
}

// TestRestingBallRetiredAsMiss 测试静止落地球被回收并记为失手
func TestRestingBallRetiredAsMiss(t *testing.T) {
	em, cfg, session, ps := newPhysicsWorld(noDragCfg)
	id := spawnTestBall(em, cfg, utils.Vec(400, cfg.Playfield.Height-cfg.Ball.Radius), utils.Vec(2, 0))
	session.BallsInFlight = 1
	session.Clock = 5.0

	ps.Update(testDT)
	em.RemoveMarkedEntities()

	if em.IsAlive(id) {
		t.Error("resting launched ball must be retired")
	}
	if session.BallsInFlight != 0 {
		t.Errorf("balls in flight: got %d, want 0", session.BallsInFlight)
	}
	if session.MissStreak != 1 {
		t.Errorf("a trajectory without hits must count as a miss: streak=%d", session.MissStreak)
	}
}

// TestRecentHitSuppressesMiss 测试刚命中过的弹道落地不算失手
func TestRecentHitSuppressesMiss(t *testing.T) {
	em, cfg, session, ps := newPhysicsWorld(noDragCfg)
	spawnTestBall(em, cfg, utils.Vec(400, cfg.Playfield.Height-cfg.Ball.Radius), utils.Vec(2, 0))
	session.BallsInFlight = 1
	session.Clock = 5.0
	session.LastHitAt = 4.0 // 一秒前命中过，在失手窗口内

	ps.Update(testDT)

	if session.MissStreak != 0 {
		t.Errorf("recent hit must suppress the miss: streak=%d", session.MissStreak)
	}
}

// TestUnlaunchedBallNotRetired 测试未发射的球不会被回收
func TestUnlaunchedBallNotRetired(t *testing.T) {
	em, cfg, _, ps := newPhysicsWorld(noDragCfg)
	id := entities.NewBall(em, cfg, utils.Vec(400, cfg.Playfield.Height-cfg.Ball.Radius), false,
		rand.New(rand.NewSource(1)))

	ps.Update(testDT)
	em.RemoveMarkedEntities()

	if !em.IsAlive(id) {
		t.Error("a staged ball must never be retired")
	}
}
