package systems

import (
	"math"
	"testing"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

func newBirdWorld() (*ecs.EntityManager, *config.GameplayConfig, *game.Session, *BirdSystem) {
	cfg := config.DefaultGameplayConfig()
	em := ecs.NewEntityManager()
	session := game.NewSession(cfg, nil)
	return em, cfg, session, NewBirdSystem(em, cfg, session)
}

func spawnTestBird(em *ecs.EntityManager, birdType components.BirdType, direction int, startX, baseY float64) ecs.EntityID {
	stats := config.DefaultBirdStats().Birds[entities.BirdTypeKey(birdType)]
	return entities.NewBird(em, stats, birdType, direction, startX, baseY, components.RenderSprite)
}

// TestBirdMovesAlongDirection 测试鸟沿出生方向匀速水平移动
func TestBirdMovesAlongDirection(t *testing.T) {
	em, _, _, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRegular, 1, 100, 150)

	for i := 0; i < 60; i++ {
		bs.Update(testDT)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	// 一秒后前进约一个速度单位（100 像素）
	if math.Abs(pos.Pos.X-200) > 1 {
		t.Errorf("x after 1s: got %v, want ~200", pos.Pos.X)
	}
}

// TestSineFlightStaysAroundBaseY 测试正弦飞行围绕基准高度摆动
func TestSineFlightStaysAroundBaseY(t *testing.T) {
	em, _, _, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRegular, 1, 100, 150)

	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < 300; i++ {
		bs.Update(testDT)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		minY = math.Min(minY, pos.Pos.Y)
		maxY = math.Max(maxY, pos.Pos.Y)
	}

	if minY < 150-sineAmplitude-1e-6 || maxY > 150+sineAmplitude+1e-6 {
		t.Errorf("oscillation out of bounds: [%v,%v], want within 150±%v", minY, maxY, sineAmplitude)
	}
	// 确实在摆动而不是直线飞行
	if maxY-minY < sineAmplitude {
		t.Errorf("bird should oscillate: range=%v", maxY-minY)
	}
}

// TestGoldenBirdSwingsWider 测试金鸟的起伏幅度大于普通鸟
func TestGoldenBirdSwingsWider(t *testing.T) {
	em, _, _, bs := newBirdWorld()
	regular := spawnTestBird(em, components.BirdRegular, 1, 100, 150)
	golden := spawnTestBird(em, components.BirdGolden, 1, 100, 150)

	minR, maxR := math.MaxFloat64, -math.MaxFloat64
	minG, maxG := math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < 300; i++ {
		bs.Update(testDT)
		posR, _ := ecs.GetComponent[*components.PositionComponent](em, regular)
		posG, _ := ecs.GetComponent[*components.PositionComponent](em, golden)
		minR = math.Min(minR, posR.Pos.Y)
		maxR = math.Max(maxR, posR.Pos.Y)
		minG = math.Min(minG, posG.Pos.Y)
		maxG = math.Max(maxG, posG.Pos.Y)
	}

	if maxG-minG <= maxR-minR {
		t.Errorf("golden swing (%v) must exceed regular swing (%v)", maxG-minG, maxR-minR)
	}
}

// TestEscapedBirdRemovedWithoutScore 测试飞出逃逸余量的鸟被移除且不计分
func TestEscapedBirdRemovedWithoutScore(t *testing.T) {
	em, cfg, session, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRegular, 1, -entities.BirdWidth, 150)

	// 速度 100 像素/秒，需要跨越约 960+160 像素，11.5 秒足够
	for i := 0; i < int(11.5/testDT); i++ {
		bs.Update(testDT)
		em.RemoveMarkedEntities()
		if !em.IsAlive(id) {
			break
		}
	}

	if em.IsAlive(id) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		t.Fatalf("bird must be culled after escaping: x=%v margin=%v", pos.Pos.X, cfg.Spawn.EscapeMargin)
	}
	if session.Score != 0 {
		t.Errorf("escape must not score: got %d", session.Score)
	}
	if session.MissStreak != 0 {
		t.Errorf("escape must not count as a miss: got %d", session.MissStreak)
	}
}

// TestRareBirdDodgesApproachingBall 测试稀有鸟在球接近时闪避
func TestRareBirdDodgesApproachingBall(t *testing.T) {
	em, cfg, _, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRare, 1, 400, 200)

	// 在触发距离内放一个已发射的球
	spawnTestBall(em, cfg, utils.Vec(400, 250), utils.Vec(0, -300))

	baseBefore := 200.0
	bs.Update(testDT)

	bird, _ := ecs.GetComponent[*components.BirdComponent](em, id)
	if !bird.Dodging {
		t.Fatal("rare bird must start dodging near a launched ball")
	}
	// 球在下方，鸟应向上平移基准高度
	if bird.BaseY >= baseBefore {
		t.Errorf("dodge must shift BaseY away from the threat: got %v, was %v", bird.BaseY, baseBefore)
	}
}

// TestRegularBirdIgnoresBall 测试普通鸟不会闪避
func TestRegularBirdIgnoresBall(t *testing.T) {
	em, cfg, _, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRegular, 1, 400, 200)
	spawnTestBall(em, cfg, utils.Vec(400, 250), utils.Vec(0, -300))

	bs.Update(testDT)

	bird, _ := ecs.GetComponent[*components.BirdComponent](em, id)
	if bird.Dodging {
		t.Error("regular birds must not dodge")
	}
	if bird.BaseY != 200 {
		t.Errorf("BaseY must be unchanged: got %v", bird.BaseY)
	}
}

// TestSlowmoHalvesBirdSpeed 测试慢动作效果使鸟半速飞行
func TestSlowmoHalvesBirdSpeed(t *testing.T) {
	em, _, session, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRegular, 1, 100, 150)
	session.ActivateSlowmo()

	for i := 0; i < 60; i++ {
		bs.Update(testDT)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	// 半速：一秒只前进约 50 像素
	if math.Abs(pos.Pos.X-150) > 1 {
		t.Errorf("x under slowmo after 1s: got %v, want ~150", pos.Pos.X)
	}
}

// TestWingFrameCycles 测试翅膀动画帧循环
func TestWingFrameCycles(t *testing.T) {
	em, _, _, bs := newBirdWorld()
	id := spawnTestBird(em, components.BirdRegular, 1, 100, 150)

	seen := make(map[int]bool)
	for i := 0; i < 60; i++ {
		bs.Update(testDT)
		bird, _ := ecs.GetComponent[*components.BirdComponent](em, id)
		if bird.WingFrame < 0 || bird.WingFrame >= wingFrames {
			t.Fatalf("wing frame out of range: %d", bird.WingFrame)
		}
		seen[bird.WingFrame] = true
	}
	if len(seen) != wingFrames {
		t.Errorf("all %d wing frames should appear within 1s, saw %d", wingFrames, len(seen))
	}
}
