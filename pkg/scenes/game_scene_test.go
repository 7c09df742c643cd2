package scenes

import (
	"math/rand"
	"testing"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

func newTestScene() *GameScene {
	cfg := config.DefaultGameplayConfig()
	birdCfg := config.DefaultBirdStats()
	session := game.NewSession(cfg, nil)
	return NewGameScene(cfg, birdCfg, session, rand.New(rand.NewSource(21)))
}

// TestInitialSnapshotContainsClouds 测试初始快照已包含装饰云朵且无球无鸟
func TestInitialSnapshotContainsClouds(t *testing.T) {
	s := newTestScene()
	snap := s.Snapshot()

	if snap == nil {
		t.Fatal("scene must publish a snapshot on creation")
	}
	if len(snap.Clouds) != s.cfg.Effects.CloudCount {
		t.Errorf("clouds in snapshot: got %d, want %d", len(snap.Clouds), s.cfg.Effects.CloudCount)
	}
	if len(snap.Balls) != 0 || len(snap.Birds) != 0 {
		t.Errorf("fresh world must hold no balls or birds: %d/%d", len(snap.Balls), len(snap.Birds))
	}
	if snap.Ammo != s.cfg.Ammo.Initial {
		t.Errorf("ammo: got %d, want %d", snap.Ammo, s.cfg.Ammo.Initial)
	}
	if snap.Phase != game.PhaseRunning {
		t.Errorf("phase: got %v, want PhaseRunning", snap.Phase)
	}
	if snap.DragBallID != -1 {
		t.Errorf("no drag on a fresh snapshot: DragBallID=%d", snap.DragBallID)
	}
}

// TestSnapshotReflectsWorldEntities 测试快照按创建顺序复制世界实体
func TestSnapshotReflectsWorldEntities(t *testing.T) {
	s := newTestScene()

	first := entities.NewBall(s.em, s.cfg, utils.Vec(100, 100), false, s.rng)
	entities.NewBall(s.em, s.cfg, utils.Vec(200, 100), true, s.rng)
	entities.NewBird(s.em, s.birdCfg.Birds[config.BirdKeyRegular], components.BirdRegular,
		1, -30, 150, components.RenderGeometric)

	snap := s.buildSnapshot()

	if len(snap.Balls) != 2 {
		t.Fatalf("balls in snapshot: got %d, want 2", len(snap.Balls))
	}
	if snap.Balls[0].Pos.X != 100 || snap.Balls[1].Pos.X != 200 {
		t.Errorf("balls must appear in creation order: %v, %v", snap.Balls[0].Pos, snap.Balls[1].Pos)
	}
	if snap.Balls[1].Radius <= snap.Balls[0].Radius {
		t.Errorf("big ball must be larger: %v vs %v", snap.Balls[1].Radius, snap.Balls[0].Radius)
	}
	if len(snap.Birds) != 1 {
		t.Fatalf("birds in snapshot: got %d, want 1", len(snap.Birds))
	}
	if snap.Birds[0].Type != components.BirdRegular {
		t.Errorf("bird type: got %v", snap.Birds[0].Type)
	}

	// 快照不持有世界状态的引用
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, first)
	pos.Pos.X = 999
	if snap.Balls[0].Pos.X != 100 {
		t.Error("snapshot must be a copy, not a reference")
	}
}

// TestResetClearsWorldAndSession 测试重置清空世界并恢复会话初始状态
func TestResetClearsWorldAndSession(t *testing.T) {
	s := newTestScene()

	entities.NewBall(s.em, s.cfg, utils.Vec(100, 100), false, s.rng)
	s.session.Score = 42
	s.session.Ammo = 0
	s.session.EnterGameOver()

	s.reset()

	if ids := s.em.GetEntitiesWith(ecs.TypeOf[*components.BallComponent]()); len(ids) != 0 {
		t.Errorf("reset must clear balls: %d left", len(ids))
	}
	// 重置后云朵重新生成
	if ids := s.em.GetEntitiesWith(ecs.TypeOf[*components.CloudComponent]()); len(ids) != s.cfg.Effects.CloudCount {
		t.Errorf("reset must respawn clouds: got %d", len(ids))
	}
	if s.session.Score != 0 || s.session.Ammo != s.cfg.Ammo.Initial {
		t.Errorf("session must be reset: score=%d ammo=%d", s.session.Score, s.session.Ammo)
	}
	if s.session.Phase != game.PhaseRunning {
		t.Errorf("phase after reset: got %v", s.session.Phase)
	}
}

// TestCycleRenderModeUpdatesLiveBirds 测试切换渲染模式同步到存活的鸟
func TestCycleRenderModeUpdatesLiveBirds(t *testing.T) {
	s := newTestScene()
	id := entities.NewBird(s.em, s.birdCfg.Birds[config.BirdKeyRegular], components.BirdRegular,
		1, -30, 150, s.session.RenderMode)

	before := s.session.RenderMode
	s.cycleRenderMode()

	if s.session.RenderMode == before {
		t.Error("render mode must advance")
	}
	bird, _ := ecs.GetComponent[*components.BirdComponent](s.em, id)
	if bird.RenderMode != s.session.RenderMode {
		t.Errorf("live bird must follow the session mode: %v vs %v", bird.RenderMode, s.session.RenderMode)
	}
}
