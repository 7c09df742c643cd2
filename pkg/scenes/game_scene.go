// Package scenes 实现游戏的各个场景
package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"reflect"
	"slices"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/systems"
	"github.com/aegisx/ricochet/pkg/utils"
)

// GameScene 主游戏场景
//
// 持有实体管理器、全部逻辑系统和会话状态，按固定顺序逐帧推进：
// 输入 → 会话计时 → 弹弓 → 物理 → 生成 → 鸟 AI → 命中 →
// 云朵 → 道具 → 风 → 特效 → 实体清理 → 终局判定 → 快照。
// 暂停和游戏结束阶段世界冻结，仅接受恢复/重置输入
type GameScene struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	birdCfg *config.BirdStatsConfig
	session *game.Session
	rng     *rand.Rand

	slingshot *systems.SlingshotSystem
	physics   *systems.PhysicsSystem
	spawner   *systems.SpawnSystem
	birdAI    *systems.BirdSystem
	hits      *systems.HitSystem
	clouds    *systems.CloudSystem
	powerups  *systems.PowerUpSystem
	wind      *systems.WindSystem
	effects   *systems.EffectSystem

	snapshot *game.Snapshot
}

// NewGameScene 创建主游戏场景并初始化全部系统
func NewGameScene(cfg *config.GameplayConfig, birdCfg *config.BirdStatsConfig,
	session *game.Session, rng *rand.Rand) *GameScene {

	em := ecs.NewEntityManager()
	s := &GameScene{
		em:      em,
		cfg:     cfg,
		birdCfg: birdCfg,
		session: session,
		rng:     rng,

		slingshot: systems.NewSlingshotSystem(em, cfg, session, rng),
		physics:   systems.NewPhysicsSystem(em, cfg, session),
		spawner:   systems.NewSpawnSystem(em, cfg, birdCfg, session, rng),
		birdAI:    systems.NewBirdSystem(em, cfg, session),
		hits:      systems.NewHitSystem(em, cfg, birdCfg, session, rng),
		clouds:    systems.NewCloudSystem(em, cfg, rng),
		powerups:  systems.NewPowerUpSystem(em, cfg, session, rng),
		wind:      systems.NewWindSystem(cfg, session, rng),
		effects:   systems.NewEffectSystem(em),
	}
	s.snapshot = s.buildSnapshot()
	return s
}

// Snapshot 返回最近一帧的渲染快照
func (s *GameScene) Snapshot() *game.Snapshot {
	return s.snapshot
}

// Update 推进一帧游戏逻辑
func (s *GameScene) Update(deltaTime float64) {
	keys := utils.ReadKeys()

	if keys.Reset {
		s.reset()
		s.snapshot = s.buildSnapshot()
		return
	}
	if keys.TogglePause {
		s.session.TogglePause()
	}
	if keys.CycleMode {
		s.cycleRenderMode()
	}

	if s.session.Phase != game.PhaseRunning {
		// 世界冻结，快照保持上一帧内容（阶段字段仍然刷新）
		s.snapshot.Phase = s.session.Phase
		return
	}

	pointer := utils.ReadPointer()

	if s.session.Update(deltaTime) {
		entities.NewFloatingText(s.em,
			utils.Vec(s.cfg.Playfield.Width/2, s.cfg.Playfield.Height/2),
			fmt.Sprintf("WAVE %d", s.session.Wave), waveColor, 48)
	}

	s.slingshot.Update(pointer)
	s.physics.Update(deltaTime)
	s.spawner.Update(deltaTime)
	s.birdAI.Update(deltaTime)
	s.hits.Update(deltaTime)
	s.clouds.Update(deltaTime)
	s.powerups.Update(deltaTime)
	s.wind.Update(deltaTime)
	s.effects.Update(deltaTime)

	s.em.RemoveMarkedEntities()

	// 弹药和飞行球都耗尽且没有在拉弓时判定终局
	if dragging, _, _ := s.slingshot.Dragging(); !dragging && s.session.IsExhausted() {
		s.session.EnterGameOver()
	}

	s.snapshot = s.buildSnapshot()
}

// reset 重开一局：清空世界并重置会话与所有系统计时器
func (s *GameScene) reset() {
	s.slingshot.CancelDrag()
	s.em.Clear()
	s.session.Reset()
	s.spawner.Reset()
	s.clouds.Reset()
	s.powerups.Reset()
	s.wind.Reset()
	log.Printf("[Scene] World reset")
}

// cycleRenderMode 循环切换鸟的渲染模式（纯装饰）
func (s *GameScene) cycleRenderMode() {
	s.session.RenderMode = (s.session.RenderMode + 1) % 3
	for _, id := range s.em.GetEntitiesWith(ecs.TypeOf[*components.BirdComponent]()) {
		bird, _ := ecs.GetComponent[*components.BirdComponent](s.em, id)
		bird.RenderMode = s.session.RenderMode
	}
}

// buildSnapshot 构建本帧的只读渲染快照
// 所有切片按实体创建顺序排列，逐帧新建，不持有模拟状态的引用
func (s *GameScene) buildSnapshot() *game.Snapshot {
	snap := &game.Snapshot{
		Dragging:   false,
		DragBallID: -1,
		Score:      s.session.Score,
		HighScore:  s.session.HighScore,
		Ammo:       s.session.Ammo,
		Combo:      s.session.ComboCount,
		MaxCombo:   s.session.MaxCombo,
		Shots:      s.session.ShotsFired,
		Wave:       s.session.Wave,
		Phase:      s.session.Phase,
	}

	dragging, anchor, dragID := s.slingshot.Dragging()
	snap.Dragging = dragging
	snap.DragAnchor = anchor

	for i, id := range s.sorted(ecs.TypeOf[*components.BallComponent]()) {
		ball, _ := ecs.GetComponent[*components.BallComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		snap.Balls = append(snap.Balls, game.BallView{
			Pos:    pos.Pos,
			Radius: ball.Radius,
			Color:  ball.Color,
			Squish: ball.SquishFactor,
		})
		if dragging && id == dragID {
			snap.DragBallID = i
		}
	}

	for _, id := range s.sorted(ecs.TypeOf[*components.BirdComponent]()) {
		bird, _ := ecs.GetComponent[*components.BirdComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		snap.Birds = append(snap.Birds, game.BirdView{
			Pos:        pos.Pos,
			Type:       bird.Type,
			State:      bird.State,
			RenderMode: bird.RenderMode,
			Direction:  bird.Direction,
			WingFrame:  bird.WingFrame,
		})
	}

	for _, id := range s.sorted(ecs.TypeOf[*components.CloudComponent]()) {
		cloud, _ := ecs.GetComponent[*components.CloudComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		snap.Clouds = append(snap.Clouds, game.CloudView{
			Pos:    pos.Pos,
			Width:  cloud.Width,
			Height: cloud.Height,
		})
	}

	for _, id := range s.sorted(ecs.TypeOf[*components.PowerUpComponent]()) {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		// 最后一秒淡出
		alpha := pu.Duration - pu.Age
		if alpha > 1 {
			alpha = 1
		}
		snap.PowerUps = append(snap.PowerUps, game.PowerUpView{
			Pos:   pos.Pos,
			Type:  pu.Type,
			Alpha: alpha,
		})
	}

	for _, id := range s.sorted(ecs.TypeOf[*components.FloatingTextComponent]()) {
		t, _ := ecs.GetComponent[*components.FloatingTextComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		snap.Texts = append(snap.Texts, game.TextView{
			Pos:      pos.Pos,
			Text:     t.Text,
			Color:    t.Color,
			FontSize: t.FontSize,
			Alpha:    1.0 - t.Age/t.Duration,
		})
	}

	for _, id := range s.sorted(ecs.TypeOf[*components.ParticleComponent]()) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		snap.Particles = append(snap.Particles, game.ParticleView{
			Pos:   pos.Pos,
			Color: p.Color,
			Size:  p.Size,
			Alpha: p.Life / p.StartLife,
		})
	}

	return snap
}

// sorted 按创建顺序返回拥有指定组件的实体
func (s *GameScene) sorted(t reflect.Type) []ecs.EntityID {
	ids := s.em.GetEntitiesWith(t)
	slices.Sort(ids)
	return ids
}
