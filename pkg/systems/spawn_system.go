package systems

import (
	"log"
	"math/rand"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

// spawnOrder 权重选择时的固定遍历顺序
// map 遍历顺序随机，相同随机序列必须得到相同的生成结果
var spawnOrder = []struct {
	key string
	typ components.BirdType
}{
	{config.BirdKeyRegular, components.BirdRegular},
	{config.BirdKeyGolden, components.BirdGolden},
	{config.BirdKeyAngry, components.BirdAngry},
	{config.BirdKeyRare, components.BirdRare},
}

// SpawnSystem 鸟类生成系统
//
// 按抖动间隔在场地左右边缘外生成鸟。同屏鸟数达到上限时
// 生成被推迟到有空位的那一帧，而不是丢弃
type SpawnSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	birds   *config.BirdStatsConfig
	session *game.Session
	rng     *rand.Rand

	timer   float64 // 距下次生成的剩余时间（秒）
	pending bool    // 计时器已到期但因上限被推迟
}

// NewSpawnSystem 创建生成系统，首次生成时间同样抖动
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameplayConfig,
	birds *config.BirdStatsConfig, session *game.Session, rng *rand.Rand) *SpawnSystem {

	s := &SpawnSystem{
		em:      em,
		cfg:     cfg,
		birds:   birds,
		session: session,
		rng:     rng,
	}
	s.resetTimer()
	return s
}

// Reset 重置生成计时器（新一局开始时调用）
func (s *SpawnSystem) Reset() {
	s.pending = false
	s.resetTimer()
}

// Update 推进生成计时器，到期且有空位时生成一只鸟
func (s *SpawnSystem) Update(deltaTime float64) {
	if !s.pending {
		s.timer -= deltaTime
		if s.timer <= 0 {
			s.pending = true
		}
	}

	if !s.pending {
		return
	}

	if s.liveBirdCount() >= s.cfg.Spawn.MaxLiveBirds {
		// 同屏鸟数到达上限，推迟到有空位再生成
		return
	}

	s.spawnBird()
	s.pending = false
	s.resetTimer()
}

// resetTimer 在 [IntervalMin, IntervalMax] 内抖动下次生成时间
func (s *SpawnSystem) resetTimer() {
	span := s.cfg.Spawn.IntervalMax - s.cfg.Spawn.IntervalMin
	s.timer = s.cfg.Spawn.IntervalMin + s.rng.Float64()*span
}

// liveBirdCount 统计仍在飞行中的鸟数
func (s *SpawnSystem) liveBirdCount() int {
	count := 0
	for _, id := range s.em.GetEntitiesWith(ecs.TypeOf[*components.BirdComponent]()) {
		bird, _ := ecs.GetComponent[*components.BirdComponent](s.em, id)
		if bird.State == components.BirdFlying {
			count++
		}
	}
	return count
}

// spawnBird 在场地边缘外生成一只随机类型的鸟
func (s *SpawnSystem) spawnBird() {
	birdType, key := s.pickType()
	stats := s.birds.Birds[key]

	// 随机选择入场方向，出生点在场地外一整个鸟宽处
	direction := 1
	startX := -entities.BirdWidth
	if s.rng.Float64() < 0.5 {
		direction = -1
		startX = s.cfg.Playfield.Width + entities.BirdWidth
	}

	heightSpan := s.cfg.Spawn.HeightMax - s.cfg.Spawn.HeightMin
	baseY := s.cfg.Spawn.HeightMin + s.rng.Float64()*heightSpan

	mode := s.renderMode()
	entities.NewBird(s.em, stats, birdType, direction, startX, baseY, mode)

	log.Printf("[Spawn] Bird type=%s direction=%d baseY=%.0f wave=%d",
		key, direction, baseY, s.session.Wave)
}

// pickType 按权重随机选择鸟类型
// 波数越高稀有鸟的有效权重越大，后期局面更值钱也更难
func (s *SpawnSystem) pickType() (components.BirdType, string) {
	rareBonus := (s.session.Wave - 1) * 3
	if rareBonus < 0 {
		rareBonus = 0
	}

	total := s.birds.TotalWeight() + rareBonus
	roll := s.rng.Intn(total)

	for _, entry := range spawnOrder {
		weight := s.birds.Birds[entry.key].Weight
		if entry.key == config.BirdKeyRare {
			weight += rareBonus
		}
		if roll < weight {
			return entry.typ, entry.key
		}
		roll -= weight
	}
	return components.BirdRegular, config.BirdKeyRegular
}

// renderMode 当前会话的渲染模式标签
func (s *SpawnSystem) renderMode() components.BirdRenderMode {
	return s.session.RenderMode
}

// escaped 判断鸟是否飞出了场地加逃逸余量
func escaped(pos utils.Vector2, fieldWidth, margin float64) bool {
	return pos.X < -margin || pos.X > fieldWidth+margin
}
