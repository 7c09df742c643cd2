package systems

import (
	"math/rand"
	"testing"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
)

func newSpawnWorld(seed int64) (*ecs.EntityManager, *config.GameplayConfig, *game.Session, *SpawnSystem) {
	cfg := config.DefaultGameplayConfig()
	em := ecs.NewEntityManager()
	session := game.NewSession(cfg, nil)
	birds := config.DefaultBirdStats()
	return em, cfg, session, NewSpawnSystem(em, cfg, birds, session, rand.New(rand.NewSource(seed)))
}

func countBirds(em *ecs.EntityManager) int {
	return len(em.GetEntitiesWith(ecs.TypeOf[*components.BirdComponent]()))
}

// addFlyingBirds 直接放置 n 只飞行中的鸟
func addFlyingBirds(em *ecs.EntityManager, n int) {
	stats := config.DefaultBirdStats().Birds[config.BirdKeyRegular]
	for i := 0; i < n; i++ {
		entities.NewBird(em, stats, components.BirdRegular, 1, 100, 150, components.RenderSprite)
	}
}

// TestSpawnWithinInterval 测试在间隔上限内至少生成一只鸟
func TestSpawnWithinInterval(t *testing.T) {
	em, cfg, _, spawner := newSpawnWorld(1)

	// 推进到间隔上限，必然触发一次生成
	steps := int(cfg.Spawn.IntervalMax/testDT) + 1
	for i := 0; i < steps; i++ {
		spawner.Update(testDT)
	}

	if countBirds(em) < 1 {
		t.Fatal("a bird must spawn within the max interval")
	}
}

// TestSpawnedBirdIsValid 测试新生鸟的状态和位置
func TestSpawnedBirdIsValid(t *testing.T) {
	em, cfg, _, spawner := newSpawnWorld(2)

	for i := 0; i < 400 && countBirds(em) == 0; i++ {
		spawner.Update(testDT)
	}

	ids := em.GetEntitiesWith(ecs.TypeOf[*components.BirdComponent]())
	if len(ids) == 0 {
		t.Fatal("no bird spawned")
	}

	bird, _ := ecs.GetComponent[*components.BirdComponent](em, ids[0])
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, ids[0])
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, ids[0])

	if bird.State != components.BirdFlying {
		t.Errorf("new bird state: got %v, want BirdFlying", bird.State)
	}
	if bird.Direction != 1 && bird.Direction != -1 {
		t.Errorf("direction: got %d, want 1 or -1", bird.Direction)
	}
	if vel.Vel.X == 0 {
		t.Error("new bird must have nonzero horizontal velocity")
	}
	// 方向与速度一致
	if float64(bird.Direction)*vel.Vel.X <= 0 {
		t.Errorf("velocity must follow direction: dir=%d vx=%v", bird.Direction, vel.Vel.X)
	}
	// 出生在场地边缘外
	if pos.Pos.X > 0 && pos.Pos.X < cfg.Playfield.Width {
		t.Errorf("bird must spawn off-screen: x=%v", pos.Pos.X)
	}
	// 飞行高度在配置范围内
	if bird.BaseY < cfg.Spawn.HeightMin || bird.BaseY > cfg.Spawn.HeightMax {
		t.Errorf("baseY out of range: %v", bird.BaseY)
	}
}

// TestSpawnDeferredAtCap 测试同屏鸟数达到上限时生成被推迟而非丢弃
func TestSpawnDeferredAtCap(t *testing.T) {
	em, cfg, _, spawner := newSpawnWorld(3)
	addFlyingBirds(em, cfg.Spawn.MaxLiveBirds)

	// 推进远超间隔上限：不应有新鸟
	for i := 0; i < 600; i++ {
		spawner.Update(testDT)
	}
	if got := countBirds(em); got != cfg.Spawn.MaxLiveBirds {
		t.Fatalf("spawn at cap: got %d birds, want %d", got, cfg.Spawn.MaxLiveBirds)
	}

	// 腾出一个位置：被推迟的生成立即执行
	ids := em.GetEntitiesWith(ecs.TypeOf[*components.BirdComponent]())
	em.DestroyEntity(ids[0])
	em.RemoveMarkedEntities()

	spawner.Update(testDT)
	if got := countBirds(em); got != cfg.Spawn.MaxLiveBirds {
		t.Errorf("deferred spawn must fire once a slot opens: got %d birds, want %d",
			got, cfg.Spawn.MaxLiveBirds)
	}
}

// TestPickTypeDistribution 测试权重选择覆盖所有类型且普通鸟居多
func TestPickTypeDistribution(t *testing.T) {
	_, _, _, spawner := newSpawnWorld(4)

	counts := make(map[components.BirdType]int)
	for i := 0; i < 10000; i++ {
		typ, _ := spawner.pickType()
		counts[typ]++
	}

	if counts[components.BirdRegular] < counts[components.BirdGolden] ||
		counts[components.BirdGolden] < counts[components.BirdRare] {
		t.Errorf("weight ordering violated: %v", counts)
	}
	for _, typ := range []components.BirdType{
		components.BirdRegular, components.BirdGolden, components.BirdAngry, components.BirdRare,
	} {
		if counts[typ] == 0 {
			t.Errorf("type %v never picked in 10000 draws", typ)
		}
	}
}

// TestRareWeightGrowsWithWave 测试波数提升稀有鸟的出现频率
func TestRareWeightGrowsWithWave(t *testing.T) {
	_, _, session, spawner := newSpawnWorld(5)

	draw := func() int {
		rare := 0
		for i := 0; i < 10000; i++ {
			if typ, _ := spawner.pickType(); typ == components.BirdRare {
				rare++
			}
		}
		return rare
	}

	session.Wave = 1
	early := draw()
	session.Wave = 10
	late := draw()

	if late <= early {
		t.Errorf("rare frequency must grow with wave: wave1=%d wave10=%d", early, late)
	}
}
