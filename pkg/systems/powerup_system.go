package systems

import (
	"log"
	"math/rand"
	"slices"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 道具拾取判定的额外半径与持续型效果时长
const (
	pickupMargin   = 20.0
	effectDuration = 10.0 // 大球/磁铁效果时长（秒）
)

// powerUpLabel 道具拾取提示文案
var powerUpLabel = map[components.PowerUpType]string{
	components.PowerMultiball: "MULTIBALL!",
	components.PowerSlowmo:    "SLOW MOTION!",
	components.PowerBigball:   "BIG BALL!",
	components.PowerMagnet:    "MAGNET!",
}

// PowerUpSystem 道具系统
//
// 按抖动间隔在场地上方生成道具，超时未拾取的道具消失。
// 球碰到道具即拾取并激活效果：多重球武装下一次发射，
// 慢动作和大球/磁铁为限时效果
type PowerUpSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameplayConfig
	session *game.Session
	rng     *rand.Rand

	spawnTimer  float64
	bigballEnds float64 // 大球效果结束的游戏时间
	magnetEnds  float64 // 磁铁效果结束的游戏时间
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(em *ecs.EntityManager, cfg *config.GameplayConfig,
	session *game.Session, rng *rand.Rand) *PowerUpSystem {

	ps := &PowerUpSystem{em: em, cfg: cfg, session: session, rng: rng}
	ps.resetSpawnTimer()
	return ps
}

// Reset 重置生成计时器与效果状态
func (ps *PowerUpSystem) Reset() {
	ps.bigballEnds = 0
	ps.magnetEnds = 0
	ps.resetSpawnTimer()
}

// Update 推进道具生命周期、生成与拾取
func (ps *PowerUpSystem) Update(deltaTime float64) {
	ps.expireEffects()

	ps.spawnTimer -= deltaTime
	if ps.spawnTimer <= 0 {
		entities.NewPowerUp(ps.em, ps.cfg.Playfield.Width, ps.cfg.Effects.PowerUpDuration, ps.rng)
		ps.resetSpawnTimer()
	}

	ids := ps.em.GetEntitiesWith(
		ecs.TypeOf[*components.PowerUpComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	slices.Sort(ids)

	for _, id := range ids {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](ps.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)

		pu.Age += deltaTime
		if pu.Age >= pu.Duration {
			ps.em.DestroyEntity(id)
			continue
		}

		if ps.tryPickup(pu, pos.Pos) {
			ps.em.DestroyEntity(id)
		}
	}
}

// resetSpawnTimer 在配置区间内抖动下次道具生成时间
func (ps *PowerUpSystem) resetSpawnTimer() {
	span := ps.cfg.Effects.PowerUpSpawnMax - ps.cfg.Effects.PowerUpSpawnMin
	ps.spawnTimer = ps.cfg.Effects.PowerUpSpawnMin + ps.rng.Float64()*span
}

// expireEffects 关闭已到期的限时效果
func (ps *PowerUpSystem) expireEffects() {
	if ps.session.BigballActive && ps.session.Clock >= ps.bigballEnds {
		ps.session.BigballActive = false
	}
	if ps.session.MagnetActive && ps.session.Clock >= ps.magnetEnds {
		ps.session.MagnetActive = false
	}
}

// tryPickup 检测是否有球碰到道具，有则激活效果
func (ps *PowerUpSystem) tryPickup(pu *components.PowerUpComponent, pos utils.Vector2) bool {
	ballIDs := ps.em.GetEntitiesWith(
		ecs.TypeOf[*components.BallComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	slices.Sort(ballIDs)

	for _, ballID := range ballIDs {
		ball, _ := ecs.GetComponent[*components.BallComponent](ps.em, ballID)
		if ball.State == components.BallGrabbed {
			continue
		}
		bpos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, ballID)
		if bpos.Pos.DistanceTo(pos) > ball.Radius+pickupMargin {
			continue
		}

		ps.activate(pu.Type)
		entities.NewFloatingText(ps.em, pos, powerUpLabel[pu.Type], goldColor, 30)
		log.Printf("[PowerUp] Collected: %s", powerUpLabel[pu.Type])
		return true
	}
	return false
}

// activate 激活道具效果
func (ps *PowerUpSystem) activate(t components.PowerUpType) {
	switch t {
	case components.PowerMultiball:
		ps.session.MultiballArmed = true
	case components.PowerSlowmo:
		ps.session.ActivateSlowmo()
	case components.PowerBigball:
		ps.session.BigballActive = true
		ps.bigballEnds = ps.session.Clock + effectDuration
	case components.PowerMagnet:
		ps.session.MagnetActive = true
		ps.magnetEnds = ps.session.Clock + effectDuration
	}
}
