package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/game"
)

// WindSystem 风力系统
//
// 按抖动间隔重掷风向与风力，结果写入会话状态由物理系统
// 消费。风只作用于已发射的球，不影响鸟和拉弓中的球
type WindSystem struct {
	cfg     *config.GameplayConfig
	session *game.Session
	rng     *rand.Rand

	rerollAt float64 // 下次重掷的累计风计时
}

// NewWindSystem 创建风力系统
func NewWindSystem(cfg *config.GameplayConfig, session *game.Session, rng *rand.Rand) *WindSystem {
	ws := &WindSystem{cfg: cfg, session: session, rng: rng}
	ws.scheduleReroll()
	return ws
}

// Reset 重置风计时（新一局开始时调用）
func (ws *WindSystem) Reset() {
	ws.session.WindTimer = 0
	ws.scheduleReroll()
}

// Update 推进风计时器，到期时重掷风向与风力
func (ws *WindSystem) Update(deltaTime float64) {
	ws.session.WindTimer += deltaTime
	if ws.session.WindTimer < ws.rerollAt {
		return
	}

	ws.session.WindTimer = 0
	ws.session.WindStrength = ws.rng.Float64() * ws.cfg.Effects.WindMaxStrength
	ws.session.WindDirection = ws.rng.Float64() * 2 * math.Pi
	ws.scheduleReroll()

	log.Printf("[Wind] Strength=%.0f direction=%.2frad", ws.session.WindStrength, ws.session.WindDirection)
}

// scheduleReroll 在配置区间内抖动下次重掷时间
func (ws *WindSystem) scheduleReroll() {
	span := ws.cfg.Effects.WindChangeMax - ws.cfg.Effects.WindChangeMin
	ws.rerollAt = ws.cfg.Effects.WindChangeMin + ws.rng.Float64()*span
}
