package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/game"
)

// TestWindRerollsWithinInterval 测试风在配置上限内必然重掷
func TestWindRerollsWithinInterval(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	session := game.NewSession(cfg, nil)
	ws := NewWindSystem(cfg, session, rand.New(rand.NewSource(7)))

	steps := int(cfg.Effects.WindChangeMax/testDT) + 2
	rerolled := false
	for i := 0; i < steps; i++ {
		ws.Update(testDT)
		if session.WindStrength != 0 {
			rerolled = true
			break
		}
	}

	if !rerolled {
		t.Fatal("wind must reroll within the configured interval")
	}
	if session.WindStrength < 0 || session.WindStrength >= cfg.Effects.WindMaxStrength {
		t.Errorf("wind strength out of range: %v", session.WindStrength)
	}
	if session.WindDirection < 0 || session.WindDirection >= 2*math.Pi {
		t.Errorf("wind direction out of range: %v", session.WindDirection)
	}
}

// TestWindTimerResetsAfterReroll 测试重掷后计时器归零重新累计
func TestWindTimerResetsAfterReroll(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	session := game.NewSession(cfg, nil)
	ws := NewWindSystem(cfg, session, rand.New(rand.NewSource(7)))

	// 推到刚好重掷之后
	for i := 0; i < int(cfg.Effects.WindChangeMax/testDT)+2; i++ {
		ws.Update(testDT)
		if session.WindStrength != 0 {
			break
		}
	}

	if session.WindTimer >= cfg.Effects.WindChangeMin {
		t.Errorf("wind timer must restart after reroll: %v", session.WindTimer)
	}
}
