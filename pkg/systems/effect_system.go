package systems

import (
	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/ecs"
)

// 特效运动参数
const (
	particleGravity = 300.0 // 粒子重力（弱于球体重力，羽毛飘落感）
	particleDrag    = 0.96  // 粒子每帧速度保留比例
	textRiseSpeed   = 50.0  // 浮动文字上升速度（像素/秒）
)

// EffectSystem 特效系统：粒子与浮动文字的运动和过期回收
type EffectSystem struct {
	em *ecs.EntityManager
}

// NewEffectSystem 创建特效系统
func NewEffectSystem(em *ecs.EntityManager) *EffectSystem {
	return &EffectSystem{em: em}
}

// Update 推进所有特效实体
func (es *EffectSystem) Update(deltaTime float64) {
	es.updateParticles(deltaTime)
	es.updateTexts(deltaTime)
}

func (es *EffectSystem) updateParticles(deltaTime float64) {
	ids := es.em.GetEntitiesWith(
		ecs.TypeOf[*components.ParticleComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.VelocityComponent](),
	)
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.ParticleComponent](es.em, id)
		p.Life -= deltaTime
		if p.Life <= 0 {
			es.em.DestroyEntity(id)
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](es.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](es.em, id)

		vel.Vel.Y += particleGravity * deltaTime
		vel.Vel = vel.Vel.Scale(particleDrag)
		pos.Pos = pos.Pos.Add(vel.Vel.Scale(deltaTime))
	}
}

func (es *EffectSystem) updateTexts(deltaTime float64) {
	ids := es.em.GetEntitiesWith(
		ecs.TypeOf[*components.FloatingTextComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	for _, id := range ids {
		t, _ := ecs.GetComponent[*components.FloatingTextComponent](es.em, id)
		t.Age += deltaTime
		if t.Age >= t.Duration {
			es.em.DestroyEntity(id)
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](es.em, id)
		pos.Pos.Y -= textRiseSpeed * deltaTime
	}
}
