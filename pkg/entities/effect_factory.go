package entities

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/utils"
)

// featherPalette 羽毛粒子的候选颜色
var featherPalette = []color.RGBA{
	{R: 248, G: 249, B: 250, A: 255},
	{R: 245, G: 245, B: 220, A: 255},
	{R: 255, G: 248, B: 220, A: 255},
	{R: 250, G: 235, B: 215, A: 255},
}

// cloudPuffColor 云朵碎屑粒子颜色
var cloudPuffColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// NewFloatingText 创建一条漂浮提示文本（2 秒后消失）
func NewFloatingText(em *ecs.EntityManager, pos utils.Vector2, text string, textColor color.RGBA, fontSize int) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, &components.FloatingTextComponent{
		Text:     text,
		Color:    textColor,
		FontSize: fontSize,
		Duration: 2.0,
	})
	return id
}

// NewFeatherBurst 在命中点生成一簇羽毛粒子
// 粒子带轻微向上的初速度偏置，之后受重力下落
func NewFeatherBurst(em *ecs.EntityManager, pos utils.Vector2, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 50 + rng.Float64()*100
		vel := utils.Vec(
			math.Cos(angle)*speed,
			math.Sin(angle)*speed-(30+rng.Float64()*50),
		)

		life := 1.5 + rng.Float64()
		id := em.CreateEntity()
		em.AddComponent(id, &components.PositionComponent{
			Pos: pos.Add(utils.Vec(rng.Float64()*20-10, rng.Float64()*20-10)),
		})
		em.AddComponent(id, &components.VelocityComponent{Vel: vel})
		em.AddComponent(id, &components.ParticleComponent{
			Color:     featherPalette[rng.Intn(len(featherPalette))],
			Size:      float64(2 + rng.Intn(3)),
			Life:      life,
			StartLife: life,
		})
	}
}

// NewCloudPuffs 球穿过云朵时生成的碎屑粒子
func NewCloudPuffs(em *ecs.EntityManager, pos utils.Vector2, rng *rand.Rand) {
	for i := 0; i < 8; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &components.PositionComponent{
			Pos: pos.Add(utils.Vec(rng.Float64()*20-10, rng.Float64()*20-10)),
		})
		em.AddComponent(id, &components.VelocityComponent{
			Vel: utils.Vec(rng.Float64()*200-100, rng.Float64()*100-50),
		})
		em.AddComponent(id, &components.ParticleComponent{
			Color:     cloudPuffColor,
			Size:      float64(3 + rng.Intn(4)),
			Life:      0.5 + rng.Float64()*0.5,
			StartLife: 1.0,
		})
	}
}
