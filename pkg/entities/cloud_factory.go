package entities

import (
	"math/rand"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/utils"
)

// NewCloud 创建一朵随机位置、尺寸和漂移速度的云朵障碍物
func NewCloud(em *ecs.EntityManager, fieldWidth float64, rng *rand.Rand) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{
		Pos: utils.Vec(
			100+rng.Float64()*(fieldWidth-300),
			50+rng.Float64()*150,
		),
	})
	em.AddComponent(id, &components.VelocityComponent{
		Vel: utils.Vec(-50+rng.Float64()*100, 0),
	})
	em.AddComponent(id, &components.CloudComponent{
		Width:  80 + rng.Float64()*40,
		Height: 40 + rng.Float64()*20,
	})
	return id
}
