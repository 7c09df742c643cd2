package entities

import (
	"math/rand"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/utils"
)

// NewPowerUp 在场地上方区域创建一个随机类型的道具
//
// 参数：
//   - fieldWidth: 场地宽度（决定水平出生范围）
//   - duration: 道具存在时长（秒）
//   - rng: 随机源
func NewPowerUp(em *ecs.EntityManager, fieldWidth, duration float64, rng *rand.Rand) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{
		Pos: utils.Vec(
			100+rng.Float64()*(fieldWidth-200),
			100+rng.Float64()*150,
		),
	})
	em.AddComponent(id, &components.PowerUpComponent{
		Type:     components.PowerUpType(rng.Intn(int(components.PowerUpTypeCount))),
		Duration: duration,
	})
	return id
}
