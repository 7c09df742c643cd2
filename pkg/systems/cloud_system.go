package systems

import (
	"math/rand"
	"slices"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/ecs"
	"github.com/aegisx/ricochet/pkg/entities"
)

// 穿越云朵时每帧的速度保留比例
const (
	cloudDragX = 0.85
	cloudDragY = 0.9
)

// cloudBallPair 云-球接触对，用于识别入云瞬间
type cloudBallPair struct {
	cloud ecs.EntityID
	ball  ecs.EntityID
}

// CloudSystem 云朵障碍物系统
//
// 云朵水平漂移并在场地边缘环绕。球穿过云朵时速度被
// 持续衰减，入云瞬间喷出一簇白色雾粒
type CloudSystem struct {
	em  *ecs.EntityManager
	cfg *config.GameplayConfig
	rng *rand.Rand

	inside map[cloudBallPair]bool // 上一帧处于云内的接触对
}

// NewCloudSystem 创建云朵系统并生成初始云朵
func NewCloudSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, rng *rand.Rand) *CloudSystem {
	cs := &CloudSystem{
		em:     em,
		cfg:    cfg,
		rng:    rng,
		inside: make(map[cloudBallPair]bool),
	}
	cs.spawnClouds()
	return cs
}

// Reset 清空接触状态并重新生成初始云朵（新一局开始时调用）
func (cs *CloudSystem) Reset() {
	cs.inside = make(map[cloudBallPair]bool)
	cs.spawnClouds()
}

func (cs *CloudSystem) spawnClouds() {
	for i := 0; i < cs.cfg.Effects.CloudCount; i++ {
		entities.NewCloud(cs.em, cs.cfg.Playfield.Width, cs.rng)
	}
}

// Update 漂移云朵并对穿云的球施加阻力
func (cs *CloudSystem) Update(deltaTime float64) {
	cloudIDs := cs.em.GetEntitiesWith(
		ecs.TypeOf[*components.CloudComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.VelocityComponent](),
	)
	slices.Sort(cloudIDs)

	ballIDs := cs.em.GetEntitiesWith(
		ecs.TypeOf[*components.BallComponent](),
		ecs.TypeOf[*components.PositionComponent](),
		ecs.TypeOf[*components.VelocityComponent](),
	)
	slices.Sort(ballIDs)

	current := make(map[cloudBallPair]bool, len(cs.inside))

	for _, cloudID := range cloudIDs {
		cloud, _ := ecs.GetComponent[*components.CloudComponent](cs.em, cloudID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](cs.em, cloudID)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](cs.em, cloudID)

		pos.Pos.X += vel.Vel.X * deltaTime

		// 边缘环绕
		if pos.Pos.X > cs.cfg.Playfield.Width+cloud.Width/2 {
			pos.Pos.X = -cloud.Width / 2
		} else if pos.Pos.X < -cloud.Width/2 {
			pos.Pos.X = cs.cfg.Playfield.Width + cloud.Width/2
		}

		for _, ballID := range ballIDs {
			ball, _ := ecs.GetComponent[*components.BallComponent](cs.em, ballID)
			if ball.State == components.BallGrabbed {
				continue
			}
			bpos, _ := ecs.GetComponent[*components.PositionComponent](cs.em, ballID)
			if !cs.overlapsCloud(bpos.Pos.X, bpos.Pos.Y, ball.Radius, pos.Pos.X, pos.Pos.Y, cloud) {
				continue
			}

			pair := cloudBallPair{cloud: cloudID, ball: ballID}
			current[pair] = true

			bvel, _ := ecs.GetComponent[*components.VelocityComponent](cs.em, ballID)
			bvel.Vel.X *= cloudDragX
			bvel.Vel.Y *= cloudDragY

			// 入云瞬间喷雾
			if !cs.inside[pair] {
				entities.NewCloudPuffs(cs.em, bpos.Pos, cs.rng)
			}
		}
	}

	cs.inside = current
}

// overlapsCloud 球与云朵矩形的重叠检测
func (cs *CloudSystem) overlapsCloud(bx, by, radius, cx, cy float64, cloud *components.CloudComponent) bool {
	halfW, halfH := cloud.Width/2, cloud.Height/2
	return bx+radius > cx-halfW && bx-radius < cx+halfW &&
		by+radius > cy-halfH && by-radius < cy+halfH
}
