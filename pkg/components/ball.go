package components

import "image/color"

// BallState 球的交互状态
type BallState int

const (
	// BallNormal 正常状态：参与重力积分和碰撞
	BallNormal BallState = iota
	// BallGrabbed 被抓取中：跟随指针移动，暂停物理积分
	BallGrabbed
)

// BallComponent 弹射球实体的核心数据
//
// 球由玩家在弹弓模式下创建并发射，发射后受重力、空气阻力
// 和墙壁反弹约束，静止落地后被回收
type BallComponent struct {
	Radius      float64    // 半径（像素），必须大于 0
	Color       color.RGBA // 渲染颜色（核心逻辑不关心具体值）
	Restitution float64    // 弹性系数 [0,1]，墙壁反弹时保留的法向速度比例
	State       BallState  // 当前交互状态

	SquishFactor float64 // 拉弓时的压扁系数（纯视觉反馈）

	// 发射与计分追踪
	LaunchPower      float64 // 发射力度 [0,1]，用于成就判定
	WallBounceStreak int     // 落地前累计的墙面反弹次数（反弹入球判定用）
	HasBeenLaunched  bool    // 是否已被发射过（未发射的球不会被回收）
	TimeSinceLaunch  float64 // 发射后经过的游戏时间（秒）
}
