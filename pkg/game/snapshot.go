package game

import (
	"image/color"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/utils"
)

// Snapshot 单帧的只读渲染快照
//
// 每帧模拟结束后由场景构建，外部渲染器只消费快照，
// 永远不会拿到模拟状态的可变引用。所有切片都是逐帧新建的副本
type Snapshot struct {
	Balls     []BallView
	Birds     []BirdView
	Clouds    []CloudView
	PowerUps  []PowerUpView
	Texts     []TextView
	Particles []ParticleView

	// 弹弓拉弓状态（渲染橡皮筋与弹道预览用）
	Dragging   bool
	DragAnchor utils.Vector2
	DragBallID int // Balls 切片中被拉弓球的下标，-1 表示无

	Score     int
	HighScore int
	Ammo      int
	Combo     int
	MaxCombo  int
	Shots     int
	Wave      int
	Phase     Phase
}

// BallView 球的渲染视图
type BallView struct {
	Pos    utils.Vector2
	Radius float64
	Color  color.RGBA
	Squish float64
}

// BirdView 鸟的渲染视图
type BirdView struct {
	Pos        utils.Vector2
	Type       components.BirdType
	State      components.BirdState
	RenderMode components.BirdRenderMode
	Direction  int
	WingFrame  int
}

// CloudView 云朵的渲染视图
type CloudView struct {
	Pos    utils.Vector2
	Width  float64
	Height float64
}

// PowerUpView 道具的渲染视图
type PowerUpView struct {
	Pos   utils.Vector2
	Type  components.PowerUpType
	Alpha float64 // 淡出透明度 [0,1]
}

// TextView 漂浮文本的渲染视图
type TextView struct {
	Pos      utils.Vector2
	Text     string
	Color    color.RGBA
	FontSize int
	Alpha    float64 // 淡出透明度 [0,1]
}

// ParticleView 粒子的渲染视图
type ParticleView struct {
	Pos   utils.Vector2
	Color color.RGBA
	Size  float64
	Alpha float64 // 剩余寿命比例 [0,1]
}
