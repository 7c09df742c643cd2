package components

// BirdType 鸟的类型，决定速度、分值、弹药奖励和飞行模式
type BirdType int

const (
	// BirdRegular 普通棕鸟：慢速直飞 + 轻微正弦起伏
	BirdRegular BirdType = iota
	// BirdGolden 金鸟：快速，正弦起伏更明显，奖励弹药
	BirdGolden
	// BirdAngry 红色愤怒鸟：之字形飞行
	BirdAngry
	// BirdRare 蓝色稀有鸟：最快，球接近时会闪避，高额奖励
	BirdRare
)

// BirdState 鸟的生命周期状态
type BirdState int

const (
	// BirdFlying 飞行中：沿配置路径移动，可被击中
	BirdFlying BirdState = iota
	// BirdHit 已被击中：本帧或下一帧内被移除，计分
	BirdHit
	// BirdEscaped 已飞出场地：被移除，不计分也不扣分
	BirdEscaped
)

// BirdRenderMode 鸟的渲染模式（纯装饰标签，由外部渲染器消费）
// 核心逻辑唯一依赖它的地方是命中形状选择，而命中形状由配置项控制，
// 与渲染模式本身解耦
type BirdRenderMode int

const (
	// RenderSprite 精灵图渲染
	RenderSprite BirdRenderMode = iota
	// RenderEmoji 表情符号渲染
	RenderEmoji
	// RenderGeometric 几何图形渲染
	RenderGeometric
)

// BirdComponent 飞行目标实体的核心数据
type BirdComponent struct {
	Type       BirdType
	State      BirdState
	RenderMode BirdRenderMode

	Direction  int     // 飞行方向：1 向右，-1 向左
	BaseY      float64 // 基准飞行高度（正弦/之字形围绕此高度摆动）
	FlightTime float64 // 已飞行时间（秒），驱动飞行路径和翅膀动画
	WingFrame  int     // 当前翅膀动画帧 (0-2)

	// 稀有鸟闪避状态
	Dodging   bool
	DodgeTime float64 // 本次闪避已持续时间（秒）
}
