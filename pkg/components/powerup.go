package components

// PowerUpType 道具类型
type PowerUpType int

const (
	// PowerMultiball 多重球：下一次发射分裂出额外的球
	PowerMultiball PowerUpType = iota
	// PowerSlowmo 慢动作：一段时间内鸟以半速飞行
	PowerSlowmo
	// PowerBigball 大球：之后创建的球半径加倍
	PowerBigball
	// PowerMagnet 磁铁：飞行中的球被吸向最近的鸟
	PowerMagnet

	// PowerUpTypeCount 道具类型总数（随机选择用）
	PowerUpTypeCount
)

// PowerUpComponent 场地上可拾取的道具
// 道具短暂出现，球碰到即拾取，超时未拾取则消失
type PowerUpComponent struct {
	Type     PowerUpType
	Age      float64 // 已存在时间（秒）
	Duration float64 // 存在时长上限（秒）
}
