package components

import "image/color"

// ParticleComponent 粒子效果（羽毛、云朵碎屑）
// 粒子有自己的简化物理：受重力和空气阻力，寿命耗尽后移除
type ParticleComponent struct {
	Color     color.RGBA
	Size      float64 // 粒子尺寸（像素）
	Life      float64 // 剩余寿命（秒）
	StartLife float64 // 初始寿命（秒），用于透明度衰减
}

// FloatingTextComponent 漂浮提示文本（"+5"、"COMBO x3!" 等）
// 匀速上升，超时后移除；纯视觉状态，由外部渲染器绘制
type FloatingTextComponent struct {
	Text     string
	Color    color.RGBA
	FontSize int
	Age      float64 // 已显示时间（秒）
	Duration float64 // 显示时长（秒）
}
