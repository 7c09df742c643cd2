package systems

import "image/color"

// rgba 不透明颜色字面量的简写
func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// 系统间共享的提示文本颜色
var (
	comboColor = rgba(255, 150, 0)
	goldColor  = rgba(255, 215, 0)
	ammoColor  = rgba(85, 85, 255)
)
