// Package utils 提供通用工具：向量运算和输入状态转换
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针输入状态
// 统一鼠标和触摸输入，核心逻辑只消费这个与设备无关的结构
type PointerState struct {
	Pos          Vector2 // 指针位置（场地坐标）
	Pressed      bool    // 指针当前按下中
	JustPressed  bool    // 本帧刚按下
	JustReleased bool    // 本帧刚松开
}

// ReadPointer 读取当前帧的指针状态
// 优先检测触摸（移动设备），其次鼠标左键
func ReadPointer() PointerState {
	state := PointerState{}

	// 触摸输入
	if justTouched := inpututil.AppendJustPressedTouchIDs(nil); len(justTouched) > 0 {
		x, y := ebiten.TouchPosition(justTouched[0])
		state.Pos = Vec(float64(x), float64(y))
		state.Pressed = true
		state.JustPressed = true
		return state
	}
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y := ebiten.TouchPosition(touches[0])
		state.Pos = Vec(float64(x), float64(y))
		state.Pressed = true
		return state
	}
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		x, y := inpututil.TouchPositionInPreviousTick(released[0])
		state.Pos = Vec(float64(x), float64(y))
		state.JustReleased = true
		return state
	}

	// 鼠标输入
	x, y := ebiten.CursorPosition()
	state.Pos = Vec(float64(x), float64(y))
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// KeyState 当前帧的离散按键状态
// 识别的按键：重置、暂停/恢复、切换渲染模式、退出
type KeyState struct {
	Reset       bool
	TogglePause bool
	CycleMode   bool
	Quit        bool
}

// ReadKeys 读取当前帧刚按下的功能键
func ReadKeys() KeyState {
	return KeyState{
		Reset:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		TogglePause: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		CycleMode:   inpututil.IsKeyJustPressed(ebiten.KeyB),
		Quit: inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
			inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}
